package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/homelab/authgate/internal/api/handler"
	"github.com/homelab/authgate/internal/api/middleware"
	"github.com/homelab/authgate/internal/core/ports"
	"github.com/homelab/authgate/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(users ports.UserStore, sessions ports.SessionStore, dataDir string, sessionTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("authgate"))

	// --- Dependencies ---
	authService := service.NewAuthService(users, sessions, log)
	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	accountHandler := handler.NewAccountHandler(authService)
	adminHandler := handler.NewAdminHandler(authService)
	session := middleware.Session(authService)

	// Forward-auth probe. Deliberately outside the session middleware: the
	// probe resolves the cookie itself through the read-only path so it never
	// mutates session state.
	e.GET("/verify", authHandler.Verify)

	// --- Pages ---
	e.GET("/", authHandler.Home, session)
	e.GET("/login", authHandler.LoginForm, session)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	account := e.Group("/account", session, middleware.RequireAuth())
	account.GET("", accountHandler.Form)
	account.POST("", accountHandler.ChangePassword)

	// The list page redirects anonymous browsers to the login form; the
	// mutations answer 403 outright, authenticated or not.
	admin := e.Group("/admin/users", session)
	admin.GET("", adminHandler.ListUsers, middleware.RequireAuth(), middleware.RequireAdmin())
	admin.POST("/add", adminHandler.AddUser, middleware.RequireAdmin())
	admin.POST("/delete", adminHandler.DeleteUser, middleware.RequireAdmin())

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(dataDir).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
