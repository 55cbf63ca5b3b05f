package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homelab/authgate/internal/api/metrics"
	"github.com/homelab/authgate/internal/core/domain"
	"github.com/homelab/authgate/internal/core/ports"
)

// identityHeader carries the authenticated username on the forward-auth
// probe. The reverse proxy copies it onto the proxied request, so downstream
// apps receive the caller's identity. Renaming it breaks the proxy config.
const identityHeader = "X-Auth-User"

type AuthHandler struct {
	auth       ports.AuthService
	sessionTTL time.Duration
}

func NewAuthHandler(auth ports.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, sessionTTL: sessionTTL}
}

// Home renders the landing page with the caller's login state.
func (h *AuthHandler) Home(c echo.Context) error {
	return renderPage(c, http.StatusOK, "home", pageData{User: currentUser(c)})
}

// Verify is the forward-auth probe. 200 plus the identity header when the
// session cookie resolves, 401 otherwise; never a body, never a store
// mutation. The proxy calls this on every request, so it must stay cheap.
func (h *AuthHandler) Verify(c echo.Context) error {
	token := sessionToken(c)
	if token == "" {
		metrics.VerifyRequestsTotal.WithLabelValues("denied").Inc()
		return c.NoContent(http.StatusUnauthorized)
	}

	username, err := h.auth.Verify(c.Request().Context(), token)
	if err != nil {
		metrics.VerifyRequestsTotal.WithLabelValues("denied").Inc()
		return c.NoContent(http.StatusUnauthorized)
	}

	metrics.VerifyRequestsTotal.WithLabelValues("allowed").Inc()
	c.Response().Header().Set(identityHeader, username)
	return c.NoContent(http.StatusOK)
}

// LoginForm renders the login page; authenticated callers are bounced home.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if currentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}
	return renderPage(c, http.StatusOK, "login", pageData{})
}

type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Login attempts a credential login. Failure re-renders the form with an
// inline error and a 200, never a redirect.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.loginFailed(c)
	}
	if err := c.Validate(&req); err != nil {
		return h.loginFailed(c)
	}

	sess, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return h.loginFailed(c)
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(sessionCookie(sess.Token, int(h.sessionTTL.Seconds())))
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) loginFailed(c echo.Context) error {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	return renderPage(c, http.StatusOK, "login", pageData{Error: "Invalid username or password"})
}

// Logout destroys the session and clears the cookie, then redirects home.
// Idempotent: anonymous callers get the same redirect.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := sessionToken(c); token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	c.SetCookie(sessionCookie("", -1))
	return c.Redirect(http.StatusFound, "/")
}

// sessionCookie builds the session cookie. maxAge is the lifetime in
// seconds; pass -1 to emit Max-Age=0 and clear the cookie.
func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
