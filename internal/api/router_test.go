package api_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homelab/authgate/internal/api"
	"github.com/homelab/authgate/internal/infrastructure/store"
)

// do runs one request through the router and returns the recorder. A nil form
// sends a plain GET-style request; a non-nil form sends it urlencoded.
func do(e *echo.Echo, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "session" {
			return ck
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

// TestServer_EndToEnd drives the whole stack over real file-backed stores:
// seeding, login, the forward-auth probe, admin user management, role
// enforcement, and session revocation. The prometheus middleware registers
// its collectors globally, so the router is built exactly once here.
func TestServer_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	log := zerolog.Nop()

	users, err := store.NewUserStore(dir, "changeme", log)
	if err != nil {
		t.Fatalf("user store: %v", err)
	}
	sessions, err := store.NewSessionStore(dir, time.Hour, log)
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	e := api.NewRouter(users, sessions, dir, time.Hour, log)

	// Anonymous probe is denied and carries no identity.
	rec := do(e, http.MethodGet, "/verify", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous verify: expected 401, got %d", rec.Code)
	}
	if rec.Header().Get("X-Auth-User") != "" {
		t.Fatalf("anonymous verify must not name a user")
	}

	// Wrong password re-renders the form instead of erroring.
	rec = do(e, http.MethodPost, "/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed login: expected 200 form, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password") {
		t.Fatalf("failed login: expected inline error, got: %s", rec.Body.String())
	}

	// Seeded admin logs in and gets a session cookie.
	rec = do(e, http.MethodPost, "/login", url.Values{
		"username": {"admin"},
		"password": {"changeme"},
	}, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("admin login: expected 302, got %d", rec.Code)
	}
	adminCookie := sessionCookieFrom(t, rec)

	rec = do(e, http.MethodGet, "/verify", nil, adminCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin verify: expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Auth-User"); got != "admin" {
		t.Fatalf("admin verify: expected X-Auth-User admin, got %q", got)
	}

	// Admin creates bob.
	rec = do(e, http.MethodPost, "/admin/users/add", url.Values{
		"username": {"bob"},
		"password": {"password123"},
		"role":     {"user"},
	}, adminCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("add bob: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bob") {
		t.Fatalf("add bob: expected bob in listing, got: %s", rec.Body.String())
	}

	// Duplicate add fails inline.
	rec = do(e, http.MethodPost, "/admin/users/add", url.Values{
		"username": {"bob"},
		"password": {"password123"},
		"role":     {"user"},
	}, adminCookie)
	if !strings.Contains(rec.Body.String(), "user already exists") {
		t.Fatalf("duplicate add: expected inline error, got: %s", rec.Body.String())
	}

	// Bob logs in but cannot touch the admin surface.
	rec = do(e, http.MethodPost, "/login", url.Values{
		"username": {"bob"},
		"password": {"password123"},
	}, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("bob login: expected 302, got %d", rec.Code)
	}
	bobCookie := sessionCookieFrom(t, rec)

	rec = do(e, http.MethodGet, "/admin/users", nil, bobCookie)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bob list users: expected 403, got %d", rec.Code)
	}
	rec = do(e, http.MethodPost, "/admin/users/add", url.Values{
		"username": {"eve"},
		"password": {"password123"},
	}, bobCookie)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bob add user: expected 403, got %d", rec.Code)
	}

	// Anonymous browsers are redirected to the login form for the list page
	// but refused outright on mutations.
	rec = do(e, http.MethodGet, "/admin/users", nil, nil)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("anonymous list users: expected redirect to /login, got %d %q",
			rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	rec = do(e, http.MethodPost, "/admin/users/delete", url.Values{"username": {"bob"}}, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous delete: expected 403, got %d", rec.Code)
	}

	// Bob rotates his own password and the new one works.
	rec = do(e, http.MethodPost, "/account", url.Values{
		"current_password": {"wrong"},
		"new_password":     {"betterpassword"},
		"confirm_password": {"betterpassword"},
	}, bobCookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "current password is incorrect") {
		t.Fatalf("change with wrong current: expected inline error, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(e, http.MethodPost, "/account", url.Values{
		"current_password": {"password123"},
		"new_password":     {"betterpassword"},
		"confirm_password": {"betterpassword"},
	}, bobCookie)
	if !strings.Contains(rec.Body.String(), "Password updated successfully") {
		t.Fatalf("change password: expected success, got: %s", rec.Body.String())
	}
	rec = do(e, http.MethodPost, "/login", url.Values{
		"username": {"bob"},
		"password": {"betterpassword"},
	}, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("bob relogin: expected 302, got %d", rec.Code)
	}

	// Admin deletes bob. Bob's already-issued session still satisfies the
	// probe until it expires, but the page flows treat him as anonymous.
	rec = do(e, http.MethodPost, "/admin/users/delete", url.Values{"username": {"bob"}}, adminCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete bob: expected 200, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/verify", nil, bobCookie)
	if rec.Code != http.StatusOK || rec.Header().Get("X-Auth-User") != "bob" {
		t.Fatalf("bob verify after delete: expected 200 bob, got %d %q",
			rec.Code, rec.Header().Get("X-Auth-User"))
	}
	rec = do(e, http.MethodGet, "/account", nil, bobCookie)
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("bob account after delete: expected redirect to /login, got %d", rec.Code)
	}

	// Self-delete is refused even through the full stack.
	rec = do(e, http.MethodPost, "/admin/users/delete", url.Values{"username": {"admin"}}, adminCookie)
	if !strings.Contains(rec.Body.String(), "cannot delete your own account") {
		t.Fatalf("self delete: expected inline error, got: %s", rec.Body.String())
	}

	// Logout clears the cookie and revokes the session.
	rec = do(e, http.MethodGet, "/logout", nil, adminCookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("logout: expected 302, got %d", rec.Code)
	}
	cleared := sessionCookieFrom(t, rec)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("logout: expected cleared cookie, got value=%q maxage=%d", cleared.Value, cleared.MaxAge)
	}
	rec = do(e, http.MethodGet, "/verify", nil, adminCookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("verify after logout: expected 401, got %d", rec.Code)
	}

	// Operational endpoints answer without a session.
	rec = do(e, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/health/ready", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "authgate") {
		t.Fatalf("metrics: expected 200 with authgate series, got %d", rec.Code)
	}
}
