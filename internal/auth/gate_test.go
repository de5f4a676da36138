package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-service/internal/domain"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

func TestDecide(t *testing.T) {
	rc := DefaultRouteConfig()
	patient := &Claims{UserID: "u1", Role: domain.RolePatient}
	admin := &Claims{UserID: "u2", Role: domain.RoleAdmin}
	doctor := &Claims{UserID: "u3", Role: domain.RoleDoctor}

	cases := []struct {
		name         string
		path         string
		tokenPresent bool
		claims       *Claims
		outcome      Outcome
		redirect     string
		clearCookies bool
		code         string
	}{
		{name: "public page without token", path: "/", outcome: OutcomePublic},
		{name: "public api without token", path: "/api/departments", outcome: OutcomePublic},
		{name: "public page with malformed token", path: "/", tokenPresent: true, outcome: OutcomePublic},
		{name: "auth page with session", path: "/login", tokenPresent: true, claims: patient,
			outcome: OutcomeRedirectDashboard, redirect: "/dashboard"},
		{name: "protected page without token", path: "/dashboard",
			outcome: OutcomeRedirectLogin, redirect: "/login?returnUrl=%2Fdashboard"},
		{name: "protected page with bad token", path: "/dashboard", tokenPresent: true,
			outcome: OutcomeRedirectLogin, redirect: "/login", clearCookies: true},
		{name: "protected api without token", path: "/api/appointments",
			outcome: OutcomeReject, code: "AUTH_REQUIRED"},
		{name: "protected api with bad token", path: "/api/appointments", tokenPresent: true,
			outcome: OutcomeReject, code: "TOKEN_INVALID"},
		{name: "admin api as patient", path: "/api/admin/users", tokenPresent: true, claims: patient,
			outcome: OutcomeReject, code: "INSUFFICIENT_PERMISSIONS"},
		{name: "admin api as admin", path: "/api/admin/users", tokenPresent: true, claims: admin,
			outcome: OutcomeAllowWithContext},
		{name: "restricted api as patient", path: "/api/patients/42", tokenPresent: true, claims: patient,
			outcome: OutcomeReject, code: "ROLE_NOT_AUTHORIZED"},
		{name: "restricted api as doctor", path: "/api/patients/42", tokenPresent: true, claims: doctor,
			outcome: OutcomeAllowWithContext},
		{name: "authenticated page", path: "/dashboard", tokenPresent: true, claims: patient,
			outcome: OutcomeAllow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(rc, tc.path, tc.tokenPresent, tc.claims)
			if d.Outcome != tc.outcome {
				t.Fatalf("outcome = %v, want %v", d.Outcome, tc.outcome)
			}
			if d.RedirectTo != tc.redirect {
				t.Errorf("redirect = %q, want %q", d.RedirectTo, tc.redirect)
			}
			if d.ClearCookies != tc.clearCookies {
				t.Errorf("clearCookies = %v, want %v", d.ClearCookies, tc.clearCookies)
			}
			if tc.code != "" {
				de := apperrors.ToDomainError(d.Err)
				if de == nil || de.Code != tc.code {
					t.Errorf("error code = %v, want %s", de, tc.code)
				}
			} else if d.Err != nil {
				t.Errorf("unexpected error: %v", d.Err)
			}
		})
	}
}

// newGateApp builds a fiber app with the gate installed and enough routes to
// exercise every decision path over HTTP.
func newGateApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			resp := fiber.Map{"error": de.Message, "code": de.Code}
			for k, v := range de.Details {
				resp[k] = v
			}
			return c.Status(de.HTTPStatus).JSON(resp)
		},
	})

	gate := NewGate(tm, DefaultRouteConfig(), CookieWriter{}, zap.NewNop())
	app.Use(gate.Handle)

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/", ok)
	app.Get("/login", ok)
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		if ac, okCtx := AuthContextFrom(c); okCtx {
			return c.JSON(fiber.Map{"viewer": ac.Email})
		}
		return c.SendString("ok")
	})
	app.Get("/api/departments", ok)
	app.Post("/api/auth/logout", ok)
	app.Get("/api/admin/users", ok)
	app.Post("/api/appointments", ok)
	app.Get("/api/patients/:id", func(c *fiber.Ctx) error {
		ac, okCtx := AuthContextFrom(c)
		if !okCtx {
			return apperrors.NewAuthRequired()
		}
		return c.JSON(fiber.Map{"viewer": ac.Email, "role": string(ac.Role)})
	})
	return app
}

func issueFor(t *testing.T, tm *TokenManager, role domain.Role) string {
	t.Helper()
	token, _, err := tm.Issue("64f000000000000000000099", string(role)+"@example.com", role, nil, false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}

func gateRequest(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return body
}

func TestGatePublicRoutes(t *testing.T) {
	tm := testManager()
	app := newGateApp(tm)

	resp := gateRequest(t, app, http.MethodGet, "/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public page status = %d", resp.StatusCode)
	}

	// A malformed token must not block public routes.
	resp = gateRequest(t, app, http.MethodGet, "/api/departments", "garbage")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public api with bad token status = %d", resp.StatusCode)
	}

	// Logout must work even when the session token has gone stale, or the
	// client could never discard its cookies.
	resp = gateRequest(t, app, http.MethodPost, "/api/auth/logout", "garbage")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout with stale token status = %d", resp.StatusCode)
	}
}

func TestGateRedirectsPages(t *testing.T) {
	tm := testManager()
	app := newGateApp(tm)

	resp := gateRequest(t, app, http.MethodGet, "/dashboard", "")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login?returnUrl=%2Fdashboard" {
		t.Fatalf("location = %q", loc)
	}

	// Bad token on a page: redirect plus cookie expiry.
	resp = gateRequest(t, app, http.MethodGet, "/dashboard", "garbage")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("location = %q", loc)
	}
	cookies := strings.Join(resp.Header.Values("Set-Cookie"), "; ")
	if !strings.Contains(cookies, SessionCookie+"=") || !strings.Contains(cookies, StatusCookie+"=") {
		t.Fatalf("stale cookies not cleared: %q", cookies)
	}

	// Valid session bounces off the login form.
	resp = gateRequest(t, app, http.MethodGet, "/login", issueFor(t, tm, domain.RolePatient))
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("location = %q", loc)
	}

	// Valid session renders protected pages.
	resp = gateRequest(t, app, http.MethodGet, "/dashboard", issueFor(t, tm, domain.RolePatient))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGateRejectsAPIs(t *testing.T) {
	tm := testManager()
	app := newGateApp(tm)

	resp := gateRequest(t, app, http.MethodPost, "/api/appointments", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["code"] != "AUTH_REQUIRED" {
		t.Fatalf("code = %v", body["code"])
	}

	resp = gateRequest(t, app, http.MethodPost, "/api/appointments", "garbage")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["code"] != "TOKEN_INVALID" {
		t.Fatalf("code = %v", body["code"])
	}

	resp = gateRequest(t, app, http.MethodGet, "/api/admin/users", issueFor(t, tm, domain.RolePatient))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["code"] != "INSUFFICIENT_PERMISSIONS" {
		t.Fatalf("code = %v", body["code"])
	}
	if body["requiredRole"] != "admin" || body["userRole"] != "patient" {
		t.Fatalf("role details missing: %v", body)
	}

	resp = gateRequest(t, app, http.MethodGet, "/api/patients/42", issueFor(t, tm, domain.RolePatient))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if body["code"] != "ROLE_NOT_AUTHORIZED" {
		t.Fatalf("code = %v", body["code"])
	}
	if _, hasList := body["requiredRoles"]; !hasList {
		t.Fatalf("requiredRoles missing: %v", body)
	}
}

func TestGateInjectsAuthContext(t *testing.T) {
	tm := testManager()
	app := newGateApp(tm)

	resp := gateRequest(t, app, http.MethodGet, "/api/patients/42", issueFor(t, tm, domain.RoleDoctor))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["viewer"] != "doctor@example.com" || body["role"] != "doctor" {
		t.Fatalf("context not injected: %v", body)
	}

	// Authenticated page routes carry the identity too.
	resp = gateRequest(t, app, http.MethodGet, "/dashboard", issueFor(t, tm, domain.RolePatient))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if body["viewer"] != "patient@example.com" {
		t.Fatalf("page context not injected: %v", body)
	}
}

func TestGateAcceptsBearerHeader(t *testing.T) {
	tm := testManager()
	app := newGateApp(tm)

	req := httptest.NewRequest(http.MethodGet, "/api/patients/42", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tm, domain.RoleNurse))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestTokenFromRequestPrefersCookie(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/probe", func(c *fiber.Ctx) error {
		got = TokenFromRequest(c)
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got != "cookie-token" {
		t.Fatalf("token = %q, want cookie-token", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Basic abc123")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got != "" {
		t.Fatalf("non-bearer header should be ignored, got %q", got)
	}
}
