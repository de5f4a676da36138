package auth

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-service/internal/domain"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// Outcome enumerates the gate's terminal decisions.
type Outcome int

const (
	// OutcomePublic lets the request through without identity.
	OutcomePublic Outcome = iota
	// OutcomeAllow renders a page for an authenticated caller, with the
	// verified identity attached.
	OutcomeAllow
	// OutcomeAllowWithContext forwards an API request with the verified
	// identity attached.
	OutcomeAllowWithContext
	// OutcomeRedirectLogin sends a page client to the login form.
	OutcomeRedirectLogin
	// OutcomeRedirectDashboard bounces authenticated users off auth forms.
	OutcomeRedirectDashboard
	// OutcomeReject terminates the request with a structured 401/403.
	OutcomeReject
)

// Decision is the gate's verdict for one request.
type Decision struct {
	Outcome      Outcome
	RedirectTo   string
	ClearCookies bool
	Err          error
}

// Decide maps (route, token presence, token validity, role) onto exactly one
// outcome. claims is nil when no token was presented or it failed verification.
// The function is pure; cookie clearing is carried as a flag for the caller.
func Decide(routes RouteConfig, path string, tokenPresent bool, claims *Claims) Decision {
	isAPI := routes.IsAPI(path)

	// 1. Public page or public API route. Authenticated callers hitting the
	// login/registration forms are bounced to the dashboard instead.
	if routes.IsPublicPage(path) || routes.IsPublicAPI(path) {
		if claims != nil && routes.IsAuthPage(path) {
			return Decision{Outcome: OutcomeRedirectDashboard, RedirectTo: routes.DashboardPage}
		}
		return Decision{Outcome: OutcomePublic}
	}

	// 2. Protected route without a token.
	if !tokenPresent {
		if isAPI {
			return Decision{Outcome: OutcomeReject, Err: apperrors.NewAuthRequired()}
		}
		loginURL := routes.LoginPage + "?returnUrl=" + url.QueryEscape(path)
		return Decision{Outcome: OutcomeRedirectLogin, RedirectTo: loginURL}
	}

	// 3. Token present but failed verification. Page clients also get the stale
	// cookie expired so the bad token is not retried.
	if claims == nil {
		if isAPI {
			return Decision{Outcome: OutcomeReject, Err: apperrors.NewTokenInvalid()}
		}
		return Decision{Outcome: OutcomeRedirectLogin, RedirectTo: routes.LoginPage, ClearCookies: true}
	}

	if isAPI {
		// 4. Admin-only prefixes.
		if routes.IsAdminOnly(path) && claims.Role != domain.RoleAdmin {
			return Decision{Outcome: OutcomeReject, Err: apperrors.NewInsufficientPermissions(string(domain.RoleAdmin), string(claims.Role))}
		}
		// 5. Role allow-lists.
		if allowed, restricted := routes.AllowedRoles(path); restricted && !roleAllowed(allowed, claims.Role) {
			names := make([]string, len(allowed))
			for i, role := range allowed {
				names[i] = string(role)
			}
			return Decision{Outcome: OutcomeReject, Err: apperrors.NewRoleNotAuthorized(names, string(claims.Role))}
		}
		// 6. Authorized API request.
		return Decision{Outcome: OutcomeAllowWithContext}
	}

	// 8. Any other authenticated page.
	return Decision{Outcome: OutcomeAllow}
}

func roleAllowed(allowed []domain.Role, role domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Gate applies the authorization decision to every inbound request.
type Gate struct {
	tokens  *TokenManager
	routes  RouteConfig
	cookies CookieWriter
	logger  *zap.Logger
}

// NewGate constructs the gate with an injected route classification.
func NewGate(tokens *TokenManager, routes RouteConfig, cookies CookieWriter, logger *zap.Logger) *Gate {
	return &Gate{tokens: tokens, routes: routes, cookies: cookies, logger: logger}
}

// TokenFromRequest extracts the session token from the auth cookie or, failing
// that, a bearer Authorization header.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Handle classifies the route, verifies the token where required and executes
// the resulting decision.
func (g *Gate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	token := TokenFromRequest(c)

	isPublic := g.routes.IsPublicPage(path) || g.routes.IsPublicAPI(path)

	// Public routes skip verification entirely, except the auth forms, where a
	// valid session redirects to the dashboard instead of re-rendering the form.
	var claims *Claims
	if token != "" && (!isPublic || g.routes.IsAuthPage(path)) {
		var err error
		claims, err = g.tokens.Verify(token)
		if err != nil {
			claims = nil
			g.logger.Debug("token verification failed",
				zap.String("path", path),
				zap.Error(err))
		}
	}

	decision := Decide(g.routes, path, token != "", claims)

	switch decision.Outcome {
	case OutcomePublic:
		return c.Next()
	case OutcomeAllow, OutcomeAllowWithContext:
		SetAuthContext(c, &AuthContext{
			UserID:     claims.UserID,
			Email:      claims.Email,
			Role:       claims.Role,
			ProfileID:  claims.ProfileID,
			VerifiedAt: time.Now(),
		})
		return c.Next()
	case OutcomeRedirectLogin:
		if decision.ClearCookies {
			g.cookies.ClearSession(c)
		}
		return c.Redirect(decision.RedirectTo, fiber.StatusFound)
	case OutcomeRedirectDashboard:
		return c.Redirect(decision.RedirectTo, fiber.StatusFound)
	default:
		return decision.Err
	}
}
