package auth

import (
	"strings"

	"github.com/spec-kit/hospital-service/internal/domain"
)

// RoleRoute binds an API path prefix to the roles allowed through it.
// Kept as an ordered slice so classification is deterministic.
type RoleRoute struct {
	Prefix string
	Roles  []domain.Role
}

// RouteConfig is the static route classification the gate evaluates requests
// against. It is injected at construction so environments and tests can
// override it; nothing here is global state.
type RouteConfig struct {
	// PublicPages are matched exactly and require no token.
	PublicPages []string
	// PublicAPIPrefixes are API routes open to unauthenticated callers.
	PublicAPIPrefixes []string
	// AdminAPIPrefixes are API routes reserved for the admin role.
	AdminAPIPrefixes []string
	// RoleAPIRoutes restrict API prefixes to a role allow-list.
	RoleAPIRoutes []RoleRoute
	// AuthPages are rendered forms that bounce already-authenticated users
	// to the dashboard.
	AuthPages []string

	LoginPage     string
	DashboardPage string
}

// DefaultRouteConfig mirrors the product's route tables.
func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		PublicPages: []string{
			"/",
			"/login",
			"/register",
			"/forgot-password",
			"/reset-password",
			"/about",
			"/contact",
		},
		PublicAPIPrefixes: []string{
			"/api/auth/login",
			"/api/auth/register",
			// Logout only discards cookies, and a client holding an expired
			// token must still be able to do that.
			"/api/auth/logout",
			"/api/auth/forgot-password",
			"/api/auth/reset-password",
			"/api/patients/register",
			"/api/doctors/register",
			"/api/nurses/register",
			"/api/departments",
			"/api/check-email",
		},
		AdminAPIPrefixes: []string{
			"/api/admin",
			"/api/users/manage",
			"/api/reports/admin",
			"/api/system",
		},
		RoleAPIRoutes: []RoleRoute{
			{Prefix: "/api/patients", Roles: []domain.Role{domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist}},
			{Prefix: "/api/doctors/manage", Roles: []domain.Role{domain.RoleAdmin}},
			{Prefix: "/api/appointments/manage", Roles: []domain.Role{domain.RoleAdmin, domain.RoleReceptionist}},
			{Prefix: "/api/reports", Roles: []domain.Role{domain.RoleAdmin, domain.RoleDoctor}},
			{Prefix: "/api/inventory", Roles: []domain.Role{domain.RoleAdmin, domain.RolePharmacist, domain.RoleNurse}},
		},
		AuthPages:     []string{"/login", "/register"},
		LoginPage:     "/login",
		DashboardPage: "/dashboard",
	}
}

// IsAPI reports whether the path belongs to the JSON API surface.
func (rc RouteConfig) IsAPI(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// IsPublicPage reports an exact public page match.
func (rc RouteConfig) IsPublicPage(path string) bool {
	for _, p := range rc.PublicPages {
		if path == p {
			return true
		}
	}
	return false
}

// IsPublicAPI reports whether the path starts with a public API prefix.
func (rc RouteConfig) IsPublicAPI(path string) bool {
	for _, prefix := range rc.PublicAPIPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsAdminOnly reports whether the path starts with an admin-only prefix.
func (rc RouteConfig) IsAdminOnly(path string) bool {
	for _, prefix := range rc.AdminAPIPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AllowedRoles returns the allow-list for the first matching role-restricted
// prefix, or ok=false when the path is unrestricted.
func (rc RouteConfig) AllowedRoles(path string) ([]domain.Role, bool) {
	for _, route := range rc.RoleAPIRoutes {
		if strings.HasPrefix(path, route.Prefix) {
			return route.Roles, true
		}
	}
	return nil, false
}

// IsAuthPage reports whether the path renders a login or registration form.
func (rc RouteConfig) IsAuthPage(path string) bool {
	for _, p := range rc.AuthPages {
		if path == p {
			return true
		}
	}
	return false
}
