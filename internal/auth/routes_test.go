package auth

import (
	"testing"

	"github.com/spec-kit/hospital-service/internal/domain"
)

func TestRouteClassification(t *testing.T) {
	rc := DefaultRouteConfig()

	cases := []struct {
		path      string
		isAPI     bool
		public    bool
		adminOnly bool
		authPage  bool
	}{
		{"/", false, true, false, false},
		{"/login", false, true, false, true},
		{"/register", false, true, false, true},
		{"/forgot-password", false, true, false, false},
		{"/dashboard", false, false, false, false},
		{"/settings", false, false, false, false},
		{"/api/auth/login", true, true, false, false},
		{"/api/auth/logout", true, true, false, false},
		{"/api/patients/register", true, true, false, false},
		{"/api/departments", true, true, false, false},
		{"/api/check-email", true, true, false, false},
		{"/api/patients", true, false, false, false},
		{"/api/appointments", true, false, false, false},
		{"/api/admin/users", true, false, true, false},
		{"/api/users/manage/42/active", true, false, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			if got := rc.IsAPI(tc.path); got != tc.isAPI {
				t.Errorf("IsAPI = %v, want %v", got, tc.isAPI)
			}
			public := rc.IsPublicPage(tc.path) || rc.IsPublicAPI(tc.path)
			if public != tc.public {
				t.Errorf("public = %v, want %v", public, tc.public)
			}
			if got := rc.IsAdminOnly(tc.path); got != tc.adminOnly {
				t.Errorf("IsAdminOnly = %v, want %v", got, tc.adminOnly)
			}
			if got := rc.IsAuthPage(tc.path); got != tc.authPage {
				t.Errorf("IsAuthPage = %v, want %v", got, tc.authPage)
			}
		})
	}
}

func TestAllowedRoles(t *testing.T) {
	rc := DefaultRouteConfig()

	roles, restricted := rc.AllowedRoles("/api/patients/42")
	if !restricted {
		t.Fatal("patient records should be role-restricted")
	}
	if !containsRole(roles, domain.RoleDoctor) || containsRole(roles, domain.RolePatient) {
		t.Fatalf("unexpected allow-list: %v", roles)
	}

	roles, restricted = rc.AllowedRoles("/api/appointments/manage")
	if !restricted || !containsRole(roles, domain.RoleReceptionist) {
		t.Fatalf("reception should manage appointments: %v", roles)
	}

	if _, restricted := rc.AllowedRoles("/api/appointments"); restricted {
		t.Fatal("plain appointment booking should not be role-restricted")
	}
}

func containsRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
