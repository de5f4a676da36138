package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/hospital-service/internal/domain"
)

func testManager() *TokenManager {
	return NewTokenManager("test-secret", time.Hour, 2*time.Hour)
}

func TestIssueAndVerify(t *testing.T) {
	tm := testManager()
	profileID := "64f000000000000000000001"

	token, expiresAt, err := tm.Issue("user-1", "doc@example.com", domain.RoleDoctor, &profileID, false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 55*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "doc@example.com" || claims.Role != domain.RoleDoctor {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ProfileID == nil || *claims.ProfileID != profileID {
		t.Fatalf("profileId not carried: %+v", claims.ProfileID)
	}
	if claims.RememberMe {
		t.Fatal("rememberMe should be false")
	}
	if claims.LoginTime == 0 {
		t.Fatal("loginTime missing")
	}
}

func TestRememberMeExtendsTTL(t *testing.T) {
	tm := testManager()

	if tm.TTL(false) != time.Hour || tm.TTL(true) != 2*time.Hour {
		t.Fatalf("TTL mismatch: %v / %v", tm.TTL(false), tm.TTL(true))
	}

	token, expiresAt, err := tm.Issue("user-1", "a@b.co", domain.RolePatient, nil, true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 115*time.Minute {
		t.Fatalf("extended session not applied: %v", remaining)
	}
	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !claims.RememberMe {
		t.Fatal("rememberMe flag lost")
	}
}

// signWith builds a token outside the manager so individual registered claims
// can be broken.
func signWith(t *testing.T, secret string, method jwt.SigningMethod, mutate func(*Claims)) string {
	t.Helper()
	now := time.Now()
	claims := &Claims{
		UserID: "user-1",
		Email:  "a@b.co",
		Role:   domain.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestVerifyRejections(t *testing.T) {
	tm := testManager()

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signWith(t, "other-secret", jwt.SigningMethodHS256, nil)},
		{"wrong method", signWith(t, "test-secret", jwt.SigningMethodHS384, nil)},
		{"expired", signWith(t, "test-secret", jwt.SigningMethodHS256, func(c *Claims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		})},
		{"wrong issuer", signWith(t, "test-secret", jwt.SigningMethodHS256, func(c *Claims) {
			c.Issuer = "someone-else"
		})},
		{"wrong audience", signWith(t, "test-secret", jwt.SigningMethodHS256, func(c *Claims) {
			c.Audience = jwt.ClaimStrings{"other-users"}
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := tm.Verify(tc.token)
			if claims != nil {
				t.Fatal("claims returned for invalid token")
			}
			if !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("want ErrTokenInvalid, got %v", err)
			}
		})
	}
}
