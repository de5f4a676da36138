package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/hospital-service/internal/domain"
)

// Issuer and audience tags stamped into every session token. Verification
// rejects tokens carrying anything else.
const (
	TokenIssuer   = "hospital-management"
	TokenAudience = "hospital-users"
)

// ErrTokenInvalid is the single failure surfaced for any verification problem.
// Malformed, badly signed, wrong issuer/audience and expired tokens are
// deliberately indistinguishable to callers; the underlying cause is only logged.
var ErrTokenInvalid = errors.New("invalid token")

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret      []byte
	ttl         time.Duration
	extendedTTL time.Duration
}

// NewTokenManager builds a new manager. ttl applies to regular sessions,
// extendedTTL to "remember me" sessions.
func NewTokenManager(secret string, ttl, extendedTTL time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if extendedTTL <= 0 {
		extendedTTL = 30 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, extendedTTL: extendedTTL}
}

// Claims describes the session token payload.
type Claims struct {
	UserID     string      `json:"userId"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	ProfileID  *string     `json:"profileId,omitempty"`
	LoginTime  int64       `json:"loginTime"`
	RememberMe bool        `json:"rememberMe"`
	jwt.RegisteredClaims
}

// Issue builds and signs a session token for the identity. Pure computation;
// the caller is responsible for persisting nothing.
func (tm *TokenManager) Issue(userID, email string, role domain.Role, profileID *string, rememberMe bool) (string, time.Time, error) {
	now := time.Now()
	ttl := tm.ttl
	if rememberMe {
		ttl = tm.extendedTTL
	}
	expiresAt := now.Add(ttl)

	claims := &Claims{
		UserID:     userID,
		Email:      email,
		Role:       role,
		ProfileID:  profileID,
		LoginTime:  now.UnixMilli(),
		RememberMe: rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// TTL returns the session duration used for the given persistence request.
func (tm *TokenManager) TTL(rememberMe bool) time.Duration {
	if rememberMe {
		return tm.extendedTTL
	}
	return tm.ttl
}

// Verify validates signature, signing method, issuer, audience and expiry,
// returning the decoded claims. Every failure collapses into ErrTokenInvalid.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
	)
	if err != nil {
		return nil, errors.Join(ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
