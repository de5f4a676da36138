package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-service/internal/domain"
)

const authContextKey = "auth_context"

// AuthContext carries the verified identity into handlers. Handlers read this
// instead of re-verifying the token.
type AuthContext struct {
	UserID     string
	Email      string
	Role       domain.Role
	ProfileID  *string
	VerifiedAt time.Time
}

// SetAuthContext attaches the verified identity to the request.
func SetAuthContext(c *fiber.Ctx, authCtx *AuthContext) {
	c.Locals(authContextKey, authCtx)
}

// AuthContextFrom retrieves the verified identity, if the gate injected one.
func AuthContextFrom(c *fiber.Ctx) (*AuthContext, bool) {
	val := c.Locals(authContextKey)
	if val == nil {
		return nil, false
	}
	authCtx, ok := val.(*AuthContext)
	return authCtx, ok
}
