package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names shared with the client. SessionCookie holds the opaque token;
// StatusCookie only signals "logged in" so client code never decodes the token.
const (
	SessionCookie = "auth-token"
	StatusCookie  = "auth-status"
)

// CookieWriter stamps session cookies with environment-dependent attributes.
type CookieWriter struct {
	Secure bool
	Domain string
}

// SetSession writes the HTTP-only token cookie and the readable status cookie
// with a shared max age.
func (w CookieWriter) SetSession(c *fiber.Ctx, token string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Domain:   w.Domain,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   w.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     StatusCookie,
		Value:    "authenticated",
		Path:     "/",
		Domain:   w.Domain,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   w.Secure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSession expires both cookies immediately.
func (w CookieWriter) ClearSession(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Domain:   w.Domain,
		MaxAge:   -1,
		Expires:  expired,
		Secure:   w.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     StatusCookie,
		Value:    "",
		Path:     "/",
		Domain:   w.Domain,
		MaxAge:   -1,
		Expires:  expired,
		Secure:   w.Secure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
