package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-service/internal/auth"
)

// PagesHandler serves the minimal HTML shells the session middleware
// navigates between. Real rendering lives in the frontend; these endpoints
// exist so redirects and cookie flows are exercisable end to end.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func page(c *fiber.Ctx, title string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString("<!doctype html><html><head><title>" + title + "</title></head><body><h1>" + title + "</h1></body></html>")
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return page(c, "Hospital Management")
}

// Login handles GET /login.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return page(c, "Sign In")
}

// Register handles GET /register.
func (h *PagesHandler) Register(c *fiber.Ctx) error {
	return page(c, "Create Account")
}

// ForgotPassword handles GET /forgot-password.
func (h *PagesHandler) ForgotPassword(c *fiber.Ctx) error {
	return page(c, "Forgot Password")
}

// ResetPassword handles GET /reset-password.
func (h *PagesHandler) ResetPassword(c *fiber.Ctx) error {
	return page(c, "Reset Password")
}

// Dashboard handles GET /dashboard. The session gate guarantees an
// authenticated context before this runs.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	if ac, ok := auth.AuthContextFrom(c); ok {
		return page(c, "Dashboard - "+ac.Email)
	}
	return page(c, "Dashboard")
}
