package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-service/internal/api/dto"
	"github.com/spec-kit/hospital-service/internal/service"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// AdminHandler exposes identity management for administrators.
type AdminHandler struct {
	users *service.UserService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserResponse{
			ID:            u.ID.Hex(),
			Email:         u.Email,
			Role:          string(u.Role),
			IsActive:      u.IsActive,
			EmailVerified: u.EmailVerified,
			LastLogin:     u.LastLogin,
		})
	}
	return c.JSON(fiber.Map{"users": out})
}

// SetUserActive handles PUT /api/users/manage/:id/active.
func (h *AdminHandler) SetUserActive(c *fiber.Ctx) error {
	var req dto.SetUserActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.users.SetActive(c.UserContext(), c.Params("id"), req.IsActive); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User updated", "isActive": req.IsActive})
}
