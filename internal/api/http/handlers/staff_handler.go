package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-service/internal/api/dto"
	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/service"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// StaffHandler exposes doctor and nurse registration plus management listings.
type StaffHandler struct {
	auth    *service.AuthService
	doctors *service.DoctorService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService *service.AuthService, doctors *service.DoctorService) *StaffHandler {
	return &StaffHandler{auth: authService, doctors: doctors}
}

// RegisterDoctor handles POST /api/doctors/register.
func (h *StaffHandler) RegisterDoctor(c *fiber.Ctx) error {
	return h.register(c, domain.RoleDoctor, "Doctor registered successfully")
}

// RegisterNurse handles POST /api/nurses/register.
func (h *StaffHandler) RegisterNurse(c *fiber.Ctx) error {
	return h.register(c, domain.RoleNurse, "Nurse registered successfully")
}

func (h *StaffHandler) register(c *fiber.Ctx, role domain.Role, message string) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Profile:  profileInput(req.Profile),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": message,
		"user": dto.UserResponse{
			ID:        result.User.ID.Hex(),
			Email:     result.User.Email,
			Role:      string(result.User.Role),
			IsActive:  result.User.IsActive,
			ProfileID: result.ProfileID,
		},
	})
}

// ListDoctors handles GET /api/doctors/manage.
func (h *StaffHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.doctors.List(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"doctors": doctors})
}
