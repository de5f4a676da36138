package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/hospital-service/internal/api/dto"
	"github.com/spec-kit/hospital-service/internal/auth"
	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/service"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// AuthHandler exposes login, registration and session endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	cookies auth.CookieWriter
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies auth.CookieWriter) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		return err
	}

	h.cookies.SetSession(c, result.Token, h.auth.TokenManager().TTL(result.RememberMe))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user": dto.UserResponse{
			ID:            result.User.ID.Hex(),
			Email:         result.User.Email,
			Role:          string(result.User.Role),
			IsActive:      result.User.IsActive,
			EmailVerified: result.User.EmailVerified,
			LastLogin:     result.User.LastLogin,
			ProfileID:     result.ProfileID,
		},
		"profile":   result.Profile,
		"loginTime": time.Now().UTC().Format(time.RFC3339),
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Profile:  profileInput(req.Profile),
	})
	if err != nil {
		return err
	}

	h.cookies.SetSession(c, result.Token, h.auth.TokenManager().TTL(false))

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user": dto.UserResponse{
			ID:        result.User.ID.Hex(),
			Email:     result.User.Email,
			Role:      string(result.User.Role),
			IsActive:  result.User.IsActive,
			ProfileID: result.ProfileID,
		},
	})
}

// Logout handles POST /api/auth/logout. Stateless sessions mean this only
// discards the client-held cookies; an already-captured token stays valid
// until it expires.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.ClearSession(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	authCtx, ok := auth.AuthContextFrom(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	user, profile, err := h.auth.Profile(c.UserContext(), authCtx.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user": dto.UserResponse{
			ID:            user.ID.Hex(),
			Email:         user.Email,
			Role:          string(user.Role),
			IsActive:      user.IsActive,
			EmailVerified: user.EmailVerified,
			LastLogin:     user.LastLogin,
			ProfileID:     authCtx.ProfileID,
		},
		"profile": profile,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password. Always responds with
// the same message so the endpoint cannot enumerate accounts.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("Email is required", nil)
	}

	if _, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "If the account exists, a reset link has been sent"})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("Reset token is required", nil)
	}

	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// CheckEmail handles GET /api/check-email?email=...
func (h *AuthHandler) CheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return apperrors.NewValidationError("Email query parameter is required", nil)
	}

	exists, err := h.auth.EmailExists(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// profileInput converts the transport shape into the service input.
func profileInput(data *dto.ProfileData) *service.ProfileInput {
	if data == nil {
		return nil
	}
	input := &service.ProfileInput{
		PersonalInfo: domain.PersonalInfo{
			FirstName:   data.FirstName,
			LastName:    data.LastName,
			DateOfBirth: data.DateOfBirth,
			Gender:      data.Gender,
		},
		ContactInfo: domain.ContactInfo{
			Phone:   data.Phone,
			Address: data.Address,
		},
		BloodGroup:      data.BloodGroup,
		Specialization:  data.Specialization,
		Experience:      data.Experience,
		ConsultationFee: data.ConsultationFee,
		Shift:           domain.NurseShift(data.Shift),
	}
	if data.DepartmentID != "" {
		if oid, err := primitive.ObjectIDFromHex(data.DepartmentID); err == nil {
			input.DepartmentID = &oid
		}
	}
	return input
}
