package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/hospital-service/internal/api/dto"
	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/service"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// PatientsHandler exposes patient registration and record endpoints.
type PatientsHandler struct {
	auth         *service.AuthService
	patients     *service.PatientService
	appointments *service.AppointmentService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(authService *service.AuthService, patients *service.PatientService, appointments *service.AppointmentService) *PatientsHandler {
	return &PatientsHandler{auth: authService, patients: patients, appointments: appointments}
}

// Register handles POST /api/patients/register. Public; forces the patient role.
func (h *PatientsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.RolePatient,
		Profile:  profileInput(req.Profile),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Patient registered successfully",
		"user": dto.UserResponse{
			ID:        result.User.ID.Hex(),
			Email:     result.User.Email,
			Role:      string(result.User.Role),
			IsActive:  result.User.IsActive,
			ProfileID: result.ProfileID,
		},
	})
}

// List handles GET /api/patients.
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	patients, err := h.patients.List(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"patients": patients})
}

// Get handles GET /api/patients/:id.
func (h *PatientsHandler) Get(c *fiber.Ctx) error {
	patient, err := h.patients.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"patient": patient})
}

// UpdateContact handles PUT /api/patients/:id.
func (h *PatientsHandler) UpdateContact(c *fiber.Ctx) error {
	var req dto.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patient, err := h.patients.UpdateContact(c.UserContext(), c.Params("id"), domain.ContactInfo{
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"patient": patient})
}

// MedicalHistory handles GET /api/patients/:id/medical-history.
func (h *PatientsHandler) MedicalHistory(c *fiber.Ctx) error {
	records, err := h.patients.MedicalHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"records": records})
}

// AddMedicalRecord handles POST /api/patients/:id/medical-history.
func (h *PatientsHandler) AddMedicalRecord(c *fiber.Ctx) error {
	var req dto.MedicalRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record := &domain.MedicalRecord{
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		Medications: req.Medications,
		Notes:       req.Notes,
	}
	if req.DoctorID != "" {
		if oid, err := primitive.ObjectIDFromHex(req.DoctorID); err == nil {
			record.DoctorID = &oid
		}
	}

	if err := h.patients.AddMedicalRecord(c.UserContext(), c.Params("id"), record); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"record": record})
}

// Insurance handles GET /api/patients/:id/insurance.
func (h *PatientsHandler) Insurance(c *fiber.Ctx) error {
	record, err := h.patients.Insurance(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"insurance": record})
}

// AddInsurance handles POST /api/patients/:id/insurance.
func (h *PatientsHandler) AddInsurance(c *fiber.Ctx) error {
	var req dto.InsuranceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record := &domain.InsuranceRecord{
		Provider:     req.Provider,
		PolicyNumber: req.PolicyNumber,
		Balance:      req.Balance,
		ValidUntil:   req.ValidUntil,
	}
	if err := h.patients.AddInsurance(c.UserContext(), c.Params("id"), record); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"insurance": record})
}

// ChargeInsurance handles POST /api/patients/:id/insurance/charge.
func (h *PatientsHandler) ChargeInsurance(c *fiber.Ctx) error {
	var req dto.InsuranceChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record, err := h.patients.ChargeInsurance(c.UserContext(), c.Params("id"), req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"insurance": record})
}

// Appointments handles GET /api/patients/:id/appointments.
func (h *PatientsHandler) Appointments(c *fiber.Ctx) error {
	appointments, err := h.appointments.ListForPatient(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}
