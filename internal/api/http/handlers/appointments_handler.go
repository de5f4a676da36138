package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/hospital-service/internal/api/dto"
	"github.com/spec-kit/hospital-service/internal/auth"
	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/repository"
	"github.com/spec-kit/hospital-service/internal/service"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// AppointmentsHandler exposes booking and management endpoints.
type AppointmentsHandler struct {
	appointments *service.AppointmentService
	patients     *service.PatientService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointments *service.AppointmentService, patients *service.PatientService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointments, patients: patients}
}

// Book handles POST /api/appointments. Patients may omit patientId to book
// for themselves; staff must name the patient explicitly.
func (h *AppointmentsHandler) Book(c *fiber.Ctx) error {
	var req dto.BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patientID := req.PatientID
	if patientID == "" {
		if ac, ok := auth.AuthContextFrom(c); ok && ac.Role == domain.RolePatient {
			patient, err := h.patients.ResolveByUser(c.UserContext(), ac.UserID)
			if err != nil {
				return err
			}
			patientID = patient.ID.Hex()
		}
	}
	if patientID == "" || req.DoctorID == "" || req.ScheduledAt.IsZero() {
		return apperrors.NewValidationError("patientId, doctorId and scheduledAt are required", nil)
	}

	appt, err := h.appointments.Book(c.UserContext(), service.BookInput{
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"appointment": appt})
}

// List handles GET /api/appointments/manage.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	filter := repository.AppointmentFilter{
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}
	if doctorID := c.Query("doctorId"); doctorID != "" {
		if oid, err := primitive.ObjectIDFromHex(doctorID); err == nil {
			filter.DoctorID = &oid
		}
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}

	appointments, err := h.appointments.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

// UpdateStatus handles PUT /api/appointments/manage/:id/status.
func (h *AppointmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.AppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	appt, err := h.appointments.UpdateStatus(c.UserContext(), c.Params("id"), domain.AppointmentStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"appointment": appt})
}
