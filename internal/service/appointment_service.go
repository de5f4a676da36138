package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/events"
	"github.com/spec-kit/hospital-service/internal/repository"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// AppointmentService coordinates booking workflows. It performs no
// slot-conflict resolution; overlapping bookings are accepted as-is.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	doctors      repository.DoctorRepository
	dispatcher   events.Dispatcher
}

// NewAppointmentService constructs the service.
func NewAppointmentService(appointments repository.AppointmentRepository, patients repository.PatientRepository, doctors repository.DoctorRepository, dispatcher events.Dispatcher) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		dispatcher:   dispatcher,
	}
}

// BookInput describes a booking request.
type BookInput struct {
	PatientID   string
	DoctorID    string
	ScheduledAt time.Time
	Reason      string
}

// Book creates an appointment between an existing patient and doctor.
func (s *AppointmentService) Book(ctx context.Context, input BookInput) (*domain.Appointment, error) {
	if input.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.NewValidationError("Appointment must be scheduled in the future", nil)
	}

	patient, err := s.patients.GetByID(ctx, input.PatientID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("patient", map[string]any{"id": input.PatientID})
		}
		return nil, err
	}
	doctor, err := s.doctors.GetByID(ctx, input.DoctorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("doctor", map[string]any{"id": input.DoctorID})
		}
		return nil, err
	}
	if doctor.Status != domain.DoctorStatusActive {
		return nil, apperrors.NewConflict("Doctor is not accepting appointments", map[string]any{"status": string(doctor.Status)})
	}

	appt := &domain.Appointment{
		PatientID:    patient.ID,
		DoctorID:     doctor.ID,
		DepartmentID: doctor.ProfessionalInfo.DepartmentID,
		ScheduledAt:  input.ScheduledAt,
		Reason:       input.Reason,
		Status:       domain.AppointmentStatusScheduled,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAppointmentBooked,
			Timestamp: time.Now(),
			Payload: events.AppointmentBookedPayload{
				AppointmentID: appt.ID.Hex(),
				PatientID:     appt.PatientID.Hex(),
				DoctorID:      appt.DoctorID.Hex(),
				ScheduledAt:   appt.ScheduledAt,
			},
		})
	}
	return appt, nil
}

// UpdateStatus transitions an appointment and emits a status event.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	switch status {
	case domain.AppointmentStatusScheduled, domain.AppointmentStatusCompleted,
		domain.AppointmentStatusCancelled, domain.AppointmentStatusNoShow:
	default:
		return nil, apperrors.NewValidationError("Unknown appointment status", map[string]any{"status": string(status)})
	}

	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"id": id})
		}
		return nil, err
	}

	oldStatus := appt.Status
	if oldStatus == status {
		return appt, nil
	}
	appt.Status = status
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAppointmentStatusChanged,
			Timestamp: time.Now(),
			Payload: events.AppointmentStatusChangedPayload{
				AppointmentID: appt.ID.Hex(),
				OldStatus:     oldStatus,
				NewStatus:     status,
			},
		})
	}
	return appt, nil
}

// ListForPatient returns a patient's appointments.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("patient", map[string]any{"id": patientID})
		}
		return nil, err
	}
	pid := patient.ID
	return s.appointments.List(ctx, repository.AppointmentFilter{PatientID: &pid})
}

// List returns appointments for the management views.
func (s *AppointmentService) List(ctx context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}
	return s.appointments.List(ctx, filter)
}
