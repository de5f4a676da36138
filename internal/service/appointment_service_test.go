package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/events"
	"github.com/spec-kit/hospital-service/internal/repository"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) error {
	if appt.ID.IsZero() {
		appt.ID = primitive.NewObjectID()
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	clone := *appt
	r.appointments = append(r.appointments, &clone)
	return nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, appt *domain.Appointment) error {
	for i, existing := range r.appointments {
		if existing.ID == appt.ID {
			clone := *appt
			r.appointments[i] = &clone
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	for _, appt := range r.appointments {
		if appt.ID.Hex() == id {
			clone := *appt
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAppointmentRepo) List(_ context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appt := range r.appointments {
		if filter.PatientID != nil && appt.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && appt.DoctorID != *filter.DoctorID {
			continue
		}
		out = append(out, *appt)
	}
	return out, nil
}

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	mu       sync.Mutex
	captured []events.Event
}

func (r *eventRecorder) record(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.captured = append(r.captured, event)
	return nil
}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.captured))
	for _, e := range r.captured {
		out = append(out, e.Type)
	}
	return out
}

type bookingFixture struct {
	svc      *AppointmentService
	appts    *fakeAppointmentRepo
	patients *fakePatientRepo
	doctors  *fakeDoctorRepo
	recorder *eventRecorder
	patient  *domain.Patient
	doctor   *domain.Doctor
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		appts:    &fakeAppointmentRepo{},
		patients: &fakePatientRepo{},
		doctors:  &fakeDoctorRepo{},
		recorder: &eventRecorder{},
	}

	f.patient = &domain.Patient{UserID: primitive.NewObjectID(), PatientID: "PAT-TEST0001"}
	if err := f.patients.Create(context.Background(), f.patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	deptID := primitive.NewObjectID()
	f.doctor = &domain.Doctor{
		UserID:   primitive.NewObjectID(),
		DoctorID: "DOC-TEST0001",
		Status:   domain.DoctorStatusActive,
		ProfessionalInfo: domain.DoctorProfessionalInfo{
			Specialization: "cardiology",
			DepartmentID:   &deptID,
		},
	}
	if err := f.doctors.Create(context.Background(), f.doctor); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}

	dispatcher := events.NewInMemoryDispatcher(nil)
	dispatcher.Subscribe(events.EventAppointmentBooked, f.recorder.record)
	dispatcher.Subscribe(events.EventAppointmentStatusChanged, f.recorder.record)

	f.svc = NewAppointmentService(f.appts, f.patients, f.doctors, dispatcher)
	return f
}

func TestBookAppointment(t *testing.T) {
	f := newBookingFixture(t)

	appt, err := f.svc.Book(context.Background(), BookInput{
		PatientID:   f.patient.ID.Hex(),
		DoctorID:    f.doctor.ID.Hex(),
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Reason:      "checkup",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if appt.Status != domain.AppointmentStatusScheduled {
		t.Fatalf("status = %s", appt.Status)
	}
	if appt.DepartmentID == nil || *appt.DepartmentID != *f.doctor.ProfessionalInfo.DepartmentID {
		t.Fatal("department not inherited from doctor")
	}
	if types := f.recorder.types(); len(types) != 1 || types[0] != events.EventAppointmentBooked {
		t.Fatalf("events = %v", types)
	}
}

func TestBookAppointmentRejections(t *testing.T) {
	f := newBookingFixture(t)
	future := time.Now().Add(24 * time.Hour)

	cases := []struct {
		name  string
		input BookInput
		code  string
	}{
		{"past slot", BookInput{PatientID: f.patient.ID.Hex(), DoctorID: f.doctor.ID.Hex(),
			ScheduledAt: time.Now().Add(-time.Hour)}, "VALIDATION_ERROR"},
		{"unknown patient", BookInput{PatientID: primitive.NewObjectID().Hex(), DoctorID: f.doctor.ID.Hex(),
			ScheduledAt: future}, "NOT_FOUND"},
		{"unknown doctor", BookInput{PatientID: f.patient.ID.Hex(), DoctorID: primitive.NewObjectID().Hex(),
			ScheduledAt: future}, "NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Book(context.Background(), tc.input)
			if code := errCode(t, err); code != tc.code {
				t.Fatalf("code = %s, want %s", code, tc.code)
			}
		})
	}
}

func TestBookAppointmentInactiveDoctor(t *testing.T) {
	f := newBookingFixture(t)
	f.doctor.Status = domain.DoctorStatusOnLeave
	if err := f.doctors.Update(context.Background(), f.doctor); err != nil {
		t.Fatalf("update doctor: %v", err)
	}

	_, err := f.svc.Book(context.Background(), BookInput{
		PatientID:   f.patient.ID.Hex(),
		DoctorID:    f.doctor.ID.Hex(),
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	if code := errCode(t, err); code != "CONFLICT" {
		t.Fatalf("code = %s, want CONFLICT", code)
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	f := newBookingFixture(t)
	appt, err := f.svc.Book(context.Background(), BookInput{
		PatientID:   f.patient.ID.Hex(),
		DoctorID:    f.doctor.ID.Hex(),
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if _, err := f.svc.UpdateStatus(context.Background(), appt.ID.Hex(), "teleported"); err == nil {
		t.Fatal("unknown status accepted")
	}

	updated, err := f.svc.UpdateStatus(context.Background(), appt.ID.Hex(), domain.AppointmentStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.AppointmentStatusCompleted {
		t.Fatalf("status = %s", updated.Status)
	}

	// No-op transition emits no extra event.
	if _, err := f.svc.UpdateStatus(context.Background(), appt.ID.Hex(), domain.AppointmentStatusCompleted); err != nil {
		t.Fatalf("idempotent transition: %v", err)
	}
	types := f.recorder.types()
	if len(types) != 2 || types[1] != events.EventAppointmentStatusChanged {
		t.Fatalf("events = %v", types)
	}
}

func TestListForPatient(t *testing.T) {
	f := newBookingFixture(t)
	if _, err := f.svc.Book(context.Background(), BookInput{
		PatientID:   f.patient.ID.Hex(),
		DoctorID:    f.doctor.ID.Hex(),
		ScheduledAt: time.Now().Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("Book: %v", err)
	}

	appointments, err := f.svc.ListForPatient(context.Background(), f.patient.ID.Hex())
	if err != nil {
		t.Fatalf("ListForPatient: %v", err)
	}
	if len(appointments) != 1 {
		t.Fatalf("got %d appointments", len(appointments))
	}

	if _, err := f.svc.ListForPatient(context.Background(), primitive.NewObjectID().Hex()); err == nil {
		t.Fatal("unknown patient accepted")
	}
}
