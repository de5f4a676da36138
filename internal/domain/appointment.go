package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus enumerates lifecycle states for appointments.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// Appointment links a patient to a doctor at a point in time. Slot-conflict
// detection is intentionally absent; overlapping bookings are accepted.
type Appointment struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PatientID    primitive.ObjectID  `bson:"patientId" json:"patientId"`
	DoctorID     primitive.ObjectID  `bson:"doctorId" json:"doctorId"`
	DepartmentID *primitive.ObjectID `bson:"departmentId,omitempty" json:"departmentId,omitempty"`
	ScheduledAt  time.Time           `bson:"scheduledAt" json:"scheduledAt"`
	Reason       string              `bson:"reason,omitempty" json:"reason,omitempty"`
	Status       AppointmentStatus   `bson:"status" json:"status"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
