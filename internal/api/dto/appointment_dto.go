package dto

import "time"

// BookAppointmentRequest payload for booking.
type BookAppointmentRequest struct {
	PatientID   string    `json:"patientId"`
	DoctorID    string    `json:"doctorId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Reason      string    `json:"reason,omitempty"`
}

// AppointmentStatusRequest transitions an appointment.
type AppointmentStatusRequest struct {
	Status string `json:"status"`
}

// CreateDepartmentRequest payload for the admin console.
type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// SetUserActiveRequest toggles an identity.
type SetUserActiveRequest struct {
	IsActive bool `json:"isActive"`
}
