package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicalRecord is a single entry in a patient's medical history.
type MedicalRecord struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PatientID   primitive.ObjectID  `bson:"patientId" json:"patientId"`
	DoctorID    *primitive.ObjectID `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	Diagnosis   string              `bson:"diagnosis" json:"diagnosis"`
	Treatment   string              `bson:"treatment,omitempty" json:"treatment,omitempty"`
	Medications []string            `bson:"medications,omitempty" json:"medications,omitempty"`
	Notes       string              `bson:"notes,omitempty" json:"notes,omitempty"`
	RecordedAt  time.Time           `bson:"recordedAt" json:"recordedAt"`
}
