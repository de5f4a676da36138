package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DoctorStatus enumerates employment states for doctors.
type DoctorStatus string

const (
	DoctorStatusActive  DoctorStatus = "active"
	DoctorStatusOnLeave DoctorStatus = "on_leave"
	DoctorStatusRetired DoctorStatus = "retired"
)

// DoctorProfessionalInfo captures practice details.
type DoctorProfessionalInfo struct {
	Specialization  string              `bson:"specialization" json:"specialization"`
	Experience      int                 `bson:"experience" json:"experience"`
	ConsultationFee float64             `bson:"consultationFee" json:"consultationFee"`
	DepartmentID    *primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
}

// Doctor is the role profile linked to a doctor identity.
type Doctor struct {
	ID               primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID     `bson:"userId" json:"userId"`
	DoctorID         string                 `bson:"doctorId" json:"doctorId"`
	PersonalInfo     PersonalInfo           `bson:"personalInfo" json:"personalInfo"`
	ProfessionalInfo DoctorProfessionalInfo `bson:"professionalInfo" json:"professionalInfo"`
	JoinDate         time.Time              `bson:"joinDate" json:"joinDate"`
	Status           DoctorStatus           `bson:"status" json:"status"`
}
