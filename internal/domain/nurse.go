package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NurseShift enumerates shift assignments.
type NurseShift string

const (
	NurseShiftDay   NurseShift = "day"
	NurseShiftNight NurseShift = "night"
	NurseShiftSwing NurseShift = "swing"
)

// NurseProfessionalInfo captures staffing details.
type NurseProfessionalInfo struct {
	Experience   int                 `bson:"experience" json:"experience"`
	Shift        NurseShift          `bson:"shift" json:"shift"`
	DepartmentID *primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
}

// Nurse is the role profile linked to a nurse identity.
type Nurse struct {
	ID               primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID    `bson:"userId" json:"userId"`
	NurseID          string                `bson:"nurseId" json:"nurseId"`
	PersonalInfo     PersonalInfo          `bson:"personalInfo" json:"personalInfo"`
	ProfessionalInfo NurseProfessionalInfo `bson:"professionalInfo" json:"professionalInfo"`
	JoinDate         time.Time             `bson:"joinDate" json:"joinDate"`
	Status           string                `bson:"status" json:"status"`
}
