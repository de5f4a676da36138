package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonalInfo captures demographic fields shared by role profiles.
type PersonalInfo struct {
	FirstName   string     `bson:"firstName" json:"firstName"`
	LastName    string     `bson:"lastName" json:"lastName"`
	DateOfBirth *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender      string     `bson:"gender,omitempty" json:"gender,omitempty"`
}

// ContactInfo captures reachability fields for a patient.
type ContactInfo struct {
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

// Patient is the role profile linked to a patient identity.
type Patient struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	PatientID        string             `bson:"patientId" json:"patientId"`
	PersonalInfo     PersonalInfo       `bson:"personalInfo" json:"personalInfo"`
	ContactInfo      ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	BloodGroup       string             `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	RegistrationDate time.Time          `bson:"registrationDate" json:"registrationDate"`
}
