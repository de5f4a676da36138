package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsuranceRecord tracks a patient's policy and remaining coverage balance.
// Billing here is limited to subtracting charges from the balance.
type InsuranceRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID    primitive.ObjectID `bson:"patientId" json:"patientId"`
	Provider     string             `bson:"provider" json:"provider"`
	PolicyNumber string             `bson:"policyNumber" json:"policyNumber"`
	Balance      float64            `bson:"balance" json:"balance"`
	ValidUntil   *time.Time         `bson:"validUntil,omitempty" json:"validUntil,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
