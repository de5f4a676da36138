package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role enumerates login-capable account types. The set is closed; anything
// outside it is rejected at registration time.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RolePatient      Role = "patient"
	RolePharmacist   Role = "pharmacist"
)

// ValidRole reports whether r belongs to the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RolePatient, RolePharmacist:
		return true
	}
	return false
}

// HasProfile reports whether the role carries a role-specific profile record.
// Admin, receptionist and pharmacist accounts are identity-only.
func (r Role) HasProfile() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleNurse:
		return true
	}
	return false
}

// User is the identity record keyed by email.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                string             `bson:"email" json:"email"`
	PasswordHash         string             `bson:"password" json:"-"`
	Role                 Role               `bson:"role" json:"role"`
	IsActive             bool               `bson:"isActive" json:"isActive"`
	EmailVerified        bool               `bson:"emailVerified" json:"emailVerified"`
	LastLogin            *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	ResetPasswordToken   string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time         `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
