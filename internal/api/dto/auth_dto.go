package dto

import "time"

// LoginRequest payload for credential verification.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// ProfileData carries role-specific registration fields.
type ProfileData struct {
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Address         string     `json:"address,omitempty"`
	BloodGroup      string     `json:"bloodGroup,omitempty"`
	Specialization  string     `json:"specialization,omitempty"`
	Experience      int        `json:"experience,omitempty"`
	ConsultationFee float64    `json:"consultationFee,omitempty"`
	Shift           string     `json:"shift,omitempty"`
	DepartmentID    string     `json:"departmentId,omitempty"`
}

// RegisterRequest payload for new identities.
type RegisterRequest struct {
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Role     string       `json:"role"`
	Profile  *ProfileData `json:"profileData,omitempty"`
}

// ForgotPasswordRequest payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// UserResponse is the identity shape returned by auth endpoints.
type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"isActive"`
	EmailVerified bool       `json:"emailVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	ProfileID     *string    `json:"profileId,omitempty"`
}
