package dto

import "time"

// UpdateContactRequest replaces a patient's contact details.
type UpdateContactRequest struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// MedicalRecordRequest appends a medical history entry.
type MedicalRecordRequest struct {
	DoctorID    string   `json:"doctorId,omitempty"`
	Diagnosis   string   `json:"diagnosis"`
	Treatment   string   `json:"treatment,omitempty"`
	Medications []string `json:"medications,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// InsuranceRequest attaches an insurance record.
type InsuranceRequest struct {
	Provider     string     `json:"provider"`
	PolicyNumber string     `json:"policyNumber"`
	Balance      float64    `json:"balance"`
	ValidUntil   *time.Time `json:"validUntil,omitempty"`
}

// InsuranceChargeRequest deducts a charge from the coverage balance.
type InsuranceChargeRequest struct {
	Amount float64 `json:"amount"`
}
