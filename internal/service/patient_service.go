package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/repository"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// PatientService coordinates patient record workflows.
type PatientService struct {
	patients  repository.PatientRepository
	records   repository.MedicalRecordRepository
	insurance repository.InsuranceRepository
}

// NewPatientService constructs the service.
func NewPatientService(patients repository.PatientRepository, records repository.MedicalRecordRepository, insurance repository.InsuranceRepository) *PatientService {
	return &PatientService{patients: patients, records: records, insurance: insurance}
}

// List returns patients for staff views.
func (s *PatientService) List(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.patients.List(ctx, limit, offset)
}

// Get returns one patient by profile id.
func (s *PatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("patient", map[string]any{"id": id})
		}
		return nil, err
	}
	return patient, nil
}

// UpdateContact replaces the patient's contact details.
func (s *PatientService) UpdateContact(ctx context.Context, id string, contact domain.ContactInfo) (*domain.Patient, error) {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patient.ContactInfo = contact
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// MedicalHistory returns the patient's records, newest first.
func (s *PatientService) MedicalHistory(ctx context.Context, patientID string) ([]domain.MedicalRecord, error) {
	patient, err := s.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.records.ListByPatient(ctx, patient.ID)
}

// AddMedicalRecord appends a record to the patient's history.
func (s *PatientService) AddMedicalRecord(ctx context.Context, patientID string, record *domain.MedicalRecord) error {
	patient, err := s.Get(ctx, patientID)
	if err != nil {
		return err
	}
	if record.Diagnosis == "" {
		return apperrors.NewValidationError("Diagnosis is required", nil)
	}
	record.PatientID = patient.ID
	return s.records.Create(ctx, record)
}

// Insurance returns the patient's insurance record.
func (s *PatientService) Insurance(ctx context.Context, patientID string) (*domain.InsuranceRecord, error) {
	patient, err := s.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	record, err := s.insurance.GetByPatient(ctx, patient.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("insurance record", map[string]any{"patientId": patientID})
		}
		return nil, err
	}
	return record, nil
}

// AddInsurance attaches an insurance record to the patient.
func (s *PatientService) AddInsurance(ctx context.Context, patientID string, record *domain.InsuranceRecord) error {
	patient, err := s.Get(ctx, patientID)
	if err != nil {
		return err
	}
	if record.Provider == "" || record.PolicyNumber == "" {
		return apperrors.NewValidationError("Provider and policy number are required", nil)
	}
	record.PatientID = patient.ID
	return s.insurance.Create(ctx, record)
}

// ChargeInsurance subtracts a charge from the coverage balance. This is the
// full extent of billing; anything richer lives outside this service.
func (s *PatientService) ChargeInsurance(ctx context.Context, patientID string, amount float64) (*domain.InsuranceRecord, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("Charge amount must be positive", nil)
	}
	record, err := s.Insurance(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.insurance.DeductBalance(ctx, record.ID, amount)
}

// ResolveByUser maps an identity id onto its patient profile.
func (s *PatientService) ResolveByUser(ctx context.Context, userID string) (*domain.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	patient, err := s.patients.GetByUserID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("patient", nil)
		}
		return nil, err
	}
	return patient, nil
}
