package service

import (
	"context"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/repository"
)

// DoctorService covers doctor roster views.
type DoctorService struct {
	doctors repository.DoctorRepository
}

// NewDoctorService constructs the service.
func NewDoctorService(doctors repository.DoctorRepository) *DoctorService {
	return &DoctorService{doctors: doctors}
}

// List returns doctors for the management console.
func (s *DoctorService) List(ctx context.Context, limit, offset int) ([]domain.Doctor, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.doctors.List(ctx, limit, offset)
}
