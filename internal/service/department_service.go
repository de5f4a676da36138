package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/observability"
	"github.com/spec-kit/hospital-service/internal/persistence"
	"github.com/spec-kit/hospital-service/internal/repository"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

const (
	departmentsCacheKey = "departments:active"
	departmentsCacheTTL = 5 * time.Minute
)

// DepartmentService serves the read-mostly department listing backing the
// public registration forms, caching it in Redis.
type DepartmentService struct {
	departments repository.DepartmentRepository
	cache       *persistence.Redis
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, cache *persistence.Redis, metrics *observability.Metrics, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{departments: departments, cache: cache, metrics: metrics, logger: logger}
}

// ListActive returns active departments, preferring the cache. Cache failures
// fall back to the database silently.
func (s *DepartmentService) ListActive(ctx context.Context) ([]domain.Department, error) {
	if s.cache != nil && s.cache.Client != nil {
		if raw, err := s.cache.Client.Get(ctx, departmentsCacheKey).Bytes(); err == nil {
			var cached []domain.Department
			if err := json.Unmarshal(raw, &cached); err == nil {
				s.metrics.RecordCacheHit(departmentsCacheKey)
				return cached, nil
			}
		}
		s.metrics.RecordCacheMiss(departmentsCacheKey)
	}

	departments, err := s.departments.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.Client != nil {
		if raw, err := json.Marshal(departments); err == nil {
			if err := s.cache.Client.Set(ctx, departmentsCacheKey, raw, departmentsCacheTTL).Err(); err != nil {
				s.logger.Debug("department cache write failed", zap.Error(err))
			}
		}
	}
	return departments, nil
}

// Create adds a department and invalidates the cache.
func (s *DepartmentService) Create(ctx context.Context, dept *domain.Department) error {
	if dept.Name == "" {
		return apperrors.NewValidationError("Department name is required", nil)
	}
	dept.IsActive = true
	if err := s.departments.Create(ctx, dept); err != nil {
		return err
	}

	if s.cache != nil && s.cache.Client != nil {
		if err := s.cache.Client.Del(ctx, departmentsCacheKey).Err(); err != nil {
			s.logger.Debug("department cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}
