package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// DepartmentService manages the departments tickets are filed against.
type DepartmentService struct {
	departments repository.DepartmentRepository
	logger      *zap.Logger
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{departments: departments, logger: loggerOrNop(logger)}
}

// Create registers a department; names are unique ignoring case.
func (s *DepartmentService) Create(ctx context.Context, name, description, contact string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	dept := &domain.Department{
		Name:        name,
		Description: strings.TrimSpace(description),
		Contact:     strings.TrimSpace(contact),
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperrors.NewConflict("department already exists", map[string]any{"name": name})
		}
		return nil, err
	}
	s.logger.Info("department registered", zap.String("name", dept.Name))
	return dept, nil
}

// Get finds a department by name ignoring case.
func (s *DepartmentService) Get(ctx context.Context, name string) (*domain.Department, error) {
	dept, err := s.departments.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("department", map[string]any{"name": name})
		}
		return nil, err
	}
	return dept, nil
}

// List returns departments in registration order.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}
