package service

import (
	"context"
	"fmt"

	"employee-service/internal/core"
	"employee-service/internal/mapper"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// EmployeeService holds the employee business rules: email uniqueness on
// create, full-overwrite update and best-effort event publishing after every
// mutation.
type EmployeeService struct {
	repo      core.Repository
	publisher core.EventPublisher
	log       *log.Helper
}

func NewEmployeeService(r core.Repository, p core.EventPublisher, logger log.Logger) *EmployeeService {
	return &EmployeeService{
		repo:      r,
		publisher: p,
		log:       log.NewHelper(log.With(logger, "module", "service/employee")),
	}
}

// CreateEmployee stores a new employee unless the email is already taken.
// The email check and the insert are not atomic.
func (s *EmployeeService) CreateEmployee(ctx context.Context, req core.CreateEmployeeRequest) (*core.EmployeeResponse, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	if existing != nil {
		return nil, core.AlreadyExists(req.Email)
	}

	saved, err := s.repo.Save(ctx, mapper.NewEmployee(req))
	if err != nil {
		return nil, fmt.Errorf("save employee: %w", err)
	}
	s.log.WithContext(ctx).Infof("employee created: id=%s", saved.ID)

	s.publish(ctx, saved)

	return mapper.ToResponse(saved), nil
}

// GetAllEmployees returns every stored employee in store order.
func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]*core.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all employees: %w", err)
	}
	if employees == nil {
		employees = []*core.Employee{}
	}
	return employees, nil
}

func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*core.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find employee %s: %w", id, err)
	}
	if employee == nil {
		return nil, core.NotFound(id)
	}
	return employee, nil
}

// UpdateEmployee replaces every field of an existing employee with the
// request's values. Fields missing from the request are cleared.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, req core.UpdateEmployeeRequest) (*core.Employee, error) {
	current, err := s.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Save(ctx, mapper.ApplyUpdate(req, current))
	if err != nil {
		return nil, fmt.Errorf("save employee %s: %w", id, err)
	}
	s.log.WithContext(ctx).Infof("employee updated: id=%s", id)

	s.publish(ctx, updated)

	return updated, nil
}

// DeleteEmployee removes an employee. A missing id is not an error; the
// deletion event is published either way.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	s.log.WithContext(ctx).Infof("employee deleted: id=%s", id)

	if err := s.publisher.PublishDeletion(context.WithoutCancel(ctx), id); err != nil {
		s.log.WithContext(ctx).Warnf("failed to publish employee deletion event: id=%s: %v", id, err)
	}
	return nil
}

// publish emits the employee event after the store write has committed.
// Failures are logged only and the write is kept.
func (s *EmployeeService) publish(ctx context.Context, e *core.Employee) {
	if err := s.publisher.PublishEmployee(context.WithoutCancel(ctx), e); err != nil {
		s.log.WithContext(ctx).Warnf("failed to publish employee event: id=%s: %v", e.ID, err)
	}
}
