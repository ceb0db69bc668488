package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(tx database.Transactor, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
	}
}

func (s *EmployeeServiceImpl) get(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Position:     req.Position,
		DailyWage:    req.DailyWage,
		OvertimeRate: req.OvertimeRate,
		HalfDayRate:  req.HalfDayRate,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.get(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, employee.NewEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.IsEmpty() {
		return s.GetEmployee(ctx, req.ID)
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, employee.ErrEmailExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return s.GetEmployee(ctx, req.ID)
}

func (s *EmployeeServiceImpl) setActive(ctx context.Context, id string, active bool) (employee.EmployeeResponse, error) {
	emp, err := s.get(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if emp.IsActive == active {
		if active {
			return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyActive
		}
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}

	if err := s.employeeRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to set employee active=%t: %w", active, err)
	}

	return s.GetEmployee(ctx, id)
}

// DeactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return s.setActive(ctx, id, false)
}

// ReactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ReactivateEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return s.setActive(ctx, id, true)
}

// DeleteEmployee implements employee.EmployeeService. Employees with attendance,
// calculations or payments are deactivated instead so their history survives.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) (employee.DeleteEmployeeResponse, error) {
	result := employee.DeleteEmployeeResponse{ID: id}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.get(ctx, id)
		if err != nil {
			return err
		}

		hasHistory, err := s.employeeRepo.HasHistory(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check employee history: %w", err)
		}

		if !hasHistory {
			if err := s.employeeRepo.Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete employee: %w", err)
			}
			result.Deleted = true
			return nil
		}

		if emp.IsActive {
			if err := s.employeeRepo.SetActive(ctx, id, false); err != nil {
				return fmt.Errorf("failed to deactivate employee: %w", err)
			}
		}
		result.Deactivated = true
		return nil
	})
	if err != nil {
		return employee.DeleteEmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "employee removed", "employee_id", id, "deleted", result.Deleted, "deactivated", result.Deactivated)
	return result, nil
}
