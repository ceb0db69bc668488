package wage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
)

type WageServiceImpl struct {
	employeeRepo    employee.EmployeeRepository
	attendanceRepo  attendance.AttendanceRepository
	calculationRepo wage.CalculationRepository
}

func NewWageService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	calculationRepo wage.CalculationRepository,
) wage.WageService {
	return &WageServiceImpl{
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		calculationRepo: calculationRepo,
	}
}

// compute resolves the employee and its attendance for the period. An unknown
// employee is a validation failure on employee_id rather than a missing resource.
func (s *WageServiceImpl) compute(ctx context.Context, req wage.CalculateWageRequest) (employee.Employee, wage.Period, wage.Breakdown, error) {
	period, err := req.Validate()
	if err != nil {
		return employee.Employee{}, wage.Period{}, wage.Breakdown{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, wage.Period{}, wage.Breakdown{}, validator.ValidationErrors{
				{Field: "employee_id", Message: "does not match any employee"},
			}
		}
		return employee.Employee{}, wage.Period{}, wage.Breakdown{}, fmt.Errorf("failed to get employee: %w", err)
	}

	records, err := s.attendanceRepo.List(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return employee.Employee{}, wage.Period{}, wage.Breakdown{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	breakdown, err := ComputeBreakdown(&emp, records)
	if err != nil {
		return employee.Employee{}, wage.Period{}, wage.Breakdown{}, err
	}

	return emp, period, breakdown, nil
}

// PreviewWage implements wage.WageService.
func (s *WageServiceImpl) PreviewWage(ctx context.Context, req wage.CalculateWageRequest) (wage.PreviewResponse, error) {
	emp, period, breakdown, err := s.compute(ctx, req)
	if err != nil {
		return wage.PreviewResponse{}, err
	}

	return wage.PreviewResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		PeriodType:   string(period.Type),
		PeriodStart:  period.Start.Format(validator.DateLayout),
		PeriodEnd:    period.End.Format(validator.DateLayout),
		Breakdown:    wage.NewBreakdownResponse(breakdown),
	}, nil
}

// CalculateAndStore implements wage.WageService. Every call inserts a new calculation.
func (s *WageServiceImpl) CalculateAndStore(ctx context.Context, req wage.CalculateWageRequest) (wage.CalculationResponse, error) {
	emp, period, breakdown, err := s.compute(ctx, req)
	if err != nil {
		return wage.CalculationResponse{}, err
	}

	calc, err := s.calculationRepo.Create(ctx, wage.Calculation{
		EmployeeID:   emp.ID,
		PeriodStart:  period.Start,
		PeriodEnd:    period.End,
		PeriodType:   period.Type,
		Breakdown:    breakdown,
		EmployeeName: &emp.Name,
	})
	if err != nil {
		return wage.CalculationResponse{}, fmt.Errorf("failed to store wage calculation: %w", err)
	}

	slog.InfoContext(ctx, "wage calculation stored",
		"calculation_id", calc.ID,
		"employee_id", emp.ID,
		"period_start", period.Start.Format(validator.DateLayout),
		"period_end", period.End.Format(validator.DateLayout),
		"net_amount", calc.NetAmount.String(),
	)

	return wage.NewCalculationResponse(calc), nil
}

// GetCalculation implements wage.WageService.
func (s *WageServiceImpl) GetCalculation(ctx context.Context, id string) (wage.CalculationResponse, error) {
	calc, err := s.calculationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, wage.ErrCalculationNotFound) {
			return wage.CalculationResponse{}, err
		}
		return wage.CalculationResponse{}, fmt.Errorf("failed to get wage calculation: %w", err)
	}
	return wage.NewCalculationResponse(calc), nil
}

// ListCalculations implements wage.WageService.
func (s *WageServiceImpl) ListCalculations(ctx context.Context, filter wage.CalculationFilter) (wage.ListCalculationResponse, error) {
	filter.Normalize()

	calcs, total, err := s.calculationRepo.List(ctx, filter)
	if err != nil {
		return wage.ListCalculationResponse{}, fmt.Errorf("failed to list wage calculations: %w", err)
	}

	data := make([]wage.CalculationResponse, 0, len(calcs))
	for _, c := range calcs {
		data = append(data, wage.NewCalculationResponse(c))
	}

	return wage.ListCalculationResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
