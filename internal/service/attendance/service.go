package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// mark upserts one validated request. Attendance can only be marked for active employees.
func (a *AttendanceServiceImpl) mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return attendance.Record{}, employee.ErrEmployeeInactive
	}

	record, err := a.attendanceRepo.Upsert(ctx, req.Record())
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	record.EmployeeName = &emp.Name
	return record, nil
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.mark(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(record), nil
}

// MarkBulkAttendance implements attendance.AttendanceService. Either every entry is
// stored or none is.
func (a *AttendanceServiceImpl) MarkBulkAttendance(ctx context.Context, req attendance.BulkAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	requests := req.Requests()
	results := make([]attendance.AttendanceResponse, 0, len(requests))
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for i, r := range requests {
			record, err := a.mark(ctx, r)
			if err != nil {
				return fmt.Errorf("entries[%d]: %w", i, err)
			}
			results = append(results, attendance.NewAttendanceResponse(record))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, employeeID string, date string) (attendance.AttendanceResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs.Add("employee_id", "is required")
	}
	day, ok := validator.IsValidDate(date)
	if !ok {
		errs.Add("date", "must be in YYYY-MM-DD format")
	}
	if err := errs.Err(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	start, end, err := filter.Range()
	if err != nil {
		return nil, err
	}

	records, err := a.attendanceRepo.List(ctx, filter.EmployeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	results := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		results = append(results, attendance.NewAttendanceResponse(r))
	}
	return results, nil
}
