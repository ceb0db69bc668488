package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(validator.DateLayout)
}

func (r *attendanceRepository) withName(a attendance.Record) attendance.Record {
	if e, ok := r.s.data.employees[a.EmployeeID]; ok {
		name := e.Name
		a.EmployeeName = &name
	}
	return a
}

// Upsert resolves a duplicate (employee, date) key by updating the existing record.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	defer r.s.lock(ctx)()

	if err := r.s.injected("attendance.upsert"); err != nil {
		return attendance.Record{}, database.Wrap("upsert attendance", err)
	}
	if _, ok := r.s.data.employees[record.EmployeeID]; !ok {
		return attendance.Record{}, employee.ErrEmployeeNotFound
	}

	now := r.s.now()
	key := attendanceKey(record.EmployeeID, record.Date)
	if id, ok := r.s.data.attendanceBy[key]; ok {
		existing := r.s.data.attendance[id]
		existing.Status = record.Status
		existing.OvertimeHours = record.OvertimeHours
		existing.AdvanceTaken = record.AdvanceTaken
		existing.Notes = record.Notes
		existing.UpdatedAt = now
		r.s.data.attendance[id] = existing
		return existing, nil
	}

	record.ID = r.s.newID()
	record.EmployeeName = nil
	record.CreatedAt = now
	record.UpdatedAt = now
	r.s.data.attendance[record.ID] = record
	r.s.data.attendanceBy[key] = record.ID
	return record, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	defer r.s.lock(ctx)()

	id, ok := r.s.data.attendanceBy[attendanceKey(employeeID, date)]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r.withName(r.s.data.attendance[id]), nil
}

func (r *attendanceRepository) List(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	defer r.s.lock(ctx)()

	if err := r.s.injected("attendance.list"); err != nil {
		return nil, database.Wrap("list attendance", err)
	}

	from := start.Format(validator.DateLayout)
	to := end.Format(validator.DateLayout)

	records := make([]attendance.Record, 0)
	for _, a := range r.s.data.attendance {
		if employeeID != "" && a.EmployeeID != employeeID {
			continue
		}
		day := a.Date.Format(validator.DateLayout)
		if day < from || day > to {
			continue
		}
		records = append(records, r.withName(a))
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return *records[i].EmployeeName < *records[j].EmployeeName
	})

	return records, nil
}
