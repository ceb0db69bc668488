package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (id, employee_id, date, status, overtime_hours, advance_taken, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			overtime_hours = EXCLUDED.overtime_hours,
			advance_taken = EXCLUDED.advance_taken,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, employee_id, date, status, overtime_hours, advance_taken, notes, created_at, updated_at
	`

	var a attendance.Record
	err := q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), record.EmployeeID, record.Date, record.Status,
		record.OvertimeHours, record.AdvanceTaken, record.Notes,
	).Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.OvertimeHours, &a.AdvanceTaken, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if database.ForeignKeyViolation(err) {
			return attendance.Record{}, employee.ErrEmployeeNotFound
		}
		return attendance.Record{}, database.Wrap("upsert attendance", err)
	}

	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(employeeID); err != nil {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}

	query := `
		SELECT a.id, a.employee_id, a.date, a.status, a.overtime_hours, a.advance_taken, a.notes,
			   a.created_at, a.updated_at, e.name
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`

	var a attendance.Record
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.OvertimeHours, &a.AdvanceTaken, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt, &a.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, database.Wrap("get attendance", err)
	}

	return a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.status, a.overtime_hours, a.advance_taken, a.notes,
			   a.created_at, a.updated_at, e.name
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1 AND a.date <= $2
	`
	args := []interface{}{start, end}
	if employeeID != "" {
		if err := uuid.Validate(employeeID); err != nil {
			return []attendance.Record{}, nil
		}
		query += " AND a.employee_id = $3"
		args = append(args, employeeID)
	}
	query += " ORDER BY a.date ASC, e.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list attendance", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var a attendance.Record
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.OvertimeHours, &a.AdvanceTaken, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt, &a.EmployeeName,
		); err != nil {
			return nil, database.Wrap("scan attendance", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("list attendance", err)
	}

	return records, nil
}
