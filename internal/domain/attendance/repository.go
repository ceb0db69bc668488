package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert inserts the record or, when (employee_id, date) already exists, overwrites
	// status, overtime, advance and notes of the existing row.
	Upsert(ctx context.Context, record Record) (Record, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// List returns records with start <= date <= end ordered by date then employee.
	// An empty employeeID matches every employee.
	List(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)
}
