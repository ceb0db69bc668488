package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the root of every payroll record. Rates are read at calculation time,
// so changing them only affects calculations made afterwards.
type Employee struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	Position     *string
	DailyWage    decimal.Decimal
	OvertimeRate decimal.Decimal
	HalfDayRate  decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
