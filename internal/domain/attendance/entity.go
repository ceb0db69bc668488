package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// Record is one employee's attendance for one calendar date; (EmployeeID, Date) is unique.
type Record struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Status        Status
	OvertimeHours decimal.Decimal
	AdvanceTaken  decimal.Decimal
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}
