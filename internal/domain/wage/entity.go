package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType labels a calculation. It is informational and does not constrain the span.
type PeriodType string

const (
	PeriodTypeDaily   PeriodType = "daily"
	PeriodTypeWeekly  PeriodType = "weekly"
	PeriodTypeMonthly PeriodType = "monthly"
)

func (t PeriodType) IsValid() bool {
	switch t {
	case PeriodTypeDaily, PeriodTypeWeekly, PeriodTypeMonthly:
		return true
	}
	return false
}

// Period is an inclusive calendar-date range.
type Period struct {
	Start time.Time
	End   time.Time
	Type  PeriodType
}

// Contains reports whether d falls on a date within the period, ignoring time of day.
func (p Period) Contains(d time.Time) bool {
	day := truncateDate(d)
	return !day.Before(truncateDate(p.Start)) && !day.After(truncateDate(p.End))
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Breakdown is the pay computed from one employee's attendance over a period.
//
//	GrossAmount = BaseWage + HalfDayAmount + OvertimeAmount
//	NetAmount   = GrossAmount - TotalAdvances
//
// NetAmount is negative when advances exceed gross pay.
type Breakdown struct {
	PresentDays        int
	HalfDays           int
	AbsentDays         int
	TotalOvertimeHours decimal.Decimal
	BaseWage           decimal.Decimal
	OvertimeAmount     decimal.Decimal
	HalfDayAmount      decimal.Decimal
	TotalAdvances      decimal.Decimal
	GrossAmount        decimal.Decimal
	NetAmount          decimal.Decimal
}

// Days is the number of attendance records the breakdown was built from.
func (b Breakdown) Days() int {
	return b.PresentDays + b.HalfDays + b.AbsentDays
}

// Calculation is a stored breakdown. IsPaid flips to true once and never back.
type Calculation struct {
	ID          string
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodType  PeriodType
	Breakdown
	IsPaid    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

func (c Calculation) Period() Period {
	return Period{Start: c.PeriodStart, End: c.PeriodEnd, Type: c.PeriodType}
}
