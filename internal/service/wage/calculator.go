package wage

import (
	"fmt"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ComputeBreakdown aggregates records, already filtered to the employee and period,
// into a pay breakdown. Amounts are not rounded and net pay may be negative.
func ComputeBreakdown(emp *employee.Employee, records []attendance.Record) (wage.Breakdown, error) {
	if emp == nil {
		return wage.Breakdown{}, validator.ValidationErrors{{Field: "employee_id", Message: wage.ErrEmployeeRequired.Error()}}
	}

	b := wage.Breakdown{
		TotalOvertimeHours: decimal.Zero,
		TotalAdvances:      decimal.Zero,
	}
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			b.PresentDays++
		case attendance.StatusHalfDay:
			b.HalfDays++
		case attendance.StatusAbsent:
			b.AbsentDays++
		default:
			return wage.Breakdown{}, fmt.Errorf("%w: %q on %s", attendance.ErrInvalidStatus, r.Status, r.Date.Format(validator.DateLayout))
		}
		// Overtime and advances count whatever the status.
		b.TotalOvertimeHours = b.TotalOvertimeHours.Add(r.OvertimeHours)
		b.TotalAdvances = b.TotalAdvances.Add(r.AdvanceTaken)
	}

	b.BaseWage = emp.DailyWage.Mul(decimal.NewFromInt(int64(b.PresentDays)))
	b.HalfDayAmount = emp.HalfDayRate.Mul(decimal.NewFromInt(int64(b.HalfDays)))
	b.OvertimeAmount = emp.OvertimeRate.Mul(b.TotalOvertimeHours)
	b.GrossAmount = b.BaseWage.Add(b.HalfDayAmount).Add(b.OvertimeAmount)
	b.NetAmount = b.GrossAmount.Sub(b.TotalAdvances)

	return b, nil
}
