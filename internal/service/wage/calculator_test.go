package wage

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func sampleEmployee() *employee.Employee {
	return &employee.Employee{
		ID:           "emp-1",
		Name:         "Ana Putri",
		DailyWage:    dec("100"),
		OvertimeRate: dec("20"),
		HalfDayRate:  dec("50"),
		IsActive:     true,
	}
}

func TestComputeBreakdown_MixedWeek(t *testing.T) {
	records := []attendance.Record{
		{Date: day(1), Status: attendance.StatusPresent, OvertimeHours: dec("2")},
		{Date: day(2), Status: attendance.StatusPresent, AdvanceTaken: dec("30")},
		{Date: day(3), Status: attendance.StatusPresent},
		{Date: day(4), Status: attendance.StatusHalfDay},
		{Date: day(5), Status: attendance.StatusAbsent},
	}

	b, err := ComputeBreakdown(sampleEmployee(), records)
	require.NoError(t, err)

	assert.Equal(t, 3, b.PresentDays)
	assert.Equal(t, 1, b.HalfDays)
	assert.Equal(t, 1, b.AbsentDays)
	assert.True(t, dec("2").Equal(b.TotalOvertimeHours), "overtime hours = %s", b.TotalOvertimeHours)
	assert.True(t, dec("300").Equal(b.BaseWage), "base = %s", b.BaseWage)
	assert.True(t, dec("50").Equal(b.HalfDayAmount), "half day = %s", b.HalfDayAmount)
	assert.True(t, dec("40").Equal(b.OvertimeAmount), "overtime = %s", b.OvertimeAmount)
	assert.True(t, dec("390").Equal(b.GrossAmount), "gross = %s", b.GrossAmount)
	assert.True(t, dec("30").Equal(b.TotalAdvances), "advances = %s", b.TotalAdvances)
	assert.True(t, dec("360").Equal(b.NetAmount), "net = %s", b.NetAmount)
}

func TestComputeBreakdown_NoRecords(t *testing.T) {
	for name, records := range map[string][]attendance.Record{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			b, err := ComputeBreakdown(sampleEmployee(), records)
			require.NoError(t, err)

			assert.Zero(t, b.Days())
			for label, amount := range map[string]decimal.Decimal{
				"overtime hours": b.TotalOvertimeHours,
				"base":           b.BaseWage,
				"half day":       b.HalfDayAmount,
				"overtime":       b.OvertimeAmount,
				"advances":       b.TotalAdvances,
				"gross":          b.GrossAmount,
				"net":            b.NetAmount,
			} {
				assert.True(t, amount.IsZero(), "%s = %s", label, amount)
			}
		})
	}
}

func TestComputeBreakdown_AdvancesExceedGrossStayNegative(t *testing.T) {
	records := []attendance.Record{
		{Date: day(1), Status: attendance.StatusHalfDay, AdvanceTaken: dec("80")},
		{Date: day(2), Status: attendance.StatusAbsent, AdvanceTaken: dec("20.50")},
	}

	b, err := ComputeBreakdown(sampleEmployee(), records)
	require.NoError(t, err)

	assert.True(t, dec("50").Equal(b.GrossAmount))
	assert.True(t, dec("-50.50").Equal(b.NetAmount), "net = %s", b.NetAmount)
}

func TestComputeBreakdown_OvertimeAndAdvancesIgnoreStatus(t *testing.T) {
	records := []attendance.Record{
		{Date: day(1), Status: attendance.StatusAbsent, OvertimeHours: dec("1.5"), AdvanceTaken: dec("5")},
		{Date: day(2), Status: attendance.StatusHalfDay, OvertimeHours: dec("0.25")},
	}

	b, err := ComputeBreakdown(sampleEmployee(), records)
	require.NoError(t, err)

	assert.True(t, dec("1.75").Equal(b.TotalOvertimeHours))
	assert.True(t, dec("35").Equal(b.OvertimeAmount))
	assert.True(t, dec("85").Equal(b.GrossAmount))
	assert.True(t, dec("80").Equal(b.NetAmount))
}

func TestComputeBreakdown_DecimalSumsDoNotDrift(t *testing.T) {
	emp := sampleEmployee()
	emp.DailyWage = dec("0.10")
	emp.OvertimeRate = dec("0.10")

	records := make([]attendance.Record, 0, 30)
	for i := 1; i <= 30; i++ {
		records = append(records, attendance.Record{Date: day(i), Status: attendance.StatusPresent, OvertimeHours: dec("0.1")})
	}

	b, err := ComputeBreakdown(emp, records)
	require.NoError(t, err)

	assert.Equal(t, "3", b.BaseWage.String())
	assert.Equal(t, "3", b.TotalOvertimeHours.String())
	assert.Equal(t, "0.3", b.OvertimeAmount.String())
	assert.Equal(t, "3.3", b.GrossAmount.String())
}

func TestComputeBreakdown_Invariants(t *testing.T) {
	statuses := []attendance.Status{attendance.StatusPresent, attendance.StatusHalfDay, attendance.StatusAbsent}
	emp := sampleEmployee()

	for n := 0; n < 20; n++ {
		records := make([]attendance.Record, 0, n)
		for i := 0; i < n; i++ {
			records = append(records, attendance.Record{
				Date:          day(i%28 + 1),
				Status:        statuses[(i*7+n)%3],
				OvertimeHours: decimal.NewFromInt(int64(i % 3)).Div(decimal.NewFromInt(4)),
				AdvanceTaken:  decimal.NewFromInt(int64((i * 13) % 17)),
			})
		}

		b, err := ComputeBreakdown(emp, records)
		require.NoError(t, err)

		assert.Equal(t, len(records), b.PresentDays+b.HalfDays+b.AbsentDays)
		assert.True(t, b.GrossAmount.Equal(b.BaseWage.Add(b.HalfDayAmount).Add(b.OvertimeAmount)))
		assert.True(t, b.NetAmount.Equal(b.GrossAmount.Sub(b.TotalAdvances)))
	}
}

func TestComputeBreakdown_InvalidStatus(t *testing.T) {
	records := []attendance.Record{
		{Date: day(1), Status: attendance.StatusPresent},
		{Date: day(2), Status: attendance.Status("late")},
	}

	_, err := ComputeBreakdown(sampleEmployee(), records)
	require.ErrorIs(t, err, attendance.ErrInvalidStatus)
	assert.Contains(t, err.Error(), "2024-01-02")
}

func TestComputeBreakdown_NilEmployee(t *testing.T) {
	_, err := ComputeBreakdown(nil, nil)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "employee_id")
}
