package wage

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/cmlabs-hris/wage-tracker/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wageFixture struct {
	employees   employee.EmployeeRepository
	attendance  attendance.AttendanceRepository
	calculation wage.CalculationRepository
	service     wage.WageService
}

func newWageFixture() wageFixture {
	store := memory.NewStore()
	f := wageFixture{
		employees:   memory.NewEmployeeRepository(store),
		attendance:  memory.NewAttendanceRepository(store),
		calculation: memory.NewCalculationRepository(store),
	}
	f.service = NewWageService(f.employees, f.attendance, f.calculation)
	return f
}

func (f wageFixture) seedWeek(t *testing.T, ctx context.Context) employee.Employee {
	t.Helper()
	emp, err := f.employees.Create(ctx, *sampleEmployee())
	require.NoError(t, err)

	for _, r := range []attendance.Record{
		{Date: day(1), Status: attendance.StatusPresent, OvertimeHours: dec("2")},
		{Date: day(2), Status: attendance.StatusPresent, AdvanceTaken: dec("30")},
		{Date: day(3), Status: attendance.StatusPresent},
		{Date: day(4), Status: attendance.StatusHalfDay},
		{Date: day(5), Status: attendance.StatusAbsent},
		// Outside the period below.
		{Date: day(9), Status: attendance.StatusPresent, AdvanceTaken: dec("500")},
	} {
		r.EmployeeID = emp.ID
		_, err := f.attendance.Upsert(ctx, r)
		require.NoError(t, err)
	}
	return emp
}

func weekRequest(employeeID string) wage.CalculateWageRequest {
	return wage.CalculateWageRequest{
		EmployeeID:  employeeID,
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-07",
		PeriodType:  "weekly",
	}
}

func TestWageService_CalculateAndStore(t *testing.T) {
	ctx := context.Background()
	f := newWageFixture()
	emp := f.seedWeek(t, ctx)

	calc, err := f.service.CalculateAndStore(ctx, weekRequest(emp.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, calc.ID)
	assert.Equal(t, emp.ID, calc.EmployeeID)
	assert.Equal(t, "Ana Putri", calc.EmployeeName)
	assert.Equal(t, "weekly", calc.PeriodType)
	assert.Equal(t, "2024-01-01", calc.PeriodStart)
	assert.Equal(t, "2024-01-07", calc.PeriodEnd)
	assert.False(t, calc.IsPaid)
	assert.Equal(t, 3, calc.Breakdown.PresentDays)
	assert.True(t, dec("360").Equal(calc.Breakdown.NetAmount), "net = %s", calc.Breakdown.NetAmount)

	stored, err := f.service.GetCalculation(ctx, calc.ID)
	require.NoError(t, err)
	assert.Equal(t, calc.ID, stored.ID)
	assert.True(t, dec("390").Equal(stored.Breakdown.GrossAmount))
}

func TestWageService_CalculateAndStore_RepeatsInsertNewRows(t *testing.T) {
	ctx := context.Background()
	f := newWageFixture()
	emp := f.seedWeek(t, ctx)

	first, err := f.service.CalculateAndStore(ctx, weekRequest(emp.ID))
	require.NoError(t, err)
	second, err := f.service.CalculateAndStore(ctx, weekRequest(emp.ID))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	list, err := f.service.ListCalculations(ctx, wage.CalculationFilter{EmployeeID: &emp.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.TotalCount)
}

func TestWageService_CalculateAndStore_UnknownEmployee(t *testing.T) {
	f := newWageFixture()

	_, err := f.service.CalculateAndStore(context.Background(), weekRequest("0190a5a4-0000-7000-8000-000000000000"))

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "does not match any employee", errs.ToMap()["employee_id"])
}

func TestWageService_CalculateAndStore_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	f := newWageFixture()
	emp := f.seedWeek(t, ctx)

	cases := map[string]struct {
		mutate func(*wage.CalculateWageRequest)
		field  string
	}{
		"end before start": {func(r *wage.CalculateWageRequest) { r.PeriodEnd = "2023-12-31" }, "period_end"},
		"missing start":    {func(r *wage.CalculateWageRequest) { r.PeriodStart = "" }, "period_start"},
		"unknown type":     {func(r *wage.CalculateWageRequest) { r.PeriodType = "yearly" }, "period_type"},
		"empty type":       {func(r *wage.CalculateWageRequest) { r.PeriodType = "" }, "period_type"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := weekRequest(emp.ID)
			tc.mutate(&req)

			_, err := f.service.CalculateAndStore(ctx, req)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tc.field)
		})
	}

	list, err := f.service.ListCalculations(ctx, wage.CalculationFilter{})
	require.NoError(t, err)
	assert.Zero(t, list.TotalCount)
}

func TestWageService_PreviewDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	f := newWageFixture()
	emp := f.seedWeek(t, ctx)

	preview, err := f.service.PreviewWage(ctx, weekRequest(emp.ID))
	require.NoError(t, err)
	assert.Equal(t, "Ana Putri", preview.EmployeeName)
	assert.True(t, dec("360").Equal(preview.Breakdown.NetAmount))

	list, err := f.service.ListCalculations(ctx, wage.CalculationFilter{})
	require.NoError(t, err)
	assert.Zero(t, list.TotalCount)
}

func TestWageService_RateChangesOnlyAffectLaterCalculations(t *testing.T) {
	ctx := context.Background()
	f := newWageFixture()
	emp := f.seedWeek(t, ctx)

	before, err := f.service.CalculateAndStore(ctx, weekRequest(emp.ID))
	require.NoError(t, err)

	raised := dec("120")
	require.NoError(t, f.employees.Update(ctx, employee.UpdateEmployeeRequest{ID: emp.ID, DailyWage: &raised}))

	after, err := f.service.CalculateAndStore(ctx, weekRequest(emp.ID))
	require.NoError(t, err)

	stored, err := f.service.GetCalculation(ctx, before.ID)
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(stored.Breakdown.BaseWage))
	assert.True(t, dec("360").Equal(after.Breakdown.BaseWage))
}

func TestWageService_GetCalculation_NotFound(t *testing.T) {
	f := newWageFixture()

	_, err := f.service.GetCalculation(context.Background(), "missing")
	assert.ErrorIs(t, err, wage.ErrCalculationNotFound)
}

func TestWageService_ListCalculations_FiltersAndPages(t *testing.T) {
	ctx := context.Background()
	f := newWageFixture()
	emp := f.seedWeek(t, ctx)

	for i := 0; i < 3; i++ {
		_, err := f.service.CalculateAndStore(ctx, weekRequest(emp.ID))
		require.NoError(t, err)
	}

	page, err := f.service.ListCalculations(ctx, wage.CalculationFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Page)

	paid := true
	none, err := f.service.ListCalculations(ctx, wage.CalculationFilter{IsPaid: &paid})
	require.NoError(t, err)
	assert.Zero(t, none.TotalCount)
	assert.Empty(t, none.Data)
}
