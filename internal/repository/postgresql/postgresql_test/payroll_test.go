package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func createTestEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, email string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(ctx, employee.Employee{
		Name:         "Test Employee",
		Email:        email,
		DailyWage:    decimal.NewFromInt(100),
		OvertimeRate: decimal.NewFromInt(20),
		HalfDayRate:  decimal.NewFromInt(50),
		IsActive:     true,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	emp := createTestEmployee(t, ctx, repo, "repo@example.com")
	assert.NotEmpty(t, emp.ID)
	assert.True(t, decimal.NewFromInt(100).Equal(emp.DailyWage))

	_, err := repo.Create(ctx, employee.Employee{Name: "Dup", Email: "repo@example.com", IsActive: true})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	name := "Renamed"
	require.NoError(t, repo.Update(ctx, employee.UpdateEmployeeRequest{ID: emp.ID, Name: &name}))
	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	hasHistory, err := repo.HasHistory(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, hasHistory)

	require.NoError(t, repo.Delete(ctx, emp.ID))
	_, err = repo.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_EmptyOptionalFields(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	empty := ""
	emp, err := repo.Create(ctx, employee.Employee{
		Name:     "No Phone",
		Email:    "nophone@example.com",
		Phone:    &empty,
		Position: &empty,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Nil(t, emp.Phone)
	assert.Nil(t, emp.Position)
}

func TestEmployeeRepository_ListSearchIsLiteral(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	createTestEmployee(t, ctx, repo, "plain@example.com")
	literal := createTestEmployee(t, ctx, repo, "100%_sure@example.com")

	for _, query := range []string{"%", "_", "0%_s"} {
		list, total, err := repo.List(ctx, employee.EmployeeFilter{Query: query, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total, query)
		require.Len(t, list, 1, query)
		assert.Equal(t, literal.ID, list[0].ID, query)
	}
}

func TestAttendanceRepository_Upsert(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createTestEmployee(t, ctx, postgresql.NewEmployeeRepository(setup.DB), "attendance@example.com")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	first, err := repo.Upsert(ctx, attendance.Record{EmployeeID: emp.ID, Date: day(1), Status: attendance.StatusPresent})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, attendance.Record{
		EmployeeID:    emp.ID,
		Date:          day(1),
		Status:        attendance.StatusHalfDay,
		OvertimeHours: decimal.RequireFromString("1.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	records, err := repo.List(ctx, emp.ID, day(1), day(31))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusHalfDay, records[0].Status)
	assert.Equal(t, "1.5", records[0].OvertimeHours.String())
}

func TestCalculationAndPaymentRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createTestEmployee(t, ctx, postgresql.NewEmployeeRepository(setup.DB), "payroll@example.com")

	tx := postgresql.NewTxManager(setup.DB)
	calcRepo := postgresql.NewCalculationRepository(setup.DB)
	payRepo := postgresql.NewPaymentRepository(setup.DB)
	reportRepo := postgresql.NewReportRepository(setup.DB)

	calc, err := calcRepo.Create(ctx, wage.Calculation{
		EmployeeID:  emp.ID,
		PeriodStart: day(1),
		PeriodEnd:   day(7),
		PeriodType:  wage.PeriodTypeWeekly,
		Breakdown: wage.Breakdown{
			PresentDays: 3,
			BaseWage:    decimal.NewFromInt(300),
			GrossAmount: decimal.NewFromInt(300),
			NetAmount:   decimal.NewFromInt(300),
		},
	})
	require.NoError(t, err)
	assert.False(t, calc.IsPaid)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
				paid, err := calcRepo.MarkPaid(ctx, calc.ID)
				if err != nil {
					return err
				}
				_, err = payRepo.Create(ctx, payment.Payment{
					WageCalculationID: paid.ID,
					EmployeeID:        paid.EmployeeID,
					Amount:            paid.NetAmount,
					PaymentDate:       day(8),
				})
				return err
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, wage.ErrCalculationAlreadyPaid)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)

	p, err := payRepo.GetByCalculationID(ctx, calc.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(p.Amount))

	_, err = payRepo.Create(ctx, payment.Payment{WageCalculationID: calc.ID, EmployeeID: emp.ID, Amount: p.Amount, PaymentDate: day(9)})
	assert.ErrorIs(t, err, payment.ErrPaymentExists)

	details, err := reportRepo.ListPayments(ctx, day(1), day(31), "")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Test Employee", details[0].EmployeeName)
	assert.Equal(t, 3, details[0].Breakdown.PresentDays)
}
