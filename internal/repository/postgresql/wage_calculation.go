package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type calculationRepositoryImpl struct {
	db *database.DB
}

func NewCalculationRepository(db *database.DB) wage.CalculationRepository {
	return &calculationRepositoryImpl{db: db}
}

const calculationColumns = `wc.id, wc.employee_id, wc.period_start, wc.period_end, wc.period_type,
	wc.present_days, wc.half_days, wc.absent_days, wc.total_overtime_hours,
	wc.base_wage, wc.overtime_amount, wc.half_day_amount, wc.total_advances,
	wc.gross_amount, wc.net_amount, wc.is_paid, wc.created_at, wc.updated_at`

func calculationScanTargets(c *wage.Calculation) []interface{} {
	return []interface{}{
		&c.ID, &c.EmployeeID, &c.PeriodStart, &c.PeriodEnd, &c.PeriodType,
		&c.PresentDays, &c.HalfDays, &c.AbsentDays, &c.TotalOvertimeHours,
		&c.BaseWage, &c.OvertimeAmount, &c.HalfDayAmount, &c.TotalAdvances,
		&c.GrossAmount, &c.NetAmount, &c.IsPaid, &c.CreatedAt, &c.UpdatedAt,
	}
}

// Create implements wage.CalculationRepository.
func (r *calculationRepositoryImpl) Create(ctx context.Context, calc wage.Calculation) (wage.Calculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wage_calculations AS wc (
			id, employee_id, period_start, period_end, period_type,
			present_days, half_days, absent_days, total_overtime_hours,
			base_wage, overtime_amount, half_day_amount, total_advances,
			gross_amount, net_amount, is_paid
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, false)
		RETURNING ` + calculationColumns

	var c wage.Calculation
	err := q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), calc.EmployeeID, calc.PeriodStart, calc.PeriodEnd, calc.PeriodType,
		calc.PresentDays, calc.HalfDays, calc.AbsentDays, calc.TotalOvertimeHours,
		calc.BaseWage, calc.OvertimeAmount, calc.HalfDayAmount, calc.TotalAdvances,
		calc.GrossAmount, calc.NetAmount,
	).Scan(calculationScanTargets(&c)...)
	if err != nil {
		if database.ForeignKeyViolation(err) {
			return wage.Calculation{}, employee.ErrEmployeeNotFound
		}
		return wage.Calculation{}, database.Wrap("create wage calculation", err)
	}
	c.EmployeeName = calc.EmployeeName

	return c, nil
}

// GetByID implements wage.CalculationRepository.
func (r *calculationRepositoryImpl) GetByID(ctx context.Context, id string) (wage.Calculation, error) {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(id); err != nil {
		return wage.Calculation{}, wage.ErrCalculationNotFound
	}

	query := `
		SELECT ` + calculationColumns + `, e.name
		FROM wage_calculations wc
		JOIN employees e ON e.id = wc.employee_id
		WHERE wc.id = $1
	`

	var c wage.Calculation
	err := q.QueryRow(ctx, query, id).Scan(append(calculationScanTargets(&c), &c.EmployeeName)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wage.Calculation{}, wage.ErrCalculationNotFound
		}
		return wage.Calculation{}, database.Wrap("get wage calculation", err)
	}

	return c, nil
}

// List implements wage.CalculationRepository.
func (r *calculationRepositoryImpl) List(ctx context.Context, filter wage.CalculationFilter) ([]wage.Calculation, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		if err := uuid.Validate(*filter.EmployeeID); err != nil {
			return []wage.Calculation{}, 0, nil
		}
		conditions = append(conditions, fmt.Sprintf("wc.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.IsPaid != nil {
		conditions = append(conditions, fmt.Sprintf("wc.is_paid = $%d", argIdx))
		args = append(args, *filter.IsPaid)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM wage_calculations wc"+where, args...).Scan(&total); err != nil {
		return nil, 0, database.Wrap("count wage calculations", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, e.name
		FROM wage_calculations wc
		JOIN employees e ON e.id = wc.employee_id
		%s
		ORDER BY wc.created_at DESC, wc.id DESC
		LIMIT $%d OFFSET $%d
	`, calculationColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, database.Wrap("list wage calculations", err)
	}
	defer rows.Close()

	calcs := make([]wage.Calculation, 0)
	for rows.Next() {
		var c wage.Calculation
		if err := rows.Scan(append(calculationScanTargets(&c), &c.EmployeeName)...); err != nil {
			return nil, 0, database.Wrap("scan wage calculation", err)
		}
		calcs = append(calcs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.Wrap("list wage calculations", err)
	}

	return calcs, total, nil
}

// MarkPaid implements wage.CalculationRepository. The conditional update is the
// compare-and-set that keeps concurrent callers from paying a calculation twice.
func (r *calculationRepositoryImpl) MarkPaid(ctx context.Context, id string) (wage.Calculation, error) {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(id); err != nil {
		return wage.Calculation{}, wage.ErrCalculationNotFound
	}

	query := `
		UPDATE wage_calculations AS wc
		SET is_paid = true, updated_at = NOW()
		WHERE wc.id = $1 AND wc.is_paid = false
		RETURNING ` + calculationColumns

	var c wage.Calculation
	err := q.QueryRow(ctx, query, id).Scan(calculationScanTargets(&c)...)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return wage.Calculation{}, database.Wrap("mark wage calculation paid", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM wage_calculations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return wage.Calculation{}, database.Wrap("check wage calculation", err)
	}
	if !exists {
		return wage.Calculation{}, wage.ErrCalculationNotFound
	}
	return wage.Calculation{}, wage.ErrCalculationAlreadyPaid
}
