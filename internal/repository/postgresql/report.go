package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/report"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/google/uuid"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// ListPayments joins each payment in range with its employee and wage calculation.
func (r *reportRepositoryImpl) ListPayments(ctx context.Context, start, end time.Time, employeeID string) ([]report.PaymentDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			p.id, p.wage_calculation_id, p.employee_id, p.amount, p.payment_date,
			p.payment_method, p.notes, p.created_at, p.updated_at,
			e.name, e.email,
			wc.period_type, wc.period_start, wc.period_end,
			wc.present_days, wc.half_days, wc.absent_days, wc.total_overtime_hours,
			wc.base_wage, wc.overtime_amount, wc.half_day_amount, wc.total_advances,
			wc.gross_amount, wc.net_amount
		FROM payments p
		JOIN employees e ON e.id = p.employee_id
		JOIN wage_calculations wc ON wc.id = p.wage_calculation_id
		WHERE p.payment_date >= $1 AND p.payment_date <= $2
	`
	args := []interface{}{start, end}
	if employeeID != "" {
		if err := uuid.Validate(employeeID); err != nil {
			return []report.PaymentDetail{}, nil
		}
		query += " AND p.employee_id = $3"
		args = append(args, employeeID)
	}
	query += " ORDER BY p.payment_date DESC, p.created_at DESC, p.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list payments", err)
	}
	defer rows.Close()

	details := make([]report.PaymentDetail, 0)
	for rows.Next() {
		var d report.PaymentDetail
		b := &d.Breakdown
		if err := rows.Scan(
			&d.ID, &d.WageCalculationID, &d.EmployeeID, &d.Amount, &d.PaymentDate,
			&d.PaymentMethod, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
			&d.EmployeeName, &d.EmployeeEmail,
			&d.PeriodType, &d.PeriodStart, &d.PeriodEnd,
			&b.PresentDays, &b.HalfDays, &b.AbsentDays, &b.TotalOvertimeHours,
			&b.BaseWage, &b.OvertimeAmount, &b.HalfDayAmount, &b.TotalAdvances,
			&b.GrossAmount, &b.NetAmount,
		); err != nil {
			return nil, database.Wrap("scan payment detail", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("list payments", err)
	}

	return details, nil
}
