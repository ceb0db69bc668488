package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/report"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
)

type reportRepository struct {
	s *Store
}

func NewReportRepository(s *Store) report.ReportRepository {
	return &reportRepository{s: s}
}

func (r *reportRepository) ListPayments(ctx context.Context, start, end time.Time, employeeID string) ([]report.PaymentDetail, error) {
	defer r.s.lock(ctx)()

	if err := r.s.injected("report.payments"); err != nil {
		return nil, database.Wrap("list payments", err)
	}

	from := start.Format(validator.DateLayout)
	to := end.Format(validator.DateLayout)

	details := make([]report.PaymentDetail, 0)
	for _, p := range r.s.data.payments {
		if employeeID != "" && p.EmployeeID != employeeID {
			continue
		}
		day := p.PaymentDate.Format(validator.DateLayout)
		if day < from || day > to {
			continue
		}
		e, ok := r.s.data.employees[p.EmployeeID]
		if !ok {
			continue
		}
		c, ok := r.s.data.calculations[p.WageCalculationID]
		if !ok {
			continue
		}
		details = append(details, report.PaymentDetail{
			Payment:       p,
			EmployeeName:  e.Name,
			EmployeeEmail: e.Email,
			PeriodType:    c.PeriodType,
			PeriodStart:   c.PeriodStart,
			PeriodEnd:     c.PeriodEnd,
			Breakdown:     c.Breakdown,
		})
	}

	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if !a.PaymentDate.Equal(b.PaymentDate) {
			return a.PaymentDate.After(b.PaymentDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return details, nil
}
