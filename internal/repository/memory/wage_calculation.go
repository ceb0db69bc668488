package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
)

type calculationRepository struct {
	s *Store
}

func NewCalculationRepository(s *Store) wage.CalculationRepository {
	return &calculationRepository{s: s}
}

func (r *calculationRepository) withName(c wage.Calculation) wage.Calculation {
	if e, ok := r.s.data.employees[c.EmployeeID]; ok {
		name := e.Name
		c.EmployeeName = &name
	}
	return c
}

func (r *calculationRepository) Create(ctx context.Context, calc wage.Calculation) (wage.Calculation, error) {
	defer r.s.lock(ctx)()

	if err := r.s.injected("calculation.create"); err != nil {
		return wage.Calculation{}, database.Wrap("create wage calculation", err)
	}
	if _, ok := r.s.data.employees[calc.EmployeeID]; !ok {
		return wage.Calculation{}, employee.ErrEmployeeNotFound
	}

	calc.ID = r.s.newID()
	calc.IsPaid = false
	now := r.s.now()
	calc.CreatedAt = now
	calc.UpdatedAt = now
	calc.EmployeeName = nil
	r.s.data.calculations[calc.ID] = calc

	return r.withName(calc), nil
}

func (r *calculationRepository) GetByID(ctx context.Context, id string) (wage.Calculation, error) {
	defer r.s.lock(ctx)()

	c, ok := r.s.data.calculations[id]
	if !ok {
		return wage.Calculation{}, wage.ErrCalculationNotFound
	}
	return r.withName(c), nil
}

func (r *calculationRepository) List(ctx context.Context, filter wage.CalculationFilter) ([]wage.Calculation, int64, error) {
	defer r.s.lock(ctx)()

	matched := make([]wage.Calculation, 0)
	for _, c := range r.s.data.calculations {
		if filter.EmployeeID != nil && c.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.IsPaid != nil && c.IsPaid != *filter.IsPaid {
			continue
		}
		matched = append(matched, r.withName(c))
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	return paginate(matched, filter.Offset(), filter.Limit), total, nil
}

// MarkPaid flips is_paid under the store lock, so only one caller observes false.
func (r *calculationRepository) MarkPaid(ctx context.Context, id string) (wage.Calculation, error) {
	defer r.s.lock(ctx)()

	if err := r.s.injected("calculation.markpaid"); err != nil {
		return wage.Calculation{}, database.Wrap("mark wage calculation paid", err)
	}

	c, ok := r.s.data.calculations[id]
	if !ok {
		return wage.Calculation{}, wage.ErrCalculationNotFound
	}
	if c.IsPaid {
		return wage.Calculation{}, wage.ErrCalculationAlreadyPaid
	}

	c.IsPaid = true
	c.UpdatedAt = r.s.now()
	r.s.data.calculations[id] = c

	return r.withName(c), nil
}
