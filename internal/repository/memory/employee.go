package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
)

type employeeRepository struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) emailTaken(email, exceptID string) bool {
	for id, e := range r.s.data.employees {
		if id != exceptID && e.Email == email {
			return true
		}
	}
	return false
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	if err := r.s.injected("employee.create"); err != nil {
		return employee.Employee{}, database.Wrap("create employee", err)
	}
	if r.emailTaken(newEmployee.Email, "") {
		return employee.Employee{}, employee.ErrEmailExists
	}

	if newEmployee.ID == "" {
		newEmployee.ID = r.s.newID()
	}
	if newEmployee.Phone != nil {
		newEmployee.Phone = nilIfEmpty(*newEmployee.Phone)
	}
	if newEmployee.Position != nil {
		newEmployee.Position = nilIfEmpty(*newEmployee.Position)
	}
	now := r.s.now()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.s.data.employees[newEmployee.ID] = newEmployee

	return newEmployee, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	defer r.s.lock(ctx)()

	query := strings.ToLower(filter.Query)
	matched := make([]employee.Employee, 0)
	for _, e := range r.s.data.employees {
		if filter.ActiveOnly && !e.IsActive {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Name), query) && !strings.Contains(strings.ToLower(e.Email), query) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	return paginate(matched, filter.Offset(), filter.Limit), total, nil
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	defer r.s.lock(ctx)()

	if err := r.s.injected("employee.update"); err != nil {
		return database.Wrap("update employee", err)
	}

	e, ok := r.s.data.employees[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Email != nil {
		if r.emailTaken(*req.Email, e.ID) {
			return employee.ErrEmailExists
		}
		e.Email = *req.Email
	}
	if req.Phone != nil {
		e.Phone = nilIfEmpty(*req.Phone)
	}
	if req.Position != nil {
		e.Position = nilIfEmpty(*req.Position)
	}
	if req.DailyWage != nil {
		e.DailyWage = *req.DailyWage
	}
	if req.OvertimeRate != nil {
		e.OvertimeRate = *req.OvertimeRate
	}
	if req.HalfDayRate != nil {
		e.HalfDayRate = *req.HalfDayRate
	}
	e.UpdatedAt = r.s.now()
	r.s.data.employees[e.ID] = e

	return nil
}

func (r *employeeRepository) SetActive(ctx context.Context, id string, active bool) error {
	defer r.s.lock(ctx)()

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsActive = active
	e.UpdatedAt = r.s.now()
	r.s.data.employees[id] = e
	return nil
}

func (r *employeeRepository) HasHistory(ctx context.Context, id string) (bool, error) {
	defer r.s.lock(ctx)()

	for _, a := range r.s.data.attendance {
		if a.EmployeeID == id {
			return true, nil
		}
	}
	for _, c := range r.s.data.calculations {
		if c.EmployeeID == id {
			return true, nil
		}
	}
	for _, p := range r.s.data.payments {
		if p.EmployeeID == id {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the employee and cascades to attendance, calculations and payments.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.data.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.s.data.employees, id)

	for key, recID := range r.s.data.attendanceBy {
		if r.s.data.attendance[recID].EmployeeID == id {
			delete(r.s.data.attendance, recID)
			delete(r.s.data.attendanceBy, key)
		}
	}
	for calcID, c := range r.s.data.calculations {
		if c.EmployeeID == id {
			delete(r.s.data.calculations, calcID)
			delete(r.s.data.paymentByCal, calcID)
		}
	}
	for payID, p := range r.s.data.payments {
		if p.EmployeeID == id {
			delete(r.s.data.payments, payID)
		}
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
