package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	SetActive(ctx context.Context, id string, active bool) error

	// HasHistory reports whether any attendance, wage calculation or payment references the employee.
	HasHistory(ctx context.Context, id string) (bool, error)

	// Delete removes the employee and, through cascade, everything it owns.
	Delete(ctx context.Context, id string) error
}
