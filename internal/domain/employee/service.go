package employee

import "context"

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeactivateEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ReactivateEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// DeleteEmployee hard-deletes an employee without history and deactivates one with history.
	DeleteEmployee(ctx context.Context, id string) (DeleteEmployeeResponse, error)
}
