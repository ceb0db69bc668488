package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const employeeColumns = `id, name, email, phone, position, daily_wage, overtime_rate, half_day_rate,
	is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Phone, &e.Position,
		&e.DailyWage, &e.OvertimeRate, &e.HalfDayRate,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if newEmployee.ID == "" {
		newEmployee.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO employees (id, name, email, phone, position, daily_wage, overtime_rate, half_day_rate, is_active)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Name, newEmployee.Email, newEmployee.Phone, newEmployee.Position,
		newEmployee.DailyWage, newEmployee.OvertimeRate, newEmployee.HalfDayRate, newEmployee.IsActive,
	))
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok && constraint == "uk_employees_email" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, database.Wrap("create employee", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(id); err != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, database.Wrap("get employee", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}
	if filter.Query != "" {
		conditions = append(conditions, fmt.Sprintf(`(name ILIKE $%d ESCAPE '\' OR email ILIKE $%d ESCAPE '\')`, argIdx, argIdx))
		args = append(args, "%"+likeEscaper.Replace(filter.Query)+"%")
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees"+where, args...).Scan(&total); err != nil {
		return nil, 0, database.Wrap("count employees", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM employees%s ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d`,
		employeeColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, database.Wrap("list employees", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, database.Wrap("scan employee", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.Wrap("list employees", err)
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(req.ID); err != nil {
		return employee.ErrEmployeeNotFound
	}

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, *req.Email)
		argIdx++
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = NULLIF($%d, '')", argIdx))
		args = append(args, *req.Phone)
		argIdx++
	}
	if req.Position != nil {
		setParts = append(setParts, fmt.Sprintf("position = NULLIF($%d, '')", argIdx))
		args = append(args, *req.Position)
		argIdx++
	}
	if req.DailyWage != nil {
		setParts = append(setParts, fmt.Sprintf("daily_wage = $%d", argIdx))
		args = append(args, *req.DailyWage)
		argIdx++
	}
	if req.OvertimeRate != nil {
		setParts = append(setParts, fmt.Sprintf("overtime_rate = $%d", argIdx))
		args = append(args, *req.OvertimeRate)
		argIdx++
	}
	if req.HalfDayRate != nil {
		setParts = append(setParts, fmt.Sprintf("half_day_rate = $%d", argIdx))
		args = append(args, *req.HalfDayRate)
	}

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $1 RETURNING id`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		if constraint, ok := database.UniqueViolation(err); ok && constraint == "uk_employees_email" {
			return employee.ErrEmailExists
		}
		return database.Wrap("update employee", err)
	}

	return nil
}

// SetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(id); err != nil {
		return employee.ErrEmployeeNotFound
	}

	tag, err := q.Exec(ctx, `UPDATE employees SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return database.Wrap("set employee active", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// HasHistory implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) HasHistory(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(SELECT 1 FROM attendance_records WHERE employee_id = $1)
			OR EXISTS(SELECT 1 FROM wage_calculations WHERE employee_id = $1)
			OR EXISTS(SELECT 1 FROM payments WHERE employee_id = $1)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, database.Wrap("check employee history", err)
	}
	return exists, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(id); err != nil {
		return employee.ErrEmployeeNotFound
	}

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return database.Wrap("delete employee", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
