package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name         string          `json:"name" validate:"required,max=150"`
	Email        string          `json:"email" validate:"required,email,max=255"`
	Phone        *string         `json:"phone,omitempty"`
	Position     *string         `json:"position,omitempty" validate:"omitempty,max=100"`
	DailyWage    decimal.Decimal `json:"daily_wage"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
	HalfDayRate  decimal.Decimal `json:"half_day_rate"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "must be 7-15 digits")
	}
	checkRate(&errs, "daily_wage", &r.DailyWage)
	checkRate(&errs, "overtime_rate", &r.OvertimeRate)
	checkRate(&errs, "half_day_rate", &r.HalfDayRate)

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID           string           `json:"-"`
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Email        *string          `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone        *string          `json:"phone,omitempty"`
	Position     *string          `json:"position,omitempty" validate:"omitempty,max=100"`
	DailyWage    *decimal.Decimal `json:"daily_wage,omitempty"`
	OvertimeRate *decimal.Decimal `json:"overtime_rate,omitempty"`
	HalfDayRate  *decimal.Decimal `json:"half_day_rate,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "is required")
	}
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "must be 7-15 digits")
	}
	checkRate(&errs, "daily_wage", r.DailyWage)
	checkRate(&errs, "overtime_rate", r.OvertimeRate)
	checkRate(&errs, "half_day_rate", r.HalfDayRate)

	return errs.Err()
}

// IsEmpty reports whether the request changes nothing.
func (r *UpdateEmployeeRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil && r.Position == nil &&
		r.DailyWage == nil && r.OvertimeRate == nil && r.HalfDayRate == nil
}

func checkRate(errs *validator.ValidationErrors, field string, rate *decimal.Decimal) {
	if rate == nil {
		return
	}
	if rate.IsNegative() {
		errs.Add(field, "must be non-negative")
	}
	if !validator.HasScaleAtMost(*rate, 2) {
		errs.Add(field, "must have at most 2 decimal places")
	}
}

type EmployeeFilter struct {
	Query      string `json:"query,omitempty"`
	ActiveOnly bool   `json:"active_only"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// Normalize clamps paging to sane defaults.
func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	f.Query = strings.TrimSpace(f.Query)
}

func (f EmployeeFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        *string         `json:"phone,omitempty"`
	Position     *string         `json:"position,omitempty"`
	DailyWage    decimal.Decimal `json:"daily_wage"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
	HalfDayRate  decimal.Decimal `json:"half_day_rate"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Phone:        e.Phone,
		Position:     e.Position,
		DailyWage:    e.DailyWage,
		OvertimeRate: e.OvertimeRate,
		HalfDayRate:  e.HalfDayRate,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type DeleteEmployeeResponse struct {
	ID          string `json:"id"`
	Deleted     bool   `json:"deleted"`
	Deactivated bool   `json:"deactivated"`
}
