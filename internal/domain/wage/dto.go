package wage

import (
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateWageRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	PeriodType  string `json:"period_type" validate:"required,oneof=daily weekly monthly"`
}

// Validate checks the request and returns the parsed period.
func (r *CalculateWageRequest) Validate() (Period, error) {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Period{}, err
		}
		errs = append(errs, fieldErrs...)
	}

	start, end, err := validator.ParseDateRange("period_start", r.PeriodStart, "period_end", r.PeriodEnd)
	if err != nil {
		rangeErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Period{}, err
		}
		errs = append(errs, rangeErrs...)
	}

	if len(errs) > 0 {
		return Period{}, errs
	}
	return Period{Start: start, End: end, Type: PeriodType(r.PeriodType)}, nil
}

type CalculationFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	IsPaid     *bool   `json:"is_paid,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *CalculationFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

func (f CalculationFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type BreakdownResponse struct {
	PresentDays        int             `json:"present_days"`
	HalfDays           int             `json:"half_days"`
	AbsentDays         int             `json:"absent_days"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
	BaseWage           decimal.Decimal `json:"base_wage"`
	OvertimeAmount     decimal.Decimal `json:"overtime_amount"`
	HalfDayAmount      decimal.Decimal `json:"half_day_amount"`
	TotalAdvances      decimal.Decimal `json:"total_advances"`
	GrossAmount        decimal.Decimal `json:"gross_amount"`
	NetAmount          decimal.Decimal `json:"net_amount"`
}

func NewBreakdownResponse(b Breakdown) BreakdownResponse {
	return BreakdownResponse{
		PresentDays:        b.PresentDays,
		HalfDays:           b.HalfDays,
		AbsentDays:         b.AbsentDays,
		TotalOvertimeHours: b.TotalOvertimeHours,
		BaseWage:           b.BaseWage,
		OvertimeAmount:     b.OvertimeAmount,
		HalfDayAmount:      b.HalfDayAmount,
		TotalAdvances:      b.TotalAdvances,
		GrossAmount:        b.GrossAmount,
		NetAmount:          b.NetAmount,
	}
}

type PreviewResponse struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name"`
	PeriodType   string            `json:"period_type"`
	PeriodStart  string            `json:"period_start"`
	PeriodEnd    string            `json:"period_end"`
	Breakdown    BreakdownResponse `json:"breakdown"`
}

type CalculationResponse struct {
	ID           string            `json:"id"`
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name,omitempty"`
	PeriodType   string            `json:"period_type"`
	PeriodStart  string            `json:"period_start"`
	PeriodEnd    string            `json:"period_end"`
	Breakdown    BreakdownResponse `json:"breakdown"`
	IsPaid       bool              `json:"is_paid"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

func NewCalculationResponse(c Calculation) CalculationResponse {
	name := ""
	if c.EmployeeName != nil {
		name = *c.EmployeeName
	}
	return CalculationResponse{
		ID:           c.ID,
		EmployeeID:   c.EmployeeID,
		EmployeeName: name,
		PeriodType:   string(c.PeriodType),
		PeriodStart:  c.PeriodStart.Format(validator.DateLayout),
		PeriodEnd:    c.PeriodEnd.Format(validator.DateLayout),
		Breakdown:    NewBreakdownResponse(c.Breakdown),
		IsPaid:       c.IsPaid,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}

type ListCalculationResponse struct {
	Data       []CalculationResponse `json:"data"`
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
}
