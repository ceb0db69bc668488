package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MarkAttendanceRequest struct {
	EmployeeID    string          `json:"employee_id" validate:"required"`
	Date          string          `json:"date" validate:"required,datetime=2006-01-02"`
	Status        string          `json:"status" validate:"required,oneof=present absent half-day"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	AdvanceTaken  decimal.Decimal `json:"advance_taken"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	checkAmounts(&errs, "", r.OvertimeHours, r.AdvanceTaken)
	return errs.Err()
}

// Record builds the record to upsert. Call after Validate.
func (r *MarkAttendanceRequest) Record() Record {
	date, _ := time.Parse(validator.DateLayout, r.Date)
	return Record{
		EmployeeID:    r.EmployeeID,
		Date:          date,
		Status:        Status(r.Status),
		OvertimeHours: r.OvertimeHours,
		AdvanceTaken:  r.AdvanceTaken,
		Notes:         r.Notes,
	}
}

type BulkAttendanceEntry struct {
	EmployeeID    string          `json:"employee_id" validate:"required"`
	Status        string          `json:"status" validate:"required,oneof=present absent half-day"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	AdvanceTaken  decimal.Decimal `json:"advance_taken"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BulkAttendanceRequest marks several employees for the same date in one transaction.
type BulkAttendanceRequest struct {
	Date    string                `json:"date" validate:"required,datetime=2006-01-02"`
	Entries []BulkAttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

func (r *BulkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	seen := make(map[string]bool, len(r.Entries))
	for i, e := range r.Entries {
		prefix := fmt.Sprintf("entries[%d].", i)
		checkAmounts(&errs, prefix, e.OvertimeHours, e.AdvanceTaken)
		if e.EmployeeID != "" && seen[e.EmployeeID] {
			errs.Add(prefix+"employee_id", "is duplicated in this request")
		}
		seen[e.EmployeeID] = true
	}
	return errs.Err()
}

// Requests expands the bulk request into single-day requests.
func (r *BulkAttendanceRequest) Requests() []MarkAttendanceRequest {
	out := make([]MarkAttendanceRequest, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, MarkAttendanceRequest{
			EmployeeID:    e.EmployeeID,
			Date:          r.Date,
			Status:        e.Status,
			OvertimeHours: e.OvertimeHours,
			AdvanceTaken:  e.AdvanceTaken,
			Notes:         e.Notes,
		})
	}
	return out
}

func checkAmounts(errs *validator.ValidationErrors, prefix string, overtime, advance decimal.Decimal) {
	if overtime.IsNegative() {
		errs.Add(prefix+"overtime_hours", "must be non-negative")
	}
	if overtime.GreaterThan(decimal.NewFromInt(24)) {
		errs.Add(prefix+"overtime_hours", "must be at most 24")
	}
	if !validator.HasScaleAtMost(overtime, 2) {
		errs.Add(prefix+"overtime_hours", "must have at most 2 decimal places")
	}
	if advance.IsNegative() {
		errs.Add(prefix+"advance_taken", "must be non-negative")
	}
	if !validator.HasScaleAtMost(advance, 2) {
		errs.Add(prefix+"advance_taken", "must have at most 2 decimal places")
	}
}

type AttendanceFilter struct {
	EmployeeID string `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// Range validates and parses the inclusive date range.
func (f *AttendanceFilter) Range() (time.Time, time.Time, error) {
	return validator.ParseDateRange("start_date", f.StartDate, "end_date", f.EndDate)
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	AdvanceTaken  decimal.Decimal `json:"advance_taken"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	name := ""
	if r.EmployeeName != nil {
		name = *r.EmployeeName
	}
	return AttendanceResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  name,
		Date:          r.Date.Format(validator.DateLayout),
		Status:        string(r.Status),
		OvertimeHours: r.OvertimeHours,
		AdvanceTaken:  r.AdvanceTaken,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
}
