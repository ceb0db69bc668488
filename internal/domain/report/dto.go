package report

import (
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PaymentReportFilter struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// Range validates and parses the inclusive payment date range.
func (f *PaymentReportFilter) Range() (time.Time, time.Time, error) {
	return validator.ParseDateRange("start_date", f.StartDate, "end_date", f.EndDate)
}

type PaymentRow struct {
	Payment      payment.PaymentResponse `json:"payment"`
	EmployeeName string                  `json:"employee_name"`
	PeriodType   string                  `json:"period_type"`
	PeriodStart  string                  `json:"period_start"`
	PeriodEnd    string                  `json:"period_end"`
	Breakdown    wage.BreakdownResponse  `json:"breakdown"`
}

func NewPaymentRow(d PaymentDetail) PaymentRow {
	return PaymentRow{
		Payment:      payment.NewPaymentResponse(d.Payment),
		EmployeeName: d.EmployeeName,
		PeriodType:   string(d.PeriodType),
		PeriodStart:  d.PeriodStart.Format(validator.DateLayout),
		PeriodEnd:    d.PeriodEnd.Format(validator.DateLayout),
		Breakdown:    wage.NewBreakdownResponse(d.Breakdown),
	}
}

type PaymentListReport struct {
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	GeneratedAt  string          `json:"generated_at"`
	PaymentCount int             `json:"payment_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Rows         []PaymentRow    `json:"rows"`
}

type EmployeeSummaryRow struct {
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	PaymentCount    int             `json:"payment_count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	LastPaymentDate string          `json:"last_payment_date"`
}

type PaymentSummaryReport struct {
	StartDate      string               `json:"start_date"`
	EndDate        string               `json:"end_date"`
	GeneratedAt    string               `json:"generated_at"`
	TotalEmployees int                  `json:"total_employees"`
	PaymentCount   int                  `json:"payment_count"`
	TotalAmount    decimal.Decimal      `json:"total_amount"`
	Rows           []EmployeeSummaryRow `json:"rows"`
}

type CSVExport struct {
	Filename string
	Content  []byte
}
