package report

import (
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/shopspring/decimal"
)

// PaymentDetail is a payment joined with its employee and wage calculation.
type PaymentDetail struct {
	payment.Payment
	EmployeeName  string
	EmployeeEmail string
	PeriodType    wage.PeriodType
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Breakdown     wage.Breakdown
}

// EmployeePaymentSummary rolls up one employee's payments within a range.
type EmployeePaymentSummary struct {
	EmployeeID      string
	EmployeeName    string
	PaymentCount    int
	TotalAmount     decimal.Decimal
	LastPaymentDate time.Time
}
