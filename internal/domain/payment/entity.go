package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash   Method = "cash"
	MethodBank   Method = "bank"
	MethodCheque Method = "cheque"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodBank, MethodCheque:
		return true
	}
	return false
}

// Payment is created only when a wage calculation is marked paid. Amount is the
// calculation's net amount at that moment and is never re-derived.
type Payment struct {
	ID                string
	WageCalculationID string
	EmployeeID        string
	Amount            decimal.Decimal
	PaymentDate       time.Time
	PaymentMethod     *Method
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
