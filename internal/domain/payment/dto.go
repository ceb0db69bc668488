package payment

import (
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MarkPaidRequest struct {
	CalculationID string  `json:"-" validate:"required"`
	PaymentDate   *string `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod *string `json:"payment_method,omitempty" validate:"omitempty,oneof=cash bank cheque"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (r *MarkPaidRequest) Validate() error {
	if r.PaymentMethod != nil && *r.PaymentMethod == "" {
		r.PaymentMethod = nil
	}
	if r.PaymentDate != nil && *r.PaymentDate == "" {
		r.PaymentDate = nil
	}
	if err := validator.Struct(r); err != nil {
		return err
	}
	return nil
}

// Date returns the requested payment date, or the UTC calendar date of now when none was given.
func (r *MarkPaidRequest) Date(now time.Time) time.Time {
	if r.PaymentDate != nil {
		if d, ok := validator.IsValidDate(*r.PaymentDate); ok {
			return d
		}
	}
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *MarkPaidRequest) Method() *Method {
	if r.PaymentMethod == nil {
		return nil
	}
	m := Method(*r.PaymentMethod)
	return &m
}

type PaymentResponse struct {
	ID                string          `json:"id"`
	WageCalculationID string          `json:"wage_calculation_id"`
	EmployeeID        string          `json:"employee_id"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentDate       string          `json:"payment_date"`
	PaymentMethod     *string         `json:"payment_method,omitempty"`
	Notes             *string         `json:"notes,omitempty"`
	CreatedAt         string          `json:"created_at"`
}

func NewPaymentResponse(p Payment) PaymentResponse {
	var method *string
	if p.PaymentMethod != nil {
		m := string(*p.PaymentMethod)
		method = &m
	}
	return PaymentResponse{
		ID:                p.ID,
		WageCalculationID: p.WageCalculationID,
		EmployeeID:        p.EmployeeID,
		Amount:            p.Amount,
		PaymentDate:       p.PaymentDate.Format(validator.DateLayout),
		PaymentMethod:     method,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
}

type MarkPaidResponse struct {
	Calculation wage.CalculationResponse `json:"calculation"`
	Payment     PaymentResponse          `json:"payment"`
}
