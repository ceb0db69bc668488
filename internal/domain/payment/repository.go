package payment

import "context"

type PaymentRepository interface {
	// Create returns ErrPaymentExists when the calculation already has a payment.
	Create(ctx context.Context, p Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	GetByCalculationID(ctx context.Context, calculationID string) (Payment, error)
}
