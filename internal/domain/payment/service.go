package payment

import "context"

type PaymentService interface {
	// MarkPaid flips the calculation to paid and records its payment atomically.
	MarkPaid(ctx context.Context, req MarkPaidRequest) (MarkPaidResponse, error)
	GetPayment(ctx context.Context, id string) (PaymentResponse, error)
}
