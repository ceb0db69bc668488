package wage

import "context"

type WageService interface {
	// PreviewWage computes the breakdown for a period without storing it.
	PreviewWage(ctx context.Context, req CalculateWageRequest) (PreviewResponse, error)
	CalculateAndStore(ctx context.Context, req CalculateWageRequest) (CalculationResponse, error)
	GetCalculation(ctx context.Context, id string) (CalculationResponse, error)
	ListCalculations(ctx context.Context, filter CalculationFilter) (ListCalculationResponse, error)
}
