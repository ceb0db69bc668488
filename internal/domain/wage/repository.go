package wage

import "context"

type CalculationRepository interface {
	// Create always inserts a new row; overlapping periods are not merged.
	Create(ctx context.Context, calc Calculation) (Calculation, error)
	GetByID(ctx context.Context, id string) (Calculation, error)
	List(ctx context.Context, filter CalculationFilter) ([]Calculation, int64, error)

	// MarkPaid sets is_paid only if it is currently false. It returns
	// ErrCalculationAlreadyPaid when the flag was already set and
	// ErrCalculationNotFound when the id does not resolve.
	MarkPaid(ctx context.Context, id string) (Calculation, error)
}
