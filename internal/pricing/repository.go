package pricing

import "context"

// Repository reads the raw inputs for price recommendations.
type Repository interface {
	// CostLines returns every recipe line joined with its ingredient cost,
	// ordered by menu item.
	CostLines(ctx context.Context) ([]CostLine, error)

	// DemandSignals sums predicted demand over the next `days` days and
	// actual sales over the trailing `days` days, per menu item.
	DemandSignals(ctx context.Context, days int) ([]DemandSignal, error)
}
