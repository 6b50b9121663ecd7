package forecast

import "context"

// Repository defines all database operations for forecasts
type Repository interface {
	// UpsertSeries writes points keyed by (menu item, day); an existing
	// day gets its prediction replaced.
	UpsertSeries(ctx context.Context, menuItemID int64, points []Point) error

	// Series returns points from `days` days back onward, ordered by day.
	Series(ctx context.Context, menuItemID int64, days int) ([]Point, error)

	// ProjectedUsage explodes predicted demand over the next `days` days
	// through recipes into per-ingredient totals.
	ProjectedUsage(ctx context.Context, days int) ([]UsageLine, error)

	// RollupActuals copies completed order quantities into actual_qty and
	// reports how many rows changed.
	RollupActuals(ctx context.Context) (int64, error)
}
