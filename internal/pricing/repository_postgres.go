package pricing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// --------------------------------------------------
// PostgreSQL implementation
// --------------------------------------------------

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CostLines(ctx context.Context) ([]CostLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.name, m.price,
		       ri.ingredient_id, i.name, ri.quantity, ri.unit,
		       i.stock_unit, i.unit_cost
		FROM menu_items m
		JOIN recipe_items ri ON ri.menu_item_id = m.id
		JOIN ingredients i ON i.id = ri.ingredient_id
		ORDER BY m.id, i.name
	`)
	if err != nil {
		return nil, fmt.Errorf("query cost lines: %w", err)
	}
	defer rows.Close()

	var lines []CostLine
	for rows.Next() {
		var l CostLine
		if err := rows.Scan(
			&l.MenuItemID,
			&l.MenuItem,
			&l.Price,
			&l.IngredientID,
			&l.Ingredient,
			&l.Quantity,
			&l.Unit,
			&l.StockUnit,
			&l.UnitCost,
		); err != nil {
			return nil, fmt.Errorf("scan cost line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PostgresRepository) DemandSignals(ctx context.Context, days int) ([]DemandSignal, error) {
	// The predicted side reads forward from today, the actual side
	// backward, each over the same number of days.
	rows, err := r.pool.Query(ctx, `
		SELECT menu_item_id,
		       COALESCE(SUM(predicted_qty) FILTER (WHERE day >= CURRENT_DATE), 0),
		       COALESCE(SUM(actual_qty) FILTER (WHERE day < CURRENT_DATE), 0)
		FROM forecasts
		WHERE day >= CURRENT_DATE - $1::int
		  AND day < CURRENT_DATE + $1::int
		GROUP BY menu_item_id
	`, days)
	if err != nil {
		return nil, fmt.Errorf("query demand signals: %w", err)
	}
	defer rows.Close()

	var signals []DemandSignal
	for rows.Next() {
		var s DemandSignal
		if err := rows.Scan(&s.MenuItemID, &s.PredictedQty, &s.ActualQty); err != nil {
			return nil, fmt.Errorf("scan demand signal: %w", err)
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}
