package forecast

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// SERIES INGESTION (UPSERT BY DAY)
// --------------------------------------------------

func (r *PostgresRepository) UpsertSeries(ctx context.Context, menuItemID int64, points []Point) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range points {
		if _, err := tx.Exec(ctx, `
			INSERT INTO forecasts (menu_item_id, day, predicted_qty)
			VALUES ($1, $2, $3)
			ON CONFLICT (menu_item_id, day)
			DO UPDATE SET predicted_qty = EXCLUDED.predicted_qty
		`, menuItemID, p.Day, p.PredictedQty); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Series(ctx context.Context, menuItemID int64, days int) ([]Point, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(day, 'YYYY-MM-DD'), predicted_qty, actual_qty
		FROM forecasts
		WHERE menu_item_id = $1
		  AND day >= CURRENT_DATE - $2::int
		ORDER BY day
	`, menuItemID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Day, &p.PredictedQty, &p.ActualQty); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// --------------------------------------------------
// RECIPE-EXPLODED DEMAND
// --------------------------------------------------

func (r *PostgresRepository) ProjectedUsage(ctx context.Context, days int) ([]UsageLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ri.ingredient_id, ri.unit, SUM(f.predicted_qty * ri.quantity)
		FROM forecasts f
		JOIN recipe_items ri ON ri.menu_item_id = f.menu_item_id
		WHERE f.day >= CURRENT_DATE
		  AND f.day < CURRENT_DATE + $1::int
		GROUP BY ri.ingredient_id, ri.unit
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []UsageLine
	for rows.Next() {
		var line UsageLine
		if err := rows.Scan(&line.IngredientID, &line.Unit, &line.PredictedTotal); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// --------------------------------------------------
// ACTUALS ROLLUP (DRIVEN BY THE WORKER)
// --------------------------------------------------

func (r *PostgresRepository) RollupActuals(ctx context.Context) (int64, error) {
	cmd, err := r.db.Exec(ctx, `
		UPDATE forecasts f
		SET actual_qty = agg.qty
		FROM (
			SELECT oi.menu_item_id,
			       o.created_at::date AS day,
			       SUM(oi.quantity)::numeric AS qty
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.status = 'completed'
			GROUP BY oi.menu_item_id, o.created_at::date
		) agg
		WHERE f.menu_item_id = agg.menu_item_id
		  AND f.day = agg.day
		  AND f.actual_qty IS DISTINCT FROM agg.qty
	`)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}
