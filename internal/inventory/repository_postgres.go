package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (r *PostgresRepository) Create(ctx context.Context, ing *Ingredient) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO ingredients (name, stock_qty, stock_unit, unit_cost, reorder_level, lead_time_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, updated_at
	`, ing.Name, ing.StockQty, ing.StockUnit, ing.UnitCost, ing.ReorderLevel, ing.LeadTimeDays).
		Scan(&ing.ID, &ing.UpdatedAt)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Ingredient, error) {
	ing := &Ingredient{}

	err := r.db.QueryRow(ctx, `
		SELECT id, name, stock_qty, stock_unit, unit_cost, reorder_level, lead_time_days, updated_at
		FROM ingredients
		WHERE id = $1
	`, id).Scan(
		&ing.ID, &ing.Name, &ing.StockQty, &ing.StockUnit,
		&ing.UnitCost, &ing.ReorderLevel, &ing.LeadTimeDays, &ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return ing, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, stock_qty, stock_unit, unit_cost, reorder_level, lead_time_days, updated_at
		FROM ingredients
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ings []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(
			&ing.ID, &ing.Name, &ing.StockQty, &ing.StockUnit,
			&ing.UnitCost, &ing.ReorderLevel, &ing.LeadTimeDays, &ing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ings = append(ings, ing)
	}

	return ings, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, ing *Ingredient) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET name = $1,
		    stock_qty = $2,
		    stock_unit = $3,
		    unit_cost = $4,
		    reorder_level = $5,
		    lead_time_days = $6,
		    updated_at = now()
		WHERE id = $7
	`, ing.Name, ing.StockQty, ing.StockUnit, ing.UnitCost, ing.ReorderLevel, ing.LeadTimeDays, ing.ID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// STOCK ADJUSTMENT (GUARDED IN SQL)
// --------------------------------------------------

func (r *PostgresRepository) AdjustStock(ctx context.Context, id int64, delta float64) (*Ingredient, error) {
	ing := &Ingredient{}

	err := r.db.QueryRow(ctx, `
		UPDATE ingredients
		SET stock_qty = stock_qty + $1,
		    updated_at = now()
		WHERE id = $2
		  AND stock_qty + $1 >= 0
		RETURNING id, name, stock_qty, stock_unit, unit_cost, reorder_level, lead_time_days, updated_at
	`, delta, id).Scan(
		&ing.ID, &ing.Name, &ing.StockQty, &ing.StockUnit,
		&ing.UnitCost, &ing.ReorderLevel, &ing.LeadTimeDays, &ing.UpdatedAt,
	)
	if err == nil {
		return ing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Zero rows: either the row is missing or the guard blocked the delta.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrInsufficientStock
}
