package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
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

func (r *PostgresRepository) Upsert(ctx context.Context, f *Facts) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM menu_items WHERE id = $1)`, f.MenuItemID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check menu item: %w", err)
	}
	if !exists {
		return ErrMenuItemNotFound
	}

	ingredients, err := json.Marshal(f.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO nutrition_facts
			(menu_item_id, serving_size, calories, protein_g, carbs_g, fat_g, sodium_mg, ingredients, analysis, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (menu_item_id) DO UPDATE SET
			serving_size = EXCLUDED.serving_size,
			calories     = EXCLUDED.calories,
			protein_g    = EXCLUDED.protein_g,
			carbs_g      = EXCLUDED.carbs_g,
			fat_g        = EXCLUDED.fat_g,
			sodium_mg    = EXCLUDED.sodium_mg,
			ingredients  = EXCLUDED.ingredients,
			analysis     = EXCLUDED.analysis,
			updated_at   = NOW()
		RETURNING updated_at
	`,
		f.MenuItemID,
		f.ServingSize,
		f.Calories,
		f.ProteinG,
		f.CarbsG,
		f.FatG,
		f.SodiumMg,
		ingredients,
		f.Analysis,
	).Scan(&f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert nutrition facts: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByMenuItem(ctx context.Context, menuItemID int64) (*Facts, error) {
	var (
		f   Facts
		raw []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT menu_item_id, serving_size, calories, protein_g, carbs_g, fat_g, sodium_mg, ingredients, COALESCE(analysis, ''), updated_at
		FROM nutrition_facts
		WHERE menu_item_id = $1
	`, menuItemID).Scan(
		&f.MenuItemID,
		&f.ServingSize,
		&f.Calories,
		&f.ProteinG,
		&f.CarbsG,
		&f.FatG,
		&f.SodiumMg,
		&raw,
		&f.Analysis,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get nutrition facts: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.Ingredients); err != nil {
			return nil, fmt.Errorf("unmarshal ingredients: %w", err)
		}
	}
	return &f, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, menuItemID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM nutrition_facts WHERE menu_item_id = $1`, menuItemID)
	if err != nil {
		return fmt.Errorf("delete nutrition facts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
