package menu

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
// MENU ITEMS
// --------------------------------------------------

func (r *PostgresRepository) Create(ctx context.Context, item *MenuItem) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO menu_items (name, category, description, price, image_url, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, item.Name, item.Category, item.Description, item.Price, item.ImageURL, item.Available).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*MenuItem, error) {
	item := &MenuItem{}

	err := r.db.QueryRow(ctx, `
		SELECT id, name, category, COALESCE(description, ''), price,
		       COALESCE(image_url, ''), available, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`, id).Scan(
		&item.ID, &item.Name, &item.Category, &item.Description, &item.Price,
		&item.ImageURL, &item.Available, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]MenuItem, error) {
	return r.list(ctx, `
		SELECT id, name, category, COALESCE(description, ''), price,
		       COALESCE(image_url, ''), available, created_at, updated_at
		FROM menu_items
		ORDER BY category, name
	`)
}

func (r *PostgresRepository) ListAvailable(ctx context.Context) ([]MenuItem, error) {
	return r.list(ctx, `
		SELECT id, name, category, COALESCE(description, ''), price,
		       COALESCE(image_url, ''), available, created_at, updated_at
		FROM menu_items
		WHERE available
		ORDER BY category, name
	`)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]MenuItem, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var item MenuItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &item.Description, &item.Price,
			&item.ImageURL, &item.Available, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, item *MenuItem) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET name = $1,
		    category = $2,
		    description = $3,
		    price = $4,
		    available = $5,
		    updated_at = now()
		WHERE id = $6
	`, item.Name, item.Category, item.Description, item.Price, item.Available, item.ID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET image_url = $1,
		    updated_at = now()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// RECIPES (ATOMIC REPLACE)
// --------------------------------------------------

func (r *PostgresRepository) ReplaceRecipe(ctx context.Context, menuItemID int64, lines []RecipeLine) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var one int
	err = tx.QueryRow(ctx, `SELECT 1 FROM menu_items WHERE id = $1`, menuItemID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM recipe_items WHERE menu_item_id = $1
	`, menuItemID); err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_items (menu_item_id, ingredient_id, quantity, unit)
			VALUES ($1, $2, $3, $4)
		`, menuItemID, line.IngredientID, line.Quantity, line.Unit); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) GetRecipe(ctx context.Context, menuItemID int64) ([]RecipeLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ri.ingredient_id, i.name, ri.quantity, ri.unit
		FROM recipe_items ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.menu_item_id = $1
		ORDER BY i.name
	`, menuItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []RecipeLine
	for rows.Next() {
		var line RecipeLine
		if err := rows.Scan(&line.IngredientID, &line.IngredientName, &line.Quantity, &line.Unit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
