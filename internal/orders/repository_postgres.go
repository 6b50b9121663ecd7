package orders

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, o *Order, deductions []StockDeduction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (reference, customer_name, status, subtotal, total)
		VALUES ($1::uuid, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`,
		o.Reference,
		o.CustomerName,
		o.Status,
		o.Subtotal,
		o.Total,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			o.ID,
			item.MenuItemID,
			item.Quantity,
			item.UnitPrice,
			item.LineTotal,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	for _, d := range deductions {
		tag, err := tx.Exec(ctx, `
			UPDATE ingredients
			SET stock_qty = stock_qty - $1, updated_at = NOW()
			WHERE id = $2 AND stock_qty >= $1
		`, d.Quantity, d.IngredientID)
		if err != nil {
			return fmt.Errorf("deduct stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, d.Ingredient)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, reference::text, customer_name, status, subtotal, total, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&o.ID,
		&o.Reference,
		&o.CustomerName,
		&o.Status,
		&o.Subtotal,
		&o.Total,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.itemsFor(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *PostgresRepository) List(ctx context.Context, status string, limit int) ([]Order, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != "" {
		rows, err = r.pool.Query(ctx, `
			SELECT id, reference::text, customer_name, status, subtotal, total, created_at, updated_at
			FROM orders
			WHERE status = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`, status, limit)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, reference::text, customer_name, status, subtotal, total, created_at, updated_at
			FROM orders
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		out []Order
		ids []int64
	)
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.Reference,
			&o.CustomerName,
			&o.Status,
			&o.Subtotal,
			&o.Total,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

// itemsFor loads the item lines for a set of orders in one query.
func (r *PostgresRepository) itemsFor(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT oi.order_id, oi.id, oi.menu_item_id, m.name, oi.quantity, oi.unit_price, oi.line_total
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]OrderItem)
	for rows.Next() {
		var (
			orderID int64
			item    OrderItem
		)
		if err := rows.Scan(
			&orderID,
			&item.ID,
			&item.MenuItemID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *PostgresRepository) Cancel(ctx context.Context, id int64, from string, restock []StockDeduction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, StatusCancelled, id, from)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id)
	}

	for _, d := range restock {
		if _, err := tx.Exec(ctx, `
			UPDATE ingredients
			SET stock_qty = stock_qty + $1, updated_at = NOW()
			WHERE id = $2
		`, d.Quantity, d.IngredientID); err != nil {
			return fmt.Errorf("restock %s: %w", d.Ingredient, err)
		}
	}

	return tx.Commit(ctx)
}

// missingOrConflict tells a vanished order apart from a concurrent
// status change after a guarded update hit zero rows.
func (r *PostgresRepository) missingOrConflict(ctx context.Context, id int64) error {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStatusConflict
}
