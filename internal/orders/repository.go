package orders

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)

// StockDeduction is an inventory delta in the ingredient's stock unit.
type StockDeduction struct {
	IngredientID int64
	Ingredient   string
	Quantity     float64
}

type Repository interface {
	// Create inserts the order with its items and applies the stock
	// deductions in a single transaction. If any ingredient runs short
	// the whole order is rolled back.
	Create(ctx context.Context, o *Order, deductions []StockDeduction) error

	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, status string, limit int) ([]Order, error)

	// UpdateStatus moves an order to a new status, but only if it is
	// still in the from status.
	UpdateStatus(ctx context.Context, id int64, from, to string) error

	// Cancel marks the order cancelled and returns the given stock to
	// inventory in the same transaction.
	Cancel(ctx context.Context, id int64, from string, restock []StockDeduction) error
}
