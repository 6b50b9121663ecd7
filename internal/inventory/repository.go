package inventory

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("ingredient not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository defines all database operations for ingredients
type Repository interface {
	Create(ctx context.Context, ing *Ingredient) error
	GetByID(ctx context.Context, id int64) (*Ingredient, error)
	List(ctx context.Context) ([]Ingredient, error)
	Update(ctx context.Context, ing *Ingredient) error
	Delete(ctx context.Context, id int64) error

	// AdjustStock applies a delta in stock units. A delta that would take
	// the stock below zero fails with ErrInsufficientStock.
	AdjustStock(ctx context.Context, id int64, delta float64) (*Ingredient, error)
}
