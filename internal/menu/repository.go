package menu

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("menu item not found")

// Repository defines all database operations for menu items
type Repository interface {

	// -------------------------------
	// Menu items
	// -------------------------------

	Create(ctx context.Context, item *MenuItem) error
	GetByID(ctx context.Context, id int64) (*MenuItem, error)
	List(ctx context.Context) ([]MenuItem, error)

	// ListAvailable returns only items shown on the public ordering menu.
	ListAvailable(ctx context.Context) ([]MenuItem, error)

	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id int64) error
	SetImageURL(ctx context.Context, id int64, url string) error

	// -------------------------------
	// Recipes
	// -------------------------------

	// ReplaceRecipe swaps all recipe lines of an item in one transaction.
	ReplaceRecipe(ctx context.Context, menuItemID int64, lines []RecipeLine) error
	GetRecipe(ctx context.Context, menuItemID int64) ([]RecipeLine, error)
}
