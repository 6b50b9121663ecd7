package nutrition

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("nutrition facts not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// Repository persists nutrition facts keyed by menu item.
type Repository interface {
	Upsert(ctx context.Context, f *Facts) error
	GetByMenuItem(ctx context.Context, menuItemID int64) (*Facts, error)
	Delete(ctx context.Context, menuItemID int64) error
}
