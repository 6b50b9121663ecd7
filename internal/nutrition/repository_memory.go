package nutrition

import (
	"context"
	"sync"
	"time"
)

// --------------------------------------------------
// In-memory implementation for tests and local runs
// --------------------------------------------------

type MemoryRepository struct {
	mu        sync.RWMutex
	facts     map[int64]Facts
	menuItems map[int64]bool
}

// NewMemoryRepository seeds the repository with the menu item ids that
// are allowed to carry nutrition facts.
func NewMemoryRepository(menuItemIDs ...int64) *MemoryRepository {
	known := make(map[int64]bool, len(menuItemIDs))
	for _, id := range menuItemIDs {
		known[id] = true
	}
	return &MemoryRepository{
		facts:     make(map[int64]Facts),
		menuItems: known,
	}
}

func (r *MemoryRepository) Upsert(ctx context.Context, f *Facts) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.menuItems[f.MenuItemID] {
		return ErrMenuItemNotFound
	}
	f.UpdatedAt = time.Now()
	r.facts[f.MenuItemID] = *f
	return nil
}

func (r *MemoryRepository) GetByMenuItem(ctx context.Context, menuItemID int64) (*Facts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.facts[menuItemID]
	if !ok {
		return nil, ErrNotFound
	}
	out := f
	return &out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, menuItemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.facts[menuItemID]; !ok {
		return ErrNotFound
	}
	delete(r.facts, menuItemID)
	return nil
}
