package orders

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// --------------------------------------------------
// In-memory implementation for tests and local runs
// --------------------------------------------------

type MemoryRepository struct {
	mu         sync.RWMutex
	orders     map[int64]*Order
	seq        []int64
	stock      map[int64]float64
	nextID     int64
	nextItemID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[int64]*Order),
		stock:  make(map[int64]float64),
		nextID: 1,
	}
}

// SeedStock sets an ingredient's stock level, in stock units.
func (r *MemoryRepository) SeedStock(ingredientID int64, qty float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stock[ingredientID] = qty
}

// StockQty reports an ingredient's current stock level.
func (r *MemoryRepository) StockQty(ingredientID int64) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stock[ingredientID]
}

func (r *MemoryRepository) Create(ctx context.Context, o *Order, deductions []StockDeduction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range deductions {
		if r.stock[d.IngredientID] < d.Quantity {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, d.Ingredient)
		}
	}
	for _, d := range deductions {
		r.stock[d.IngredientID] -= d.Quantity
	}

	o.ID = r.nextID
	r.nextID++
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	for i := range o.Items {
		r.nextItemID++
		o.Items[i].ID = r.nextItemID
	}

	stored := copyOrder(o)
	r.orders[o.ID] = stored
	r.seq = append(r.seq, o.ID)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *MemoryRepository) List(ctx context.Context, status string, limit int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Order{}
	for i := len(r.seq) - 1; i >= 0 && len(out) < limit; i-- {
		o := r.orders[r.seq[i]]
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *copyOrder(o))
	}
	return out, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	if o.Status != from {
		return ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) Cancel(ctx context.Context, id int64, from string, restock []StockDeduction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	if o.Status != from {
		return ErrStatusConflict
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	for _, d := range restock {
		r.stock[d.IngredientID] += d.Quantity
	}
	return nil
}

func copyOrder(o *Order) *Order {
	out := *o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return &out
}
