package inventory

import (
	"context"
	"sort"
	"time"
)

type InMemoryRepository struct {
	ingredients map[int64]*Ingredient
	nextID      int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		ingredients: make(map[int64]*Ingredient),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, ing *Ingredient) error {
	r.nextID++
	ing.ID = r.nextID
	ing.UpdatedAt = time.Now()

	copied := *ing
	r.ingredients[ing.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int64) (*Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ing
	return &copied, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]Ingredient, error) {
	var ings []Ingredient
	for _, ing := range r.ingredients {
		ings = append(ings, *ing)
	}
	sort.Slice(ings, func(i, j int) bool { return ings[i].Name < ings[j].Name })
	return ings, nil
}

func (r *InMemoryRepository) Update(_ context.Context, ing *Ingredient) error {
	if _, ok := r.ingredients[ing.ID]; !ok {
		return ErrNotFound
	}
	ing.UpdatedAt = time.Now()

	copied := *ing
	r.ingredients[ing.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.ingredients[id]; !ok {
		return ErrNotFound
	}
	delete(r.ingredients, id)
	return nil
}

func (r *InMemoryRepository) AdjustStock(_ context.Context, id int64, delta float64) (*Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, ErrNotFound
	}
	if ing.StockQty+delta < 0 {
		return nil, ErrInsufficientStock
	}

	ing.StockQty += delta
	ing.UpdatedAt = time.Now()

	copied := *ing
	return &copied, nil
}
