package menu

import (
	"context"
	"sort"
	"time"
)

type InMemoryRepository struct {
	items   map[int64]*MenuItem
	recipes map[int64][]RecipeLine
	nextID  int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:   make(map[int64]*MenuItem),
		recipes: make(map[int64][]RecipeLine),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, item *MenuItem) error {
	r.nextID++
	item.ID = r.nextID
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int64) (*MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]MenuItem, error) {
	return r.collect(func(*MenuItem) bool { return true }), nil
}

func (r *InMemoryRepository) ListAvailable(_ context.Context) ([]MenuItem, error) {
	return r.collect(func(item *MenuItem) bool { return item.Available }), nil
}

func (r *InMemoryRepository) collect(keep func(*MenuItem) bool) []MenuItem {
	var items []MenuItem
	for _, item := range r.items {
		if keep(item) {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (r *InMemoryRepository) Update(_ context.Context, item *MenuItem) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return ErrNotFound
	}

	item.CreatedAt = stored.CreatedAt
	item.ImageURL = stored.ImageURL
	item.UpdatedAt = time.Now()

	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	delete(r.recipes, id)
	return nil
}

func (r *InMemoryRepository) SetImageURL(_ context.Context, id int64, url string) error {
	item, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	item.ImageURL = url
	item.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) ReplaceRecipe(_ context.Context, menuItemID int64, lines []RecipeLine) error {
	if _, ok := r.items[menuItemID]; !ok {
		return ErrNotFound
	}
	r.recipes[menuItemID] = append([]RecipeLine(nil), lines...)
	return nil
}

func (r *InMemoryRepository) GetRecipe(_ context.Context, menuItemID int64) ([]RecipeLine, error) {
	return append([]RecipeLine(nil), r.recipes[menuItemID]...), nil
}
