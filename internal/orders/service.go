package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/inventory"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/menu"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/units"
)

var (
	ErrEmptyOrder        = errors.New("order has no items")
	ErrItemUnavailable   = errors.New("menu item unavailable")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// MenuReader is the slice of the menu service orders need. Prices always
// come from here, never from the request.
type MenuReader interface {
	Get(ctx context.Context, id int64) (*menu.MenuItem, error)
	GetRecipe(ctx context.Context, menuItemID int64) ([]menu.RecipeLine, error)
}

// StockReader resolves ingredients so recipe units can be converted to
// stock units.
type StockReader interface {
	Get(ctx context.Context, id int64) (*inventory.Ingredient, error)
}

// Publisher emits order events to downstream consumers.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, o *Order) error
}

// Line is one requested menu item with a quantity.
type Line struct {
	MenuItemID int64 `json:"menu_item_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required"`
}

// --------------------------------------------------
// Service
// --------------------------------------------------

type Service struct {
	repo      Repository
	menus     MenuReader
	stocks    StockReader
	units     units.Table
	publisher Publisher
}

// NewService builds the order service. publisher is optional; pass nil
// when no event broker is configured.
func NewService(repo Repository, menus MenuReader, stocks StockReader, table units.Table, publisher Publisher) *Service {
	return &Service{repo: repo, menus: menus, stocks: stocks, units: table, publisher: publisher}
}

// PlaceOrder prices the requested items, explodes their recipes into
// ingredient deductions and commits everything atomically.
func (s *Service) PlaceOrder(ctx context.Context, customerName string, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	var (
		items    []OrderItem
		subtotal float64
	)
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be greater than zero")
		}

		item, err := s.menus.Get(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, menu.ErrNotFound) {
				return nil, fmt.Errorf("%w: item %s", ErrItemUnavailable, strconv.FormatInt(line.MenuItemID, 10))
			}
			return nil, err
		}
		if !item.Available {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
		}

		lineTotal := units.Round(item.Price*float64(line.Quantity), 2)
		items = append(items, OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
			LineTotal:  lineTotal,
		})
		subtotal += lineTotal
	}

	deductions, err := s.deductions(ctx, items)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(customerName)
	if name == "" {
		name = "Walk-in"
	}

	order := &Order{
		Reference:    uuid.New().String(),
		CustomerName: name,
		Status:       StatusPending,
		Subtotal:     units.Round(subtotal, 2),
		Total:        units.Round(subtotal, 2),
		Items:        items,
	}

	if err := s.repo.Create(ctx, order, deductions); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			log.Printf("⚠️  Failed to publish order %s: %v", order.Reference, err)
		}
	}

	return order, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string, limit int) ([]Order, error) {
	if status != "" && !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, status, limit)
}

// UpdateStatus moves an order along pending -> preparing -> completed,
// or cancels it. Cancelling returns the order's ingredients to stock.
func (s *Service) UpdateStatus(ctx context.Context, id int64, to string) (*Order, error) {
	if !ValidStatus(to) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, to)
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == to {
		return order, nil
	}
	if !CanTransition(order.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, to)
	}

	if to == StatusCancelled {
		restock, err := s.deductions(ctx, order.Items)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Cancel(ctx, id, order.Status, restock); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.UpdateStatus(ctx, id, order.Status, to); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

// Cancel is UpdateStatus sugar for the cancel endpoint.
func (s *Service) Cancel(ctx context.Context, id int64) (*Order, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled)
}

// --------------------------------------------------
// Recipe explosion
// --------------------------------------------------

// deductions converts the order's recipes into per-ingredient stock
// deltas, each in the ingredient's stock unit. A recipe line whose unit
// cannot be converted fails the order; silently skipping it would let
// stock drift.
func (s *Service) deductions(ctx context.Context, items []OrderItem) ([]StockDeduction, error) {
	totals := make(map[int64]float64)
	names := make(map[int64]string)
	ingredients := make(map[int64]*inventory.Ingredient)

	for _, item := range items {
		recipe, err := s.menus.GetRecipe(ctx, item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("load recipe for %s: %w", item.Name, err)
		}
		for _, line := range recipe {
			ing, ok := ingredients[line.IngredientID]
			if !ok {
				ing, err = s.stocks.Get(ctx, line.IngredientID)
				if err != nil {
					return nil, fmt.Errorf("load ingredient %d: %w", line.IngredientID, err)
				}
				ingredients[line.IngredientID] = ing
			}

			qty, err := s.units.Convert(line.Quantity*float64(item.Quantity), line.Unit, ing.StockUnit)
			if err != nil {
				return nil, fmt.Errorf("recipe for %s uses %s, stock is in %s: %w", item.Name, line.Unit, ing.StockUnit, err)
			}
			totals[ing.ID] += qty
			names[ing.ID] = ing.Name
		}
	}

	ids := make([]int64, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	deductions := make([]StockDeduction, 0, len(ids))
	for _, id := range ids {
		deductions = append(deductions, StockDeduction{
			IngredientID: id,
			Ingredient:   names[id],
			Quantity:     totals[id],
		})
	}
	return deductions, nil
}
