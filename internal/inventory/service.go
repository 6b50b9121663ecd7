package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/units"
)

type Service struct {
	repo  Repository
	units units.Table
}

func NewService(repo Repository, table units.Table) *Service {
	return &Service{repo: repo, units: table}
}

func (s *Service) validate(ing *Ingredient) error {
	if strings.TrimSpace(ing.Name) == "" {
		return errors.New("name is required")
	}
	if !s.units.Known(ing.StockUnit) {
		return errors.New("unknown stock unit: " + ing.StockUnit)
	}
	if ing.StockQty < 0 {
		return errors.New("stock_qty must not be negative")
	}
	if ing.UnitCost < 0 {
		return errors.New("unit_cost must not be negative")
	}
	if ing.ReorderLevel < 0 {
		return errors.New("reorder_level must not be negative")
	}
	if ing.LeadTimeDays < 0 {
		return errors.New("lead_time_days must not be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ing *Ingredient) error {
	ing.StockUnit = units.Normalize(ing.StockUnit)
	if err := s.validate(ing); err != nil {
		return err
	}
	return s.repo.Create(ctx, ing)
}

func (s *Service) Get(ctx context.Context, id int64) (*Ingredient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Ingredient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, ing *Ingredient) error {
	ing.StockUnit = units.Normalize(ing.StockUnit)
	if err := s.validate(ing); err != nil {
		return err
	}
	return s.repo.Update(ctx, ing)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Adjust applies a stock delta given in any convertible unit. An empty unit
// means the delta is already in the ingredient's stock unit.
func (s *Service) Adjust(ctx context.Context, id int64, delta float64, unit string) (*Ingredient, error) {
	if delta == 0 {
		return nil, errors.New("delta must not be zero")
	}

	ing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if unit != "" {
		delta, err = s.units.Convert(delta, unit, ing.StockUnit)
		if err != nil {
			return nil, err
		}
	}

	return s.repo.AdjustStock(ctx, id, delta)
}
