package alerts

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/forecast"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/inventory"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/units"
)

// StockReader is the slice of the inventory service the producers need.
type StockReader interface {
	List(ctx context.Context) ([]inventory.Ingredient, error)
}

// UsageReader supplies recipe-exploded forecast demand.
type UsageReader interface {
	ProjectedUsage(ctx context.Context, days int) ([]forecast.UsageLine, error)
}

type Service struct {
	stock StockReader
	usage UsageReader
	units units.Table
}

func NewService(stock StockReader, usage UsageReader, table units.Table) *Service {
	return &Service{stock: stock, usage: usage, units: table}
}

// Evaluate runs both producers over one inventory read, then groups and
// combines the results.
func (s *Service) Evaluate(ctx context.Context) ([]Alert, error) {
	ingredients, err := s.stock.List(ctx)
	if err != nil {
		return nil, err
	}

	usage, err := s.usage.ProjectedUsage(ctx, forecast.DefaultHorizonDays)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dailyRate := s.dailyRates(ingredients, usage)

	var raw []Alert
	for _, ing := range ingredients {
		if a, ok := lowStockAlert(ing, now); ok {
			raw = append(raw, a)
		}
		if a, ok := stockoutAlert(ing, dailyRate[ing.ID], now); ok {
			raw = append(raw, a)
		}
	}

	return Combine(Group(raw)), nil
}

// dailyRates converts forecast usage into stock units and averages it over
// the horizon. Lines whose unit cannot reach the stock unit are skipped.
func (s *Service) dailyRates(ingredients []inventory.Ingredient, usage []forecast.UsageLine) map[int64]float64 {
	byID := make(map[int64]inventory.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	rates := make(map[int64]float64)
	for _, line := range usage {
		ing, ok := byID[line.IngredientID]
		if !ok {
			continue
		}

		qty, err := s.units.Convert(line.PredictedTotal, line.Unit, ing.StockUnit)
		if err != nil {
			log.Printf("⚠️  Skipping usage line for %s: %v", ing.Name, err)
			continue
		}
		rates[ing.ID] += qty / forecast.DefaultHorizonDays
	}

	return rates
}

func lowStockAlert(ing inventory.Ingredient, now time.Time) (Alert, bool) {
	if ing.StockQty > ing.ReorderLevel {
		return Alert{}, false
	}

	severity := SeverityWarning
	message := fmt.Sprintf(
		"%s is low on stock: %.2f %s left (reorder level %.2f %s)",
		ing.Name, ing.StockQty, ing.StockUnit, ing.ReorderLevel, ing.StockUnit,
	)
	if ing.StockQty <= 0 {
		severity = SeverityCritical
		message = fmt.Sprintf("%s is out of stock", ing.Name)
	}

	return Alert{
		IngredientID:   ing.ID,
		IngredientName: ing.Name,
		Type:           TypeLowStock,
		Severity:       severity,
		Message:        message,
		CreatedAt:      now,
	}, true
}

func stockoutAlert(ing inventory.Ingredient, dailyRate float64, now time.Time) (Alert, bool) {
	if dailyRate <= 0 || ing.LeadTimeDays <= 0 {
		return Alert{}, false
	}

	projected := dailyRate * float64(ing.LeadTimeDays)
	if projected <= ing.StockQty {
		return Alert{}, false
	}

	return Alert{
		IngredientID:   ing.ID,
		IngredientName: ing.Name,
		Type:           TypePredictedStockout,
		Severity:       SeverityWarning,
		Message: fmt.Sprintf(
			"%s may run out before restocking: projected usage %.2f %s over a %d-day lead time exceeds the %.2f %s in stock",
			ing.Name, projected, ing.StockUnit, ing.LeadTimeDays, ing.StockQty, ing.StockUnit,
		),
		CreatedAt: now,
	}, true
}
