package alerts

import (
	"context"
	"testing"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/forecast"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/inventory"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/units"
)

type fakeStock struct {
	ingredients []inventory.Ingredient
}

func (f *fakeStock) List(context.Context) ([]inventory.Ingredient, error) {
	return f.ingredients, nil
}

type fakeUsage struct {
	lines []forecast.UsageLine
}

func (f *fakeUsage) ProjectedUsage(context.Context, int) ([]forecast.UsageLine, error) {
	return f.lines, nil
}

func evaluate(t *testing.T, ings []inventory.Ingredient, lines []forecast.UsageLine) []Alert {
	t.Helper()

	svc := NewService(&fakeStock{ingredients: ings}, &fakeUsage{lines: lines}, units.DefaultTable())
	alerts, err := svc.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return alerts
}

func TestEvaluateLowStock(t *testing.T) {
	alerts := evaluate(t, []inventory.Ingredient{
		{ID: 1, Name: "Flour", StockQty: 500, StockUnit: "g", ReorderLevel: 1000},
	}, nil)

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Type != TypeLowStock || alerts[0].Severity != SeverityWarning {
		t.Errorf("expected low_stock warning, got %s/%s", alerts[0].Type, alerts[0].Severity)
	}
}

func TestEvaluateOutOfStockIsCritical(t *testing.T) {
	alerts := evaluate(t, []inventory.Ingredient{
		{ID: 1, Name: "Flour", StockQty: 0, StockUnit: "g", ReorderLevel: 1000},
	}, nil)

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Severity != SeverityCritical {
		t.Errorf("expected critical severity, got %s", alerts[0].Severity)
	}
}

func TestEvaluateHealthyStockIsQuiet(t *testing.T) {
	alerts := evaluate(t, []inventory.Ingredient{
		{ID: 1, Name: "Flour", StockQty: 5000, StockUnit: "g", ReorderLevel: 1000, LeadTimeDays: 2},
	}, []forecast.UsageLine{
		// 140 g over 14 days: 10 g/day, 20 g over lead time, well within stock
		{IngredientID: 1, Unit: "g", PredictedTotal: 140},
	})

	if len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}
}

func TestEvaluatePredictedStockout(t *testing.T) {
	alerts := evaluate(t, []inventory.Ingredient{
		{ID: 1, Name: "Chicken", StockQty: 1000, StockUnit: "g", ReorderLevel: 100, LeadTimeDays: 7},
	}, []forecast.UsageLine{
		// 2.8 kg over 14 days: 200 g/day, 1400 g over the 7-day lead time
		{IngredientID: 1, Unit: "kg", PredictedTotal: 2.8},
	})

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Type != TypePredictedStockout {
		t.Errorf("expected predicted_stockout, got %s", alerts[0].Type)
	}
}

func TestEvaluateCombined(t *testing.T) {
	alerts := evaluate(t, []inventory.Ingredient{
		// below reorder level AND projected to run out
		{ID: 1, Name: "Chicken", StockQty: 500, StockUnit: "g", ReorderLevel: 1000, LeadTimeDays: 7},
	}, []forecast.UsageLine{
		{IngredientID: 1, Unit: "g", PredictedTotal: 2800},
	})

	if len(alerts) != 1 {
		t.Fatalf("expected 1 combined alert, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].Type != TypeCombined {
		t.Errorf("expected combined, got %s", alerts[0].Type)
	}
	if alerts[0].Severity != SeverityCritical {
		t.Errorf("expected critical severity, got %s", alerts[0].Severity)
	}
}

func TestEvaluateSkipsUnconvertibleUsage(t *testing.T) {
	alerts := evaluate(t, []inventory.Ingredient{
		// volume usage against a mass-tracked ingredient cannot convert
		{ID: 1, Name: "Flour", StockQty: 5000, StockUnit: "g", ReorderLevel: 100, LeadTimeDays: 7},
	}, []forecast.UsageLine{
		{IngredientID: 1, Unit: "ml", PredictedTotal: 99999},
	})

	if len(alerts) != 0 {
		t.Fatalf("expected the unconvertible line to be skipped, got %+v", alerts)
	}
}
