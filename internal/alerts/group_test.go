package alerts

import (
	"testing"
	"time"
)

func TestGroupMergesDuplicates(t *testing.T) {
	older := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	in := []Alert{
		{IngredientName: "Flour", Type: TypeLowStock, Message: "first", CreatedAt: older},
		{IngredientName: "Flour", Type: TypeLowStock, Message: "second", CreatedAt: newer},
	}

	out := Group(in)

	if len(out) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(out))
	}
	if out[0].Message != "first; second" {
		t.Errorf("expected messages joined with '; ', got %q", out[0].Message)
	}
	if !out[0].CreatedAt.Equal(newer) {
		t.Errorf("expected newest CreatedAt to win, got %v", out[0].CreatedAt)
	}
}

func TestGroupKeepsDistinctTypes(t *testing.T) {
	now := time.Now()

	in := []Alert{
		{IngredientName: "Flour", Type: TypeLowStock, Message: "a", CreatedAt: now},
		{IngredientName: "Flour", Type: TypePredictedStockout, Message: "b", CreatedAt: now},
		{IngredientName: "Milk", Type: TypeLowStock, Message: "c", CreatedAt: now},
	}

	out := Group(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(out))
	}
}

func TestGroupKeepsFirstSeenOrder(t *testing.T) {
	now := time.Now()

	in := []Alert{
		{IngredientName: "Milk", Type: TypeLowStock, Message: "a", CreatedAt: now},
		{IngredientName: "Flour", Type: TypeLowStock, Message: "b", CreatedAt: now},
		{IngredientName: "Milk", Type: TypeLowStock, Message: "c", CreatedAt: now},
	}

	out := Group(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(out))
	}
	if out[0].IngredientName != "Milk" || out[1].IngredientName != "Flour" {
		t.Errorf("expected first-seen order Milk, Flour; got %s, %s",
			out[0].IngredientName, out[1].IngredientName)
	}
}

func TestCombineMergesBothTypes(t *testing.T) {
	older := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	in := []Alert{
		{IngredientName: "Flour", Type: TypeLowStock, Severity: SeverityWarning, Message: "low", CreatedAt: older},
		{IngredientName: "Milk", Type: TypeLowStock, Severity: SeverityWarning, Message: "milk low", CreatedAt: older},
		{IngredientName: "Flour", Type: TypePredictedStockout, Severity: SeverityWarning, Message: "running out", CreatedAt: newer},
	}

	out := Combine(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(out))
	}

	combined := out[0]
	if combined.IngredientName != "Flour" {
		t.Fatalf("expected the combined alert in Flour's position, got %s", combined.IngredientName)
	}
	if combined.Type != TypeCombined {
		t.Errorf("expected type %s, got %s", TypeCombined, combined.Type)
	}
	if combined.Severity != SeverityCritical {
		t.Errorf("expected severity %s, got %s", SeverityCritical, combined.Severity)
	}
	if combined.Message != "low; running out" {
		t.Errorf("expected joined message, got %q", combined.Message)
	}
	if !combined.CreatedAt.Equal(newer) {
		t.Errorf("expected newest CreatedAt, got %v", combined.CreatedAt)
	}

	if out[1].Type != TypeLowStock || out[1].IngredientName != "Milk" {
		t.Errorf("expected Milk's alert untouched, got %+v", out[1])
	}
}

func TestCombineLeavesSingleTypeAlone(t *testing.T) {
	in := []Alert{
		{IngredientName: "Flour", Type: TypeLowStock, Severity: SeverityWarning, Message: "low", CreatedAt: time.Now()},
	}

	out := Combine(in)
	if len(out) != 1 || out[0].Type != TypeLowStock {
		t.Fatalf("expected the alert unchanged, got %+v", out)
	}
}
