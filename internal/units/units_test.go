package units

import (
	"math"
	"testing"
)

func TestConvertGramsToKilograms(t *testing.T) {
	table := DefaultTable()

	got, err := table.Convert(1000, "g", "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("Convert(1000, g, kg) = %v, want 1", got)
	}
}

func TestConvertSameUnit(t *testing.T) {
	table := DefaultTable()

	got, err := table.Convert(42.5, "ml", "ml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42.5 {
		t.Fatalf("Convert(42.5, ml, ml) = %v, want 42.5", got)
	}
}

func TestConvertThroughBase(t *testing.T) {
	table := DefaultTable()

	cases := []struct {
		qty      float64
		from, to string
		want     float64
	}{
		{2, "kg", "g", 2000},
		{500, "ml", "l", 0.5},
		{3, "tbsp", "tsp", 9.000024346104217},
		{1, "dozen", "unit", 12},
		{2, "cup", "ml", 473.176},
	}

	for _, c := range cases {
		got, err := table.Convert(c.qty, c.from, c.to)
		if err != nil {
			t.Fatalf("Convert(%v, %s, %s): %v", c.qty, c.from, c.to, err)
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Convert(%v, %s, %s) = %v, want %v", c.qty, c.from, c.to, got, c.want)
		}
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	table := DefaultTable()

	if _, err := table.Convert(1, "smidgen", "g"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestConvertAcrossDimensions(t *testing.T) {
	table := DefaultTable()

	if _, err := table.Convert(1, "g", "ml"); err == nil {
		t.Fatal("expected error converting mass to volume")
	}
}

func TestNormalizeAliases(t *testing.T) {
	cases := map[string]string{
		"Grams":       "g",
		" KG ":        "kg",
		"litres":      "l",
		"Milliliters": "ml",
		"pieces":      "unit",
		"LBS":         "lb",
		"cup":         "cup",
	}

	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanConvert(t *testing.T) {
	table := DefaultTable()

	if !table.CanConvert("kg", "oz") {
		t.Error("CanConvert(kg, oz) = false, want true")
	}
	if table.CanConvert("kg", "l") {
		t.Error("CanConvert(kg, l) = true, want false")
	}
	if table.CanConvert("kg", "nonsense") {
		t.Error("CanConvert(kg, nonsense) = true, want false")
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		v        float64
		decimals int
		want     float64
	}{
		// 1.005 and 2.675 sit just below their decimal value in binary,
		// so they round down.
		{1.005, 2, 1.0},
		{2.675, 2, 2.67},
		{1.5, 0, 2},
		{-1.5, 0, -2},
		{12.3456, 2, 12.35},
		{0.1249, 2, 0.12},
	}

	for _, c := range cases {
		if got := Round(c.v, c.decimals); got != c.want {
			t.Errorf("Round(%v, %d) = %v, want %v", c.v, c.decimals, got, c.want)
		}
	}
}
