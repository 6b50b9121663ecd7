package units

import (
	"fmt"
	"math"
	"strings"
)

// Unit dimensions. Conversions never cross dimensions: grams into
// millilitres would need a density, which recipes do not carry.
const (
	Mass   = "mass"
	Volume = "volume"
	Count  = "count"
)

// Entry describes one unit: its dimension and the factor that brings
// one of it into the dimension's base unit (g, ml, unit).
type Entry struct {
	Dimension string
	ToBase    float64
}

// Table holds recipe-unit → stock-unit conversion factors.
// It is injected wherever conversions happen; there is no
// package-level mutable table.
type Table map[string]Entry

// DefaultTable returns the factors the kitchen works with.
func DefaultTable() Table {
	return Table{
		"g":  {Mass, 1},
		"kg": {Mass, 1000},
		"mg": {Mass, 0.001},
		"oz": {Mass, 28.3495},
		"lb": {Mass, 453.592},

		"ml":   {Volume, 1},
		"l":    {Volume, 1000},
		"tsp":  {Volume, 4.92892},
		"tbsp": {Volume, 14.7868},
		"cup":  {Volume, 236.588},

		"unit":  {Count, 1},
		"dozen": {Count, 12},
	}
}

// Convert turns qty in `from` units into `to` units.
func (t Table) Convert(qty float64, from, to string) (float64, error) {
	from = Normalize(from)
	to = Normalize(to)

	if from == to {
		return qty, nil
	}

	src, ok := t[from]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", from)
	}

	dst, ok := t[to]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", to)
	}

	if src.Dimension != dst.Dimension {
		return 0, fmt.Errorf("cannot convert %s to %s", from, to)
	}

	return qty * src.ToBase / dst.ToBase, nil
}

// Known reports whether the unit (after normalization) is in the table.
func (t Table) Known(u string) bool {
	_, ok := t[Normalize(u)]
	return ok
}

// CanConvert reports whether both units are known and share a dimension.
func (t Table) CanConvert(from, to string) bool {
	from = Normalize(from)
	to = Normalize(to)

	if from == to {
		_, ok := t[from]
		return ok
	}

	src, ok := t[from]
	if !ok {
		return false
	}
	dst, ok := t[to]
	if !ok {
		return false
	}
	return src.Dimension == dst.Dimension
}

// Normalize lower-cases a unit label and folds the spellings that show
// up in recipe data onto the table's keys.
func Normalize(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))

	switch u {
	case "gram", "grams", "gm", "gms":
		return "g"
	case "kilogram", "kilograms", "kgs":
		return "kg"
	case "milligram", "milligrams":
		return "mg"
	case "ounce", "ounces":
		return "oz"
	case "pound", "pounds", "lbs":
		return "lb"
	case "liter", "liters", "litre", "litres":
		return "l"
	case "milliliter", "milliliters", "millilitre", "millilitres", "mls":
		return "ml"
	case "teaspoon", "teaspoons":
		return "tsp"
	case "tablespoon", "tablespoons":
		return "tbsp"
	case "cups":
		return "cup"
	case "piece", "pieces", "pc", "pcs", "each", "ea", "units":
		return "unit"
	}

	return u
}

// Round keeps fixed-decimal semantics: halves round away from zero.
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
