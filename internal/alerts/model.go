package alerts

import "time"

const (
	TypeLowStock          = "low_stock"
	TypePredictedStockout = "predicted_stockout"
	TypeCombined          = "combined"
)

const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert is derived on demand from stock and forecast state.
// Alerts are never persisted; every read recomputes them.
type Alert struct {
	IngredientID   int64     `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	Type           string    `json:"type"`
	Severity       string    `json:"severity"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}
