package pricing

// CostLine is one recipe ingredient priced against inventory. Quantity is
// in recipe units; UnitCost is per stock unit of the ingredient.
type CostLine struct {
	MenuItemID   int64
	MenuItem     string
	Price        float64
	IngredientID int64
	Ingredient   string
	Quantity     float64
	Unit         string
	StockUnit    string
	UnitCost     float64
}

// DemandSignal pairs forecast demand for the coming window with actual
// sales from the trailing one.
type DemandSignal struct {
	MenuItemID   int64
	PredictedQty float64
	ActualQty    float64
}

// Recommendation is the computed price advice for one menu item. Reason
// names the signal that drove the number; Rationale is the optional
// model-written explanation on top.
type Recommendation struct {
	MenuItemID       int64   `json:"menu_item_id"`
	Name             string  `json:"name"`
	CurrentPrice     float64 `json:"current_price"`
	UnitCost         float64 `json:"unit_cost"`
	Margin           float64 `json:"margin"`
	TargetPrice      float64 `json:"target_price"`
	DemandFactor     float64 `json:"demand_factor"`
	RecommendedPrice float64 `json:"recommended_price"`
	Reason           string  `json:"reason"`
	Rationale        string  `json:"rationale,omitempty"`
}
