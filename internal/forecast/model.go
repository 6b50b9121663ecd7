package forecast

// DayFormat is how forecast days travel through the API and the DATE column.
const DayFormat = "2006-01-02"

// Point is one forecast day for a menu item. ActualQty stays nil until the
// rollup worker fills it from completed orders.
type Point struct {
	Day          string   `json:"day"`
	PredictedQty float64  `json:"predicted_qty"`
	ActualQty    *float64 `json:"actual_qty,omitempty"`
}

// UsageLine is the forecast demand for one ingredient over a horizon,
// recipe-exploded but still in recipe units.
type UsageLine struct {
	IngredientID   int64   `json:"ingredient_id"`
	Unit           string  `json:"unit"`
	PredictedTotal float64 `json:"predicted_total"`
}
