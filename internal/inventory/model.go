package inventory

import "time"

// Ingredient is a tracked stock item. StockQty and ReorderLevel are in
// StockUnit; UnitCost is the purchase cost per stock unit.
type Ingredient struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	StockQty     float64   `json:"stock_qty"`
	StockUnit    string    `json:"stock_unit"`
	UnitCost     float64   `json:"unit_cost"`
	ReorderLevel float64   `json:"reorder_level"`
	LeadTimeDays int       `json:"lead_time_days"`
	UpdatedAt    time.Time `json:"updated_at"`
}
