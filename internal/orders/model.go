package orders

import "time"

const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// transitions lists the statuses an order may move to from each status.
// Completed and cancelled are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusPreparing, StatusCompleted, StatusCancelled},
	StatusPreparing: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID           int64       `json:"id"`
	Reference    string      `json:"reference"`
	CustomerName string      `json:"customer_name"`
	Status       string      `json:"status"`
	Subtotal     float64     `json:"subtotal"`
	Total        float64     `json:"total"`
	Items        []OrderItem `json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         int64   `json:"id"`
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	LineTotal  float64 `json:"line_total"`
}
