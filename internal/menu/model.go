package menu

import "time"

// MenuItem is a sellable dish on the menu.
type MenuItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecipeLine is one ingredient requirement of a dish, in recipe units.
// Quantities here are converted to stock units when stock is deducted.
type RecipeLine struct {
	IngredientID   int64   `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name,omitempty"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
}
