package nutrition

import "time"

// Facts holds the nutrition profile of one menu item. Values are per
// serving; Ingredients is the detected ingredient list.
type Facts struct {
	MenuItemID  int64     `json:"menu_item_id"`
	ServingSize string    `json:"serving_size"`
	Calories    float64   `json:"calories"`
	ProteinG    float64   `json:"protein_g"`
	CarbsG      float64   `json:"carbs_g"`
	FatG        float64   `json:"fat_g"`
	SodiumMg    float64   `json:"sodium_mg"`
	Ingredients []string  `json:"ingredients"`
	Analysis    string    `json:"analysis,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
