package vision

// AnalysisOptions narrows what the model is told about the dish before
// it looks at the photo.
type AnalysisOptions struct {
	MenuItemName   string
	KeyIngredients string
}

// RecipeData is the structured payload the model extracts from a dish
// photo. Field names line up with stored nutrition facts.
type RecipeData struct {
	ServingSize string   `json:"serving_size"`
	Calories    float64  `json:"calories"`
	ProteinG    float64  `json:"protein_g"`
	CarbsG      float64  `json:"carbs_g"`
	FatG        float64  `json:"fat_g"`
	SodiumMg    float64  `json:"sodium_mg"`
	Ingredients []string `json:"ingredients"`
	Analysis    string   `json:"analysis"`
}

// GeneratedImage is a model-produced dish photo as a data URL, plus any
// accompanying text.
type GeneratedImage struct {
	DataURL string
	Text    string
}
