package vision

import (
	"context"
)

type Client interface {
	// AnalyzeImage inspects a dish photo and returns the model's raw text
	// output, expected to be strict JSON matching RecipeData.
	AnalyzeImage(ctx context.Context, image []byte, mimeType string, opts AnalysisOptions) (string, error)

	// GenerateImage produces a promotional photo for a dish.
	GenerateImage(ctx context.Context, dishName string) (*GeneratedImage, error)
}
