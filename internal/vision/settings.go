package vision

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Settings holds the Gemini configuration for the vision service.
type Settings struct {
	APIKey     string `validate:"required"`
	Model      string `validate:"required"`
	ImageModel string `validate:"required"`
}

// SettingsFromEnv reads the Gemini configuration, filling in default
// model names when unset.
func SettingsFromEnv() Settings {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	imageModel := os.Getenv("GEMINI_IMAGE_MODEL")
	if imageModel == "" {
		imageModel = "gemini-2.0-flash-preview-image-generation"
	}
	return Settings{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		Model:      model,
		ImageModel: imageModel,
	}
}

// Validate checks that all required fields are set.
func (s *Settings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for vision settings: %w", err)
	}
	return nil
}
