package vision

import "testing"

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("GEMINI_IMAGE_MODEL", "")

	s := SettingsFromEnv()
	if s.APIKey != "test-key" {
		t.Errorf("expected api key from env, got %q", s.APIKey)
	}
	if s.Model == "" || s.ImageModel == "" {
		t.Errorf("expected default models, got %q / %q", s.Model, s.ImageModel)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid settings, got %v", err)
	}
}

func TestSettingsValidateRequiresAPIKey(t *testing.T) {
	s := Settings{Model: "gemini-2.0-flash", ImageModel: "img"}
	if err := s.Validate(); err == nil {
		t.Error("expected validation to fail without an api key")
	}
}
