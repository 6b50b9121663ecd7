package vision

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractRecipeData pulls the structured payload out of the model's text
// output. Models occasionally wrap the JSON in markdown fences or prose,
// so only the outermost braces are trusted.
func ExtractRecipeData(raw string) (*RecipeData, error) {
	jsonText := extractJSON(raw)
	if jsonText == "" {
		return nil, errors.New("no JSON in model output")
	}
	if !json.Valid([]byte(jsonText)) {
		return nil, errors.New("model returned invalid JSON")
	}

	var data RecipeData
	if err := json.Unmarshal([]byte(jsonText), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return text[start : end+1]
}
