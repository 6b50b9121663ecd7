package vision

import "strings"

func buildAnalysisPrompt(opts AnalysisOptions) string {
	var b strings.Builder
	b.WriteString(`
You are a food analysis engine. Look at the dish photo and estimate its
nutrition per serving.

Your task:
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- NO extra text.

Required JSON schema:
{
  "serving_size": "string",
  "calories": number,
  "protein_g": number,
  "carbs_g": number,
  "fat_g": number,
  "sodium_mg": number,
  "ingredients": ["string"],
  "analysis": "one short paragraph describing the dish"
}
`)

	if opts.MenuItemName != "" {
		b.WriteString("\nThe dish is called: " + opts.MenuItemName + "\n")
	}
	if opts.KeyIngredients != "" {
		b.WriteString("\nKnown key ingredients: " + opts.KeyIngredients + "\n")
	}
	return b.String()
}

func buildImagePrompt(dishName string) string {
	return `Generate a professional food photograph of this restaurant dish: ` + dishName + `.
Overhead shot on a rustic wooden table, natural light, shallow depth of field.
The dish should look freshly plated and appetizing. No text or watermarks.`
}
