package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// RationaleModel is the slice of the language model API the pricing
// service needs. Any llms.Model satisfies it.
type RationaleModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// rationale asks the model for a short explanation of the recommendation.
// Failures degrade to an empty string; the numbers stand on their own.
func (s *Service) rationale(ctx context.Context, rec Recommendation) string {
	if s.llm == nil {
		return ""
	}

	prompt := buildRationalePrompt(rec)
	resp, err := s.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)},
		llms.WithMaxTokens(120),
		llms.WithTemperature(0.4),
	)
	if err != nil {
		logger.Warn().Err(err).Msgf("Rationale generation failed for %s", rec.Name)
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Content)
}

func buildRationalePrompt(rec Recommendation) string {
	var b strings.Builder
	b.WriteString("You are a restaurant pricing analyst. In two sentences or fewer, explain this price recommendation to the owner.\n\n")
	fmt.Fprintf(&b, "Dish: %s\n", rec.Name)
	fmt.Fprintf(&b, "Current price: %.2f\n", rec.CurrentPrice)
	fmt.Fprintf(&b, "Ingredient cost per serving: %.2f\n", rec.UnitCost)
	fmt.Fprintf(&b, "Current gross margin: %.0f%%\n", rec.Margin*100)
	fmt.Fprintf(&b, "Target margin: %.0f%%\n", TargetMargin*100)
	fmt.Fprintf(&b, "Demand vs. forecast: %.2fx\n", rec.DemandFactor)
	fmt.Fprintf(&b, "Recommended price: %.2f\n\n", rec.RecommendedPrice)
	b.WriteString("Mention the margin and, if demand is unusually high or low, the demand. Plain language, no markdown.")
	return b.String()
}
