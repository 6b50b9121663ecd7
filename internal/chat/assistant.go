package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/menu"
)

var ErrAssistantUnavailable = errors.New("assistant is not configured")

// historyLimit caps how much prior conversation is replayed to the model.
const historyLimit = 20

// Model is the slice of the language model API the assistant needs. Any
// llms.Model satisfies it.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// MenuLister feeds the live menu into the system prompt so the assistant
// answers from what is actually orderable.
type MenuLister interface {
	PublicMenu(ctx context.Context) ([]menu.MenuItem, error)
}

type Assistant struct {
	store Store
	model Model
	menus MenuLister
}

// NewAssistant builds the chat assistant. model may be nil when no
// provider is configured; menus may be nil to skip menu context.
func NewAssistant(store Store, model Model, menus MenuLister) *Assistant {
	return &Assistant{store: store, model: model, menus: menus}
}

// Ask sends one customer question through the model, with the session's
// recent history as context, and persists both sides of the exchange.
// Nothing is persisted when the model call fails, so a retry starts clean.
func (a *Assistant) Ask(ctx context.Context, sessionID, question string) (*Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("message is required")
	}
	if a.model == nil {
		return nil, ErrAssistantUnavailable
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	history, err := a.store.History(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, err
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, a.systemPrompt(ctx)),
	}
	for _, m := range history {
		role := schema.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = schema.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, question))

	resp, err := a.model.GenerateContent(ctx, messages,
		llms.WithMaxTokens(600),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty model response")
	}
	reply := strings.TrimSpace(resp.Choices[0].Content)

	userMsg := &Message{SessionID: sessionID, Role: RoleUser, Content: question}
	if err := a.store.Append(ctx, userMsg); err != nil {
		return nil, err
	}
	assistantMsg := &Message{SessionID: sessionID, Role: RoleAssistant, Content: reply}
	if err := a.store.Append(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return assistantMsg, nil
}

func (a *Assistant) History(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return a.store.History(ctx, sessionID, limit)
}

func (a *Assistant) Clear(ctx context.Context, sessionID string) error {
	return a.store.Clear(ctx, sessionID)
}

func (a *Assistant) systemPrompt(ctx context.Context) string {
	var b strings.Builder
	b.WriteString(`You are the front-of-house assistant for a restaurant.
Answer questions about the menu, dishes, ingredients and orders.
Be warm and concise. If you do not know something, say so instead of guessing.
Never invent dishes or prices that are not on the menu.`)

	if a.menus == nil {
		return b.String()
	}
	items, err := a.menus.PublicMenu(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load menu for chat context: %v", err)
		return b.String()
	}
	if len(items) == 0 {
		return b.String()
	}

	b.WriteString("\n\nToday's menu:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s): %.2f", item.Name, item.Category, item.Price)
		if item.Description != "" {
			b.WriteString(". " + item.Description)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
