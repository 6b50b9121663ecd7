package chat

import "context"

// Store persists conversation history per session.
type Store interface {
	Append(ctx context.Context, msg *Message) error
	// History returns the latest limit messages in chronological order.
	History(ctx context.Context, sessionID string, limit int) ([]Message, error)
	Clear(ctx context.Context, sessionID string) error
}
