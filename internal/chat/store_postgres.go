package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// --------------------------------------------------
// PostgreSQL implementation
// --------------------------------------------------

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, msg *Message) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO chat_messages (session_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`,
		msg.SessionID,
		msg.Role,
		msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

func (s *PostgresStore) History(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	// Fetch the newest messages, then flip them back to reading order.
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	defer rows.Close()

	var newest []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		newest = append(newest, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Message, len(newest))
	for i, m := range newest {
		out[len(newest)-1-i] = m
	}
	return out, nil
}

func (s *PostgresStore) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM chat_messages WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
