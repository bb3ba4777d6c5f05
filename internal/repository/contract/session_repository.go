package contract

import (
	"context"

	"ai-storyteller-be/internal/entity"
)

// SessionRepository is the durable mapping from session id to its ordered
// message history. Implementations read and rewrite the full history per
// call; there is no partial update.
type SessionRepository interface {
	GetHistory(ctx context.Context, sessionID string) ([]entity.Message, error)
	SetHistory(ctx context.Context, sessionID string, history []entity.Message) error
}
