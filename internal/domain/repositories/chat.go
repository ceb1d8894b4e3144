package repositories

import (
	"context"
	"time"

	"lexgenie/internal/domain"
)

// ChatRepository provides owner-scoped access to chat sessions and their
// messages. Messages are immutable and ordered by creation time.
type ChatRepository interface {
	// CreateSession inserts a new session and fills in ID and timestamps.
	CreateSession(ctx context.Context, session *domain.ChatSession) error

	// GetSession retrieves a session owned by userID, or domain.ErrNotFound.
	GetSession(ctx context.Context, id, userID string) (*domain.ChatSession, error)

	// ListSessions returns the owner's sessions ordered by most recent
	// activity, each with its messages in chronological order.
	ListSessions(ctx context.Context, userID string) ([]domain.ChatSession, error)

	// TouchSession refreshes the owned session's updated_at timestamp.
	// Returns domain.ErrNotFound if no row matches the id+owner pair.
	TouchSession(ctx context.Context, id, userID string, at time.Time) error

	// CreateMessage appends a message to its session and fills in ID and
	// creation time.
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error

	// ListRecentMessages returns up to limit messages for the session,
	// most recent first.
	ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error)
}
