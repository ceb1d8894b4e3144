package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"lexgenie/internal/domain"
	"lexgenie/internal/domain/repositories"
)

// PostgresChatRepository implements the ChatRepository interface using PostgreSQL
type PostgresChatRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewChatRepository creates a new PostgresChatRepository
func NewChatRepository(config *RepositoryConfig) repositories.ChatRepository {
	return &PostgresChatRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateSession creates a new chat session
func (r *PostgresChatRepository) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.ChatSessions)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		session.UserID,
		session.Title,
		session.CreatedAt,
		session.UpdatedAt,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create chat session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID
func (r *PostgresChatRepository) GetSession(ctx context.Context, id, userID string) (*domain.ChatSession, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.ChatSessions)

	var session domain.ChatSession
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chat session %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chat session: %w", err)
	}

	return &session, nil
}

// ListSessions returns the owner's sessions by most recent activity, each
// with its messages in chronological order.
func (r *PostgresChatRepository) ListSessions(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, r.tables.ChatSessions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ChatSession
	for rows.Next() {
		var session domain.ChatSession
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Title,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chat session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat sessions: %w", err)
	}

	if sessions == nil {
		return []domain.ChatSession{}, nil
	}

	// Attach messages per session
	index := make(map[string]int, len(sessions))
	ids := make([]string, 0, len(sessions))
	for i := range sessions {
		sessions[i].Messages = []domain.ChatMessage{}
		index[sessions[i].ID] = i
		ids = append(ids, sessions[i].ID)
	}

	msgQuery := fmt.Sprintf(`
		SELECT id, session_id, sender, content, created_at
		FROM %s
		WHERE session_id = ANY($1)
		ORDER BY created_at ASC
	`, r.tables.ChatMessages)

	msgRows, err := executor.Query(ctx, msgQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer msgRows.Close()

	for msgRows.Next() {
		var msg domain.ChatMessage
		err := msgRows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.Sender,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		if i, ok := index[msg.SessionID]; ok {
			sessions[i].Messages = append(sessions[i].Messages, msg)
		}
	}

	if err := msgRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}

	return sessions, nil
}

// TouchSession refreshes the owned session's updated_at timestamp
func (r *PostgresChatRepository) TouchSession(ctx context.Context, id, userID string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET updated_at = $1
		WHERE id = $2 AND user_id = $3
	`, r.tables.ChatSessions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, at, id, userID)
	if err != nil {
		return fmt.Errorf("touch chat session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat session %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CreateMessage appends a message to a session
func (r *PostgresChatRepository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (session_id, sender, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.ChatMessages)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		msg.SessionID,
		msg.Sender,
		msg.Content,
		msg.CreatedAt,
	).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("create chat message: %w", err)
	}

	return nil
}

// ListRecentMessages returns up to limit messages, most recent first
func (r *PostgresChatRepository) ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, sender, content, created_at
		FROM %s
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.ChatMessages)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		err := rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.Sender,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}

	if messages == nil {
		messages = []domain.ChatMessage{}
	}

	return messages, nil
}
