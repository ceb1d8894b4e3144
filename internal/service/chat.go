package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lexgenie/internal/domain"
	"lexgenie/internal/domain/repositories"
	"lexgenie/internal/genai"
)

const (
	// DefaultSessionTitle names sessions created without an explicit title.
	DefaultSessionTitle = "New Chat Session"

	// contextWindowSize caps how many prior messages are supplied to the
	// generation client. Persisted history is unaffected; only the prompt
	// context shrinks for long conversations.
	contextWindowSize = 10
)

// CreateSessionRequest carries the inputs for session creation.
type CreateSessionRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
}

// PostMessageRequest carries one user message to a session.
type PostMessageRequest struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// ChatService manages chat sessions and message exchanges.
type ChatService interface {
	// CreateSession makes a new session, defaulting the title.
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*domain.ChatSession, error)

	// ListSessions returns the owner's sessions by recent activity, each
	// with its messages in chronological order.
	ListSessions(ctx context.Context, userID string) ([]domain.ChatSession, error)

	// PostMessage records the user's message, obtains the assistant's reply
	// from the generation client, persists both sides, refreshes the
	// session's activity timestamp, and returns the assistant message.
	PostMessage(ctx context.Context, req *PostMessageRequest) (*domain.ChatMessage, error)
}

type chatService struct {
	chatRepo  repositories.ChatRepository
	generator genai.Generator
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	chatRepo repositories.ChatRepository,
	generator genai.Generator,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) ChatService {
	return &chatService{
		chatRepo:  chatRepo,
		generator: generator,
		txManager: txManager,
		logger:    logger,
	}
}

func (s *chatService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*domain.ChatSession, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	title := req.Title
	if title == "" {
		title = DefaultSessionTitle
	}

	now := time.Now()
	session := &domain.ChatSession{
		UserID:    req.UserID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("chat session created", "id", session.ID)

	return session, nil
}

func (s *chatService) ListSessions(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	return s.chatRepo.ListSessions(ctx, userID)
}

// PostMessage runs one exchange. The session is verified before the
// external generation call so an invalid session never wastes one; the
// context window is captured before the new user message exists, so it
// never contains the message being answered. Both messages and the session
// timestamp bump commit in a single transaction - a generated reply whose
// persistence fails is lost and reported as a failure, never retried.
func (s *chatService) PostMessage(ctx context.Context, req *PostMessageRequest) (*domain.ChatMessage, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.SessionID, validation.Required),
		validation.Field(&req.Message, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Ownership check doubles as the existence check
	if _, err := s.chatRepo.GetSession(ctx, req.SessionID, req.UserID); err != nil {
		return nil, err
	}

	history, err := s.contextWindow(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	receivedAt := time.Now()

	reply, err := s.generator.GenerateChatReply(ctx, req.Message, history)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.ChatMessage{
		SessionID: req.SessionID,
		Sender:    domain.SenderUser,
		Content:   req.Message,
		CreatedAt: receivedAt,
	}
	assistantMsg := &domain.ChatMessage{
		SessionID: req.SessionID,
		Sender:    domain.SenderAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.chatRepo.CreateMessage(txCtx, userMsg); err != nil {
			return err
		}
		if err := s.chatRepo.CreateMessage(txCtx, assistantMsg); err != nil {
			return err
		}
		return s.chatRepo.TouchSession(txCtx, req.SessionID, req.UserID, assistantMsg.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("chat exchange recorded",
		"session_id", req.SessionID,
		"history_lines", len(history),
	)

	return assistantMsg, nil
}

// contextWindow returns the most recent prior messages in chronological
// order, formatted as "sender: content" lines.
func (s *chatService) contextWindow(ctx context.Context, sessionID string) ([]string, error) {
	recent, err := s.chatRepo.ListRecentMessages(ctx, sessionID, contextWindowSize)
	if err != nil {
		return nil, err
	}

	// recent is newest-first; reverse into chronological order
	history := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, fmt.Sprintf("%s: %s", recent[i].Sender, recent[i].Content))
	}

	return history, nil
}
