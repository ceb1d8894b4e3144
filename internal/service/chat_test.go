package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexgenie/internal/domain"
)

func newTestChatService(repo *fakeChatRepo, gen *stubGenerator, tx *fakeTxManager) ChatService {
	return NewChatService(repo, gen, tx, slog.New(slog.DiscardHandler))
}

func TestCreateSession(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestChatService(repo, &stubGenerator{}, &fakeTxManager{})

	session, err := svc.CreateSession(context.Background(), &CreateSessionRequest{
		UserID: "user-1",
		Title:  "Lease questions",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lease questions", session.Title)
	assert.NotEmpty(t, session.ID)
}

func TestCreateSessionDefaultTitle(t *testing.T) {
	svc := newTestChatService(newFakeChatRepo(), &stubGenerator{}, &fakeTxManager{})

	session, err := svc.CreateSession(context.Background(), &CreateSessionRequest{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionTitle, session.Title)
}

func TestCreateSessionValidation(t *testing.T) {
	svc := newTestChatService(newFakeChatRepo(), &stubGenerator{}, &fakeTxManager{})

	_, err := svc.CreateSession(context.Background(), &CreateSessionRequest{Title: "no owner"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPostMessage(t *testing.T) {
	repo := newFakeChatRepo()
	gen := &stubGenerator{replyText: "Generally, yes, but consult a local attorney."}
	tx := &fakeTxManager{}
	svc := newTestChatService(repo, gen, tx)

	session := &domain.ChatSession{UserID: "user-1", Title: "Test"}
	require.NoError(t, repo.CreateSession(context.Background(), session))

	reply, err := svc.PostMessage(context.Background(), &PostMessageRequest{
		UserID:    "user-1",
		SessionID: session.ID,
		Message:   "Can a landlord raise rent mid-lease?",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SenderAssistant, reply.Sender)
	assert.Equal(t, gen.replyText, reply.Content)
	assert.Equal(t, "Can a landlord raise rent mid-lease?", gen.lastMessage)
	assert.Empty(t, gen.lastHistory, "first message has no prior context")

	persisted := repo.messages[session.ID]
	require.Len(t, persisted, 2)
	assert.Equal(t, domain.SenderUser, persisted[0].Sender)
	assert.Equal(t, domain.SenderAssistant, persisted[1].Sender)
	assert.False(t, persisted[1].CreatedAt.Before(persisted[0].CreatedAt))

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 2, repo.messagesInTx, "both messages must persist inside the transaction")
	assert.True(t, repo.touchInTx, "activity bump must persist inside the transaction")
	assert.Equal(t, reply.CreatedAt, repo.sessions[0].UpdatedAt)
}

func TestPostMessageContextWindow(t *testing.T) {
	repo := newFakeChatRepo()
	gen := &stubGenerator{replyText: "reply"}
	svc := newTestChatService(repo, gen, &fakeTxManager{})

	session := &domain.ChatSession{UserID: "user-1"}
	require.NoError(t, repo.CreateSession(context.Background(), session))

	// Pre-load 11 prior messages; only the 10 most recent may reach the
	// generator, oldest first.
	for i := 1; i <= 11; i++ {
		msg := &domain.ChatMessage{
			SessionID: session.ID,
			Sender:    domain.SenderUser,
			Content:   fmt.Sprintf("message %d", i),
		}
		require.NoError(t, repo.CreateMessage(context.Background(), msg))
	}

	_, err := svc.PostMessage(context.Background(), &PostMessageRequest{
		UserID:    "user-1",
		SessionID: session.ID,
		Message:   "message 12",
	})
	require.NoError(t, err)

	require.Len(t, gen.lastHistory, 10)
	assert.Equal(t, "user: message 2", gen.lastHistory[0])
	assert.Equal(t, "user: message 11", gen.lastHistory[9])
	assert.NotContains(t, gen.lastHistory, "user: message 12", "the message being answered is never its own context")
}

func TestPostMessageUnknownSession(t *testing.T) {
	gen := &stubGenerator{replyText: "reply"}
	svc := newTestChatService(newFakeChatRepo(), gen, &fakeTxManager{})

	_, err := svc.PostMessage(context.Background(), &PostMessageRequest{
		UserID:    "user-1",
		SessionID: "missing",
		Message:   "hello",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, gen.lastMessage, "no generation call for an invalid session")
}

func TestPostMessageWrongOwner(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestChatService(repo, &stubGenerator{replyText: "reply"}, &fakeTxManager{})

	session := &domain.ChatSession{UserID: "user-1"}
	require.NoError(t, repo.CreateSession(context.Background(), session))

	_, err := svc.PostMessage(context.Background(), &PostMessageRequest{
		UserID:    "user-2",
		SessionID: session.ID,
		Message:   "hello",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostMessageGeneratorFailure(t *testing.T) {
	repo := newFakeChatRepo()
	genErr := &domain.GenerationError{Op: "chat", Err: errors.New("overloaded")}
	svc := newTestChatService(repo, &stubGenerator{err: genErr}, &fakeTxManager{})

	session := &domain.ChatSession{UserID: "user-1"}
	require.NoError(t, repo.CreateSession(context.Background(), session))

	_, err := svc.PostMessage(context.Background(), &PostMessageRequest{
		UserID:    "user-1",
		SessionID: session.ID,
		Message:   "hello",
	})
	require.Error(t, err)

	var ge *domain.GenerationError
	assert.ErrorAs(t, err, &ge)
	assert.Empty(t, repo.messages[session.ID], "a failed exchange persists nothing, not even the user message")
}

func TestPostMessagePersistFailureLosesExchange(t *testing.T) {
	repo := newFakeChatRepo()
	repo.failMessage = errors.New("disk full")
	svc := newTestChatService(repo, &stubGenerator{replyText: "reply"}, &fakeTxManager{})

	session := &domain.ChatSession{UserID: "user-1"}
	require.NoError(t, repo.CreateSession(context.Background(), session))

	_, err := svc.PostMessage(context.Background(), &PostMessageRequest{
		UserID:    "user-1",
		SessionID: session.ID,
		Message:   "hello",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.messages[session.ID])
}

func TestPostMessageValidation(t *testing.T) {
	svc := newTestChatService(newFakeChatRepo(), &stubGenerator{}, &fakeTxManager{})

	tests := []struct {
		name string
		req  PostMessageRequest
	}{
		{name: "missing user", req: PostMessageRequest{SessionID: "s", Message: "m"}},
		{name: "missing session", req: PostMessageRequest{UserID: "u", Message: "m"}},
		{name: "missing message", req: PostMessageRequest{UserID: "u", SessionID: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PostMessage(context.Background(), &tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestListSessions(t *testing.T) {
	repo := newFakeChatRepo()
	svc := newTestChatService(repo, &stubGenerator{}, &fakeTxManager{})

	session := &domain.ChatSession{UserID: "user-1", Title: "A"}
	require.NoError(t, repo.CreateSession(context.Background(), session))
	require.NoError(t, repo.CreateMessage(context.Background(), &domain.ChatMessage{
		SessionID: session.ID,
		Sender:    domain.SenderUser,
		Content:   "hi",
	}))

	sessions, err := svc.ListSessions(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Messages, 1)
	assert.Equal(t, "hi", sessions[0].Messages[0].Content)

	_, err = svc.ListSessions(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
