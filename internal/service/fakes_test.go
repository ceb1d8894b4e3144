package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lexgenie/internal/domain"
	"lexgenie/internal/domain/repositories"
)

// txMarker marks contexts passed through the fake transaction manager so
// fakes can record whether a call happened inside a transaction.
type txMarkerKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txMarkerKey{}).(bool)
	return v
}

// fakeTxManager runs the function directly, marking the context.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(context.WithValue(ctx, txMarkerKey{}, true))
}

// fakeDocumentRepo is an in-memory DocumentRepository. Listing returns
// documents in reverse insertion order, matching the newest-first contract.
type fakeDocumentRepo struct {
	docs []*domain.Document

	clearFolderInTx bool
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *domain.Document) error {
	doc.ID = uuid.NewString()
	r.docs = append(r.docs, doc)
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id, userID string) (*domain.Document, error) {
	for _, doc := range r.docs {
		if doc.ID == id && doc.UserID == userID {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

func (r *fakeDocumentRepo) List(_ context.Context, userID string, filter repositories.DocumentFilter) ([]domain.Document, error) {
	out := []domain.Document{}
	for i := len(r.docs) - 1; i >= 0; i-- {
		doc := r.docs[i]
		if doc.UserID != userID {
			continue
		}
		if filter.Unfiled && doc.FolderID != nil {
			continue
		}
		if filter.FolderID != "" && (doc.FolderID == nil || *doc.FolderID != filter.FolderID) {
			continue
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *domain.Document) error {
	for i, existing := range r.docs {
		if existing.ID == doc.ID && existing.UserID == doc.UserID {
			copied := *doc
			r.docs[i] = &copied
			return nil
		}
	}
	return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id, userID string) error {
	for i, doc := range r.docs {
		if doc.ID == id && doc.UserID == userID {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

func (r *fakeDocumentRepo) ClearFolder(ctx context.Context, folderID, userID string) error {
	r.clearFolderInTx = inTx(ctx)
	for _, doc := range r.docs {
		if doc.UserID == userID && doc.FolderID != nil && *doc.FolderID == folderID {
			doc.FolderID = nil
		}
	}
	return nil
}

// fakeFolderRepo is an in-memory FolderRepository.
type fakeFolderRepo struct {
	folders []*domain.Folder

	deleteInTx bool
	failDelete error
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *domain.Folder) error {
	folder.ID = uuid.NewString()
	r.folders = append(r.folders, folder)
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id, userID string) (*domain.Folder, error) {
	for _, folder := range r.folders {
		if folder.ID == id && folder.UserID == userID {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

func (r *fakeFolderRepo) List(_ context.Context, userID string) ([]domain.Folder, error) {
	out := []domain.Folder{}
	for i := len(r.folders) - 1; i >= 0; i-- {
		if r.folders[i].UserID == userID {
			out = append(out, *r.folders[i])
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	r.deleteInTx = inTx(ctx)
	if r.failDelete != nil {
		return r.failDelete
	}
	for i, folder := range r.folders {
		if folder.ID == id && folder.UserID == userID {
			r.folders = append(r.folders[:i], r.folders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

// fakeChatRepo is an in-memory ChatRepository.
type fakeChatRepo struct {
	sessions []*domain.ChatSession
	messages map[string][]domain.ChatMessage

	messagesInTx int
	touchInTx    bool
	failMessage  error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{messages: map[string][]domain.ChatMessage{}}
}

func (r *fakeChatRepo) CreateSession(_ context.Context, session *domain.ChatSession) error {
	session.ID = uuid.NewString()
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeChatRepo) GetSession(_ context.Context, id, userID string) (*domain.ChatSession, error) {
	for _, session := range r.sessions {
		if session.ID == id && session.UserID == userID {
			copied := *session
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("chat session %s: %w", id, domain.ErrNotFound)
}

func (r *fakeChatRepo) ListSessions(_ context.Context, userID string) ([]domain.ChatSession, error) {
	out := []domain.ChatSession{}
	for _, session := range r.sessions {
		if session.UserID != userID {
			continue
		}
		copied := *session
		copied.Messages = append([]domain.ChatMessage{}, r.messages[session.ID]...)
		out = append(out, copied)
	}
	return out, nil
}

func (r *fakeChatRepo) TouchSession(ctx context.Context, id, userID string, at time.Time) error {
	r.touchInTx = inTx(ctx)
	for _, session := range r.sessions {
		if session.ID == id && session.UserID == userID {
			session.UpdatedAt = at
			return nil
		}
	}
	return fmt.Errorf("chat session %s: %w", id, domain.ErrNotFound)
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if inTx(ctx) {
		r.messagesInTx++
	}
	if r.failMessage != nil {
		return r.failMessage
	}
	msg.ID = uuid.NewString()
	r.messages[msg.SessionID] = append(r.messages[msg.SessionID], *msg)
	return nil
}

func (r *fakeChatRepo) ListRecentMessages(_ context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	all := r.messages[sessionID]
	out := []domain.ChatMessage{}
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// stubGenerator returns canned text and records what it was asked.
type stubGenerator struct {
	documentText string
	replyText    string
	err          error

	lastPrompt  string
	lastMessage string
	lastHistory []string
}

func (g *stubGenerator) GenerateDocument(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.documentText, nil
}

func (g *stubGenerator) GenerateChatReply(_ context.Context, message string, history []string) (string, error) {
	g.lastMessage = message
	g.lastHistory = append([]string{}, history...)
	if g.err != nil {
		return "", g.err
	}
	return g.replyText, nil
}
