package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"lexgenie/internal/domain"
	"lexgenie/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// serve routes the request through a real mux so path values resolve.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// stubDocumentService implements service.DocumentService via function fields.
type stubDocumentService struct {
	list     func(ctx context.Context, userID, folderID, search string) ([]domain.Document, error)
	get      func(ctx context.Context, userID, id string) (*domain.Document, error)
	generate func(ctx context.Context, req *service.GenerateDocumentRequest) (*domain.Document, error)
	update   func(ctx context.Context, id string, req *service.UpdateDocumentRequest) (*domain.Document, error)
	delete   func(ctx context.Context, userID, id string) error
}

func (s *stubDocumentService) List(ctx context.Context, userID, folderID, search string) ([]domain.Document, error) {
	return s.list(ctx, userID, folderID, search)
}

func (s *stubDocumentService) Get(ctx context.Context, userID, id string) (*domain.Document, error) {
	return s.get(ctx, userID, id)
}

func (s *stubDocumentService) Generate(ctx context.Context, req *service.GenerateDocumentRequest) (*domain.Document, error) {
	return s.generate(ctx, req)
}

func (s *stubDocumentService) Update(ctx context.Context, id string, req *service.UpdateDocumentRequest) (*domain.Document, error) {
	return s.update(ctx, id, req)
}

func (s *stubDocumentService) Delete(ctx context.Context, userID, id string) error {
	return s.delete(ctx, userID, id)
}

// stubFolderService implements service.FolderService via function fields.
type stubFolderService struct {
	list   func(ctx context.Context, userID string) ([]domain.Folder, error)
	create func(ctx context.Context, req *service.CreateFolderRequest) (*domain.Folder, error)
	delete func(ctx context.Context, userID, id string) error
}

func (s *stubFolderService) List(ctx context.Context, userID string) ([]domain.Folder, error) {
	return s.list(ctx, userID)
}

func (s *stubFolderService) Create(ctx context.Context, req *service.CreateFolderRequest) (*domain.Folder, error) {
	return s.create(ctx, req)
}

func (s *stubFolderService) Delete(ctx context.Context, userID, id string) error {
	return s.delete(ctx, userID, id)
}

// stubChatService implements service.ChatService via function fields.
type stubChatService struct {
	createSession func(ctx context.Context, req *service.CreateSessionRequest) (*domain.ChatSession, error)
	listSessions  func(ctx context.Context, userID string) ([]domain.ChatSession, error)
	postMessage   func(ctx context.Context, req *service.PostMessageRequest) (*domain.ChatMessage, error)
}

func (s *stubChatService) CreateSession(ctx context.Context, req *service.CreateSessionRequest) (*domain.ChatSession, error) {
	return s.createSession(ctx, req)
}

func (s *stubChatService) ListSessions(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	return s.listSessions(ctx, userID)
}

func (s *stubChatService) PostMessage(ctx context.Context, req *service.PostMessageRequest) (*domain.ChatMessage, error) {
	return s.postMessage(ctx, req)
}

func ptrStr(s string) *string {
	return &s
}
