package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lexgenie/internal/doctype"
	"lexgenie/internal/domain"
	"lexgenie/internal/domain/repositories"
	"lexgenie/internal/genai"
	"lexgenie/internal/httputil"
	"lexgenie/internal/utils"
)

// Sentinel folder filter values meaning "documents with no folder",
// distinct from omitting the filter entirely.
const (
	FolderNone      = "null"
	folderUndefined = "undefined"
)

// GenerateDocumentRequest carries the inputs for document generation.
type GenerateDocumentRequest struct {
	UserID   string  `json:"userId"`
	Prompt   string  `json:"prompt"`
	FolderID *string `json:"folderId"`
}

// UpdateDocumentRequest carries a partial-field document update. Only
// fields present in the request are applied.
type UpdateDocumentRequest struct {
	UserID     string                  `json:"userId"`
	Title      *string                 `json:"title"`
	Content    *string                 `json:"content"`
	Status     *string                 `json:"status"`
	IsFavorite *bool                   `json:"isFavorite"`
	Tags       *[]string               `json:"tags"`
	FolderID   httputil.OptionalString `json:"folderId"`
}

// UnmarshalJSON also accepts is_favorite and folder_id, the snake_case keys
// the original web client sends. camelCase wins when both forms appear.
func (r *UpdateDocumentRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateDocumentRequest
	aux := struct {
		*plain
		IsFavoriteSnake *bool                   `json:"is_favorite"`
		FolderIDSnake   httputil.OptionalString `json:"folder_id"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.IsFavorite == nil {
		r.IsFavorite = aux.IsFavoriteSnake
	}
	if !r.FolderID.Present {
		r.FolderID = aux.FolderIDSnake
	}
	return nil
}

// DocumentService manages owner-scoped documents and their derived fields.
type DocumentService interface {
	// List returns the owner's documents newest-first. folderID narrows to
	// one folder, or to unfiled documents when it is the "null" sentinel;
	// empty means no folder filter. search, when non-empty, keeps only
	// documents whose title, type, or tags contain it (case-insensitive).
	List(ctx context.Context, userID, folderID, search string) ([]domain.Document, error)

	// Get returns one owned document or domain.ErrNotFound.
	Get(ctx context.Context, userID, id string) (*domain.Document, error)

	// Generate produces a new document from the prompt via the generation
	// client and persists it with its derived fields.
	Generate(ctx context.Context, req *GenerateDocumentRequest) (*domain.Document, error)

	// Update applies the fields present in req. A content change always
	// recomputes word count and preview together.
	Update(ctx context.Context, id string, req *UpdateDocumentRequest) (*domain.Document, error)

	// Delete removes an owned document; a missing row is an error, not a no-op.
	Delete(ctx context.Context, userID, id string) error
}

type documentService struct {
	docRepo   repositories.DocumentRepository
	generator genai.Generator
	rules     *doctype.Registry
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	generator genai.Generator,
	rules *doctype.Registry,
	logger *slog.Logger,
) DocumentService {
	return &documentService{
		docRepo:   docRepo,
		generator: generator,
		rules:     rules,
		logger:    logger,
	}
}

func (s *documentService) List(ctx context.Context, userID, folderID, search string) ([]domain.Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	var filter repositories.DocumentFilter
	switch folderID {
	case "":
		// no folder filter
	case FolderNone, folderUndefined:
		filter.Unfiled = true
	default:
		filter.FolderID = folderID
	}

	documents, err := s.docRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	if search != "" {
		documents = filterDocuments(documents, search)
	}

	return documents, nil
}

// filterDocuments keeps documents whose title, type, or any tag contains
// the term, case-insensitively.
func filterDocuments(documents []domain.Document, term string) []domain.Document {
	lower := strings.ToLower(term)
	filtered := make([]domain.Document, 0, len(documents))
	for _, doc := range documents {
		if strings.Contains(strings.ToLower(doc.Title), lower) ||
			strings.Contains(strings.ToLower(doc.Type), lower) ||
			tagsMatch(doc.Tags, lower) {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

func tagsMatch(tags []string, lower string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), lower) {
			return true
		}
	}
	return false
}

func (s *documentService) Get(ctx context.Context, userID, id string) (*domain.Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	return s.docRepo.GetByID(ctx, id, userID)
}

func (s *documentService) Generate(ctx context.Context, req *GenerateDocumentRequest) (*domain.Document, error) {
	if err := s.validateGenerateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	content, err := s.generator.GenerateDocument(ctx, req.Prompt)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &domain.Document{
		UserID:     req.UserID,
		FolderID:   normalizeFolderID(req.FolderID),
		Title:      utils.TitleFromPrompt(req.Prompt),
		Type:       s.rules.InferType(req.Prompt),
		Content:    content,
		Prompt:     req.Prompt,
		Status:     domain.StatusCompleted,
		IsFavorite: false,
		Tags:       []string{},
		WordCount:  utils.CountWords(content),
		Preview:    utils.MakePreview(content),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document generated",
		"id", doc.ID,
		"type", doc.Type,
		"word_count", doc.WordCount,
		"folder_id", doc.FolderID,
	)

	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id string, req *UpdateDocumentRequest) (*domain.Document, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc, err := s.docRepo.GetByID(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Content != nil {
		// Derived fields travel with content as a package - never one
		// without the other
		doc.Content = *req.Content
		doc.WordCount = utils.CountWords(*req.Content)
		doc.Preview = utils.MakePreview(*req.Content)
	}
	if req.Status != nil {
		doc.Status = *req.Status
	}
	if req.IsFavorite != nil {
		doc.IsFavorite = *req.IsFavorite
	}
	if req.Tags != nil {
		doc.Tags = *req.Tags
		if doc.Tags == nil {
			doc.Tags = []string{}
		}
	}
	if req.FolderID.Present {
		doc.FolderID = req.FolderID.Value
	}

	doc.UpdatedAt = time.Now()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "id", doc.ID)

	// A folder move invalidates the embedded folder summary; reread so the
	// response carries the new folder, not the old one
	if req.FolderID.Present {
		return s.docRepo.GetByID(ctx, doc.ID, req.UserID)
	}

	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	if err := s.docRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id)

	return nil
}

func (s *documentService) validateGenerateRequest(req *GenerateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Prompt, validation.Required),
	)
}

func (s *documentService) validateUpdateRequest(req *UpdateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		// In alone treats an empty string as valid; NilOrNotEmpty closes
		// that gap while still allowing the field to be absent
		validation.Field(&req.Status,
			validation.NilOrNotEmpty,
			validation.In(domain.StatusCompleted, domain.StatusDraft, domain.StatusArchived),
		),
	)
}

// normalizeFolderID maps empty and sentinel values to nil so unfiled
// documents always store NULL, never an empty reference.
func normalizeFolderID(folderID *string) *string {
	if folderID == nil {
		return nil
	}
	switch *folderID {
	case "", FolderNone, folderUndefined:
		return nil
	}
	return folderID
}
