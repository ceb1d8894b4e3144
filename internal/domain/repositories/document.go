package repositories

import (
	"context"

	"lexgenie/internal/domain"
)

// DocumentFilter narrows document listings. Unfiled and FolderID are
// mutually exclusive: Unfiled selects documents with no folder reference,
// FolderID selects members of one folder, neither selects everything.
type DocumentFilter struct {
	FolderID string
	Unfiled  bool
}

// DocumentRepository provides owner-scoped access to documents.
// Every read and write carries the owner's user ID in its predicate.
type DocumentRepository interface {
	// Create inserts a new document and fills in the generated ID and timestamps.
	Create(ctx context.Context, doc *domain.Document) error

	// GetByID retrieves a document owned by userID, or domain.ErrNotFound.
	GetByID(ctx context.Context, id, userID string) (*domain.Document, error)

	// List returns the owner's documents newest-first, narrowed by filter.
	List(ctx context.Context, userID string, filter DocumentFilter) ([]domain.Document, error)

	// Update writes all mutable columns of doc. Returns domain.ErrNotFound
	// if no row matches the id+owner pair.
	Update(ctx context.Context, doc *domain.Document) error

	// Delete removes the document. Returns domain.ErrNotFound if no row matched.
	Delete(ctx context.Context, id, userID string) error

	// ClearFolder sets folder_id to NULL on every owned document currently
	// referencing folderID. Used by folder deletion.
	ClearFolder(ctx context.Context, folderID, userID string) error
}
