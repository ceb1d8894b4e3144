package repositories

import (
	"context"

	"lexgenie/internal/domain"
)

// FolderRepository provides owner-scoped access to folders.
type FolderRepository interface {
	// Create inserts a new folder and fills in the generated ID and timestamps.
	Create(ctx context.Context, folder *domain.Folder) error

	// GetByID retrieves a folder owned by userID, or domain.ErrNotFound.
	GetByID(ctx context.Context, id, userID string) (*domain.Folder, error)

	// List returns the owner's folders newest-first, each annotated with a
	// live count of documents referencing it.
	List(ctx context.Context, userID string) ([]domain.Folder, error)

	// Delete removes the folder row. Returns domain.ErrNotFound if no row
	// matched. Callers must unassign member documents first (see
	// DocumentRepository.ClearFolder); both steps belong in one transaction.
	Delete(ctx context.Context, id, userID string) error
}
