package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"lexgenie/internal/domain"
	"lexgenie/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.UserID,
		folder.Name,
		folder.Color,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID with its live document count
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*domain.Folder, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.user_id, f.name, f.color, f.created_at, f.updated_at,
		       (SELECT COUNT(*) FROM %s d WHERE d.folder_id = f.id AND d.user_id = f.user_id) AS document_count
		FROM %s f
		WHERE f.id = $1 AND f.user_id = $2
	`, r.tables.Documents, r.tables.Folders)

	var folder domain.Folder
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, userID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.Color,
		&folder.CreatedAt,
		&folder.UpdatedAt,
		&folder.DocumentCount,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// List returns the owner's folders newest-first. The document count is a
// correlated subquery against the live documents table, so it cannot drift
// from the actual membership.
func (r *PostgresFolderRepository) List(ctx context.Context, userID string) ([]domain.Folder, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.user_id, f.name, f.color, f.created_at, f.updated_at,
		       (SELECT COUNT(*) FROM %s d WHERE d.folder_id = f.id AND d.user_id = f.user_id) AS document_count
		FROM %s f
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, r.tables.Documents, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []domain.Folder
	for rows.Next() {
		var folder domain.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.Name,
			&folder.Color,
			&folder.CreatedAt,
			&folder.UpdatedAt,
			&folder.DocumentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	// Return empty slice instead of nil
	if folders == nil {
		folders = []domain.Folder{}
	}

	return folders, nil
}

// Delete removes a folder row. Member documents must be unassigned first;
// the service runs both steps in one transaction.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
