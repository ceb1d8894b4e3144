package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"lexgenie/internal/domain"
	"lexgenie/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// documentColumns is the read column list. Reads LEFT JOIN the folder
// table (alias f) so responses can embed the owning folder's summary.
const documentColumns = `d.id, d.user_id, d.folder_id, d.title, d.type, d.content, d.prompt, d.status, d.is_favorite, d.tags, d.word_count, d.preview, d.created_at, d.updated_at, f.name, f.color`

// scanDocument reads one joined row, attaching the folder summary when the
// document is filed and the folder row still exists.
func scanDocument(scan func(dest ...interface{}) error) (*domain.Document, error) {
	var doc domain.Document
	var folderName, folderColor *string
	err := scan(
		&doc.ID,
		&doc.UserID,
		&doc.FolderID,
		&doc.Title,
		&doc.Type,
		&doc.Content,
		&doc.Prompt,
		&doc.Status,
		&doc.IsFavorite,
		&doc.Tags,
		&doc.WordCount,
		&doc.Preview,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&folderName,
		&folderColor,
	)
	if err != nil {
		return nil, err
	}

	if doc.FolderID != nil && folderName != nil && folderColor != nil {
		doc.Folder = &domain.FolderRef{
			ID:    *doc.FolderID,
			Name:  *folderName,
			Color: *folderColor,
		}
	}

	return &doc, nil
}

// Create inserts a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, folder_id, title, type, content, prompt, status, is_favorite, tags, word_count, preview, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.UserID,
		doc.FolderID,
		doc.Title,
		doc.Type,
		doc.Content,
		doc.Prompt,
		doc.Status,
		doc.IsFavorite,
		doc.Tags,
		doc.WordCount,
		doc.Preview,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID. Ownership is part of the lookup
// predicate, so a document owned by someone else is simply not found.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, userID string) (*domain.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s d
		LEFT JOIN %s f ON f.id = d.folder_id AND f.user_id = d.user_id
		WHERE d.id = $1 AND d.user_id = $2
	`, documentColumns, r.tables.Documents, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id, userID).Scan)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// List returns the owner's documents newest-first, optionally narrowed to
// one folder or to unfiled documents only.
func (r *PostgresDocumentRepository) List(ctx context.Context, userID string, filter repositories.DocumentFilter) ([]domain.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s d
		LEFT JOIN %s f ON f.id = d.folder_id AND f.user_id = d.user_id
		WHERE d.user_id = $1
	`, documentColumns, r.tables.Documents, r.tables.Folders)
	args := []interface{}{userID}

	switch {
	case filter.Unfiled:
		query += ` AND d.folder_id IS NULL`
	case filter.FolderID != "":
		query += ` AND d.folder_id = $2`
		args = append(args, filter.FolderID)
	}

	query += ` ORDER BY d.created_at DESC`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	// Return empty slice instead of nil
	if documents == nil {
		documents = []domain.Document{}
	}

	return documents, nil
}

// Update writes all mutable columns of an existing document
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *domain.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, title = $2, content = $3, status = $4, is_favorite = $5, tags = $6, word_count = $7, preview = $8, updated_at = $9
		WHERE id = $10 AND user_id = $11
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.FolderID,
		doc.Title,
		doc.Content,
		doc.Status,
		doc.IsFavorite,
		doc.Tags,
		doc.WordCount,
		doc.Preview,
		doc.UpdatedAt,
		doc.ID,
		doc.UserID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a document row
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ClearFolder unassigns every owned document referencing the folder
func (r *PostgresDocumentRepository) ClearFolder(ctx context.Context, folderID, userID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = NULL
		WHERE folder_id = $1 AND user_id = $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID, userID)
	if err != nil {
		return fmt.Errorf("clear folder reference: %w", err)
	}

	r.logger.Debug("cleared folder references",
		"folder_id", folderID,
		"documents", result.RowsAffected(),
	)

	return nil
}
