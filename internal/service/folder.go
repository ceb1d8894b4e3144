package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lexgenie/internal/domain"
	"lexgenie/internal/domain/repositories"
)

// DefaultFolderColor is used when a folder is created without a color.
const DefaultFolderColor = "#8B5CF6"

// CreateFolderRequest carries the inputs for folder creation.
type CreateFolderRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// FolderService manages owner-scoped folders.
type FolderService interface {
	// List returns the owner's folders newest-first, each with its live
	// document count.
	List(ctx context.Context, userID string) ([]domain.Folder, error)

	// Create makes a new folder. The name is trimmed and must be non-empty;
	// a missing color falls back to DefaultFolderColor.
	Create(ctx context.Context, req *CreateFolderRequest) (*domain.Folder, error)

	// Delete unassigns every member document and removes the folder, both
	// inside one transaction so no intermediate state is ever observable.
	Delete(ctx context.Context, userID, id string) error
}

type folderService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func (s *folderService) List(ctx context.Context, userID string) ([]domain.Folder, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	return s.folderRepo.List(ctx, userID)
}

func (s *folderService) Create(ctx context.Context, req *CreateFolderRequest) (*domain.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	color := req.Color
	if color == "" {
		color = DefaultFolderColor
	}

	now := time.Now()
	folder := &domain.Folder{
		UserID:    req.UserID,
		Name:      req.Name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
	)

	return folder, nil
}

// Delete removes a folder after unassigning its member documents. Both
// phases run in one transaction: either the documents are unfiled and the
// folder is gone, or nothing changed.
func (s *folderService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.ClearFolder(txCtx, id, userID); err != nil {
			return err
		}
		return s.folderRepo.Delete(txCtx, id, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id)

	return nil
}

func (s *folderService) validateCreateRequest(req *CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name, validation.Required),
	)
}
