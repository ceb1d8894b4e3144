package handler

import (
	"log/slog"
	"net/http"

	"lexgenie/internal/httputil"
	"lexgenie/internal/service"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService service.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService service.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// ListFolders lists the owner's folders with live document counts
// GET /folders?userId=...
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}
	if err := requireOwner(r, userID); err != nil {
		handleError(w, h.logger, err, "Failed to fetch folders")
		return
	}

	folders, err := h.folderService.List(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err, "Failed to fetch folders")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"folders": folders,
	})
}

// CreateFolder creates a new folder
// POST /folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing required fields: name and userId")
		return
	}
	if err := requireOwner(r, req.UserID); err != nil {
		handleError(w, h.logger, err, "Failed to create folder")
		return
	}

	folder, err := h.folderService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err, "Failed to create folder")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"folder":  folder,
	})
}

// DeleteFolder unassigns member documents and removes the folder
// DELETE /folders/{id}?userId=...
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}
	if err := requireOwner(r, userID); err != nil {
		handleError(w, h.logger, err, "Failed to delete folder")
		return
	}

	if err := h.folderService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		handleError(w, h.logger, err, "Failed to delete folder")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Folder deleted successfully",
	})
}
