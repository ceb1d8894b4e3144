package handler

import (
	"log/slog"
	"net/http"
	"time"

	"lexgenie/internal/httputil"
	"lexgenie/internal/service"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService service.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService service.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// ListDocuments lists the owner's documents, optionally narrowed by folder
// and a search term
// GET /documents?userId=...&folderId=...&search=...
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}
	if err := requireOwner(r, userID); err != nil {
		handleError(w, h.logger, err, "Failed to fetch documents")
		return
	}

	folderID := r.URL.Query().Get("folderId")
	search := r.URL.Query().Get("search")

	documents, err := h.docService.List(r.Context(), userID, folderID, search)
	if err != nil {
		handleError(w, h.logger, err, "Failed to fetch documents")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"documents": documents,
	})
}

// GetDocument retrieves one document
// GET /documents/{id}?userId=...
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}
	if err := requireOwner(r, userID); err != nil {
		handleError(w, h.logger, err, "Failed to fetch document")
		return
	}

	doc, err := h.docService.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err, "Failed to fetch document")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"document": doc,
	})
}

// UpdateDocument applies a partial-field update
// PUT /documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing userId")
		return
	}
	if err := requireOwner(r, req.UserID); err != nil {
		handleError(w, h.logger, err, "Failed to update document")
		return
	}

	doc, err := h.docService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err, "Failed to update document")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"document": doc,
	})
}

// DeleteDocument removes a document
// DELETE /documents/{id}?userId=...
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}
	if err := requireOwner(r, userID); err != nil {
		handleError(w, h.logger, err, "Failed to delete document")
		return
	}

	if err := h.docService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		handleError(w, h.logger, err, "Failed to delete document")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Document deleted successfully",
	})
}

// GenerateDocument generates and persists a new document from a prompt
// POST /generate/document
func (h *DocumentHandler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" || req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing required fields: prompt and userId")
		return
	}
	if err := requireOwner(r, req.UserID); err != nil {
		handleError(w, h.logger, err, "Failed to generate document")
		return
	}

	doc, err := h.docService.Generate(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err, "Failed to generate document")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"document": doc,
	})
}

// HealthCheck is a simple liveness endpoint
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
