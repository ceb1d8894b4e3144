package handler

import (
	"log/slog"
	"net/http"

	"lexgenie/internal/httputil"
	"lexgenie/internal/service"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	chatService service.ChatService
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// ListSessions lists the owner's chat sessions with their messages
// GET /chat/sessions?userId=...
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}
	if err := requireOwner(r, userID); err != nil {
		handleError(w, h.logger, err, "Failed to fetch chat sessions")
		return
	}

	sessions, err := h.chatService.ListSessions(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err, "Failed to fetch chat sessions")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"sessions": sessions,
	})
}

// CreateSession creates a new chat session
// POST /chat/sessions
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSessionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing userId")
		return
	}
	if err := requireOwner(r, req.UserID); err != nil {
		handleError(w, h.logger, err, "Failed to create chat session")
		return
	}

	session, err := h.chatService.CreateSession(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err, "Failed to create chat session")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"session": session,
	})
}

// PostMessage runs one user/assistant exchange and returns the assistant
// message
// POST /chat/message
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req service.PostMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" || req.SessionID == "" || req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing required fields: message, sessionId, and userId")
		return
	}
	if err := requireOwner(r, req.UserID); err != nil {
		handleError(w, h.logger, err, "Failed to process chat message")
		return
	}

	msg, err := h.chatService.PostMessage(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err, "Failed to process chat message")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}
