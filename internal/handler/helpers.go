package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"lexgenie/internal/domain"
	"lexgenie/internal/httputil"
)

// handleError converts domain errors to HTTP responses. The full error is
// logged server-side; non-validation failures surface to the client only
// as the handler's fallback message (plus upstream details for generation
// failures, which callers need for diagnosis).
func handleError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	var genErr *domain.GenerationError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.As(err, &genErr):
		logger.Error(fallback, "error", err)
		httputil.RespondErrorDetails(w, http.StatusInternalServerError, fallback, genErr.Detail())
	default:
		logger.Error(fallback, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, fallback)
	}
}

// requireOwner rejects requests whose verified token subject does not match
// the userId they act on. When Bearer auth is disabled the subject is empty
// and the explicit userId parameter is trusted.
func requireOwner(r *http.Request, userID string) error {
	subject := httputil.GetAuthSubject(r)
	if subject != "" && subject != userID {
		return domain.ErrUnauthorized
	}
	return nil
}
