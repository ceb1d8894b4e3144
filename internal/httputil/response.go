package httputil

import (
	"encoding/json"
	"net/http"
)

// errorBody is the wire shape for every failure response: an error string
// plus an optional upstream diagnostic.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespondJSON writes a JSON response with the given status code.
// It marshals first so an encoding failure never produces a partial body
// after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes an error response with the given status code.
func RespondError(w http.ResponseWriter, status int, message string) {
	respondErrorBody(w, status, errorBody{Error: message})
}

// RespondErrorDetails writes an error response carrying an upstream
// diagnostic alongside the client-facing message.
func RespondErrorDetails(w http.ResponseWriter, status int, message, details string) {
	respondErrorBody(w, status, errorBody{Error: message, Details: details})
}

func respondErrorBody(w http.ResponseWriter, status int, body errorBody) {
	payload, err := json.Marshal(body)
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
