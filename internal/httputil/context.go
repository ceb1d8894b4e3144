package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const authSubjectKey contextKey = "authSubject"

// WithAuthSubject stores the verified token subject on the request context.
func WithAuthSubject(r *http.Request, subject string) *http.Request {
	ctx := context.WithValue(r.Context(), authSubjectKey, subject)
	return r.WithContext(ctx)
}

// GetAuthSubject retrieves the verified token subject, or "" when the
// request was not authenticated (Bearer auth disabled).
func GetAuthSubject(r *http.Request) string {
	subject, _ := r.Context().Value(authSubjectKey).(string)
	return subject
}
