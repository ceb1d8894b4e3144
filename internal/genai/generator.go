// Package genai wraps the external text-generation API behind a small
// request/response interface: one call produces a full legal document, the
// other a conversational reply. No retries, no streaming - each operation
// is a single blocking round trip.
package genai

import "context"

// Generator produces text from the external generation API.
type Generator interface {
	// GenerateDocument produces a complete legal document for the prompt.
	GenerateDocument(ctx context.Context, prompt string) (string, error)

	// GenerateChatReply produces a conversational reply to message, given
	// prior history lines formatted as "sender: content" in chronological
	// order. History may be empty.
	GenerateChatReply(ctx context.Context, message string, history []string) (string, error)
}
