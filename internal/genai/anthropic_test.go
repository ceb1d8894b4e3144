package genai

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"lexgenie/internal/doctype"
	"lexgenie/internal/domain"
)

func TestNewAnthropicGeneratorRequiresKey(t *testing.T) {
	registry, err := doctype.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	if _, err := NewAnthropicGenerator("", "claude-haiku-4-5-20251001", registry, slog.New(slog.DiscardHandler)); err == nil {
		t.Fatal("NewAnthropicGenerator() expected error for empty API key")
	}
}

func TestGenerateDocumentCancelledDuringDelay(t *testing.T) {
	registry, err := doctype.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	gen, err := NewAnthropicGenerator("test-key", "claude-haiku-4-5-20251001", registry, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("NewAnthropicGenerator() error: %v", err)
	}
	gen.delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = gen.GenerateDocument(ctx, "draft an nda")
	if err == nil {
		t.Fatal("GenerateDocument() expected error for cancelled context")
	}

	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("GenerateDocument() error = %v, want *domain.GenerationError", err)
	}
	if genErr.Op != "document" {
		t.Errorf("GenerationError.Op = %q, want %q", genErr.Op, "document")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("GenerateDocument() error should wrap context.Canceled, got %v", err)
	}
}
