package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"lexgenie/internal/domain"
	"lexgenie/internal/doctype"
)

// Generation parameters tuned for consistent legal prose.
const (
	maxOutputTokens = 8192
	temperature     = 0.3

	// Fixed pre-call delay before document generation, mitigating external
	// rate limits on long-form requests.
	documentCallDelay = 1 * time.Second
)

// AnthropicGenerator implements Generator against the Anthropic Messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  string
	rules  *doctype.Registry
	logger *slog.Logger
	// delay is a field so tests don't sleep
	delay time.Duration
}

// NewAnthropicGenerator creates a generator with the given API key and model.
func NewAnthropicGenerator(apiKey, model string, rules *doctype.Registry, logger *slog.Logger) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicGenerator{
		client: &client,
		model:  model,
		rules:  rules,
		logger: logger,
		delay:  documentCallDelay,
	}, nil
}

// GenerateDocument produces a complete legal document for the prompt.
func (g *AnthropicGenerator) GenerateDocument(ctx context.Context, prompt string) (string, error) {
	// Spread long-form requests out to stay under external rate limits
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return "", &domain.GenerationError{Op: "document", Err: ctx.Err()}
	}

	text, err := g.complete(ctx, g.rules.DocumentPreamble(prompt))
	if err != nil {
		g.logger.Error("document generation failed", "error", err)
		return "", &domain.GenerationError{Op: "document", Err: err}
	}

	g.logger.Debug("document generated", "length", len(text))
	return text, nil
}

// GenerateChatReply produces a conversational reply, prefixing the joined
// history block when any prior messages exist.
func (g *AnthropicGenerator) GenerateChatReply(ctx context.Context, message string, history []string) (string, error) {
	var b strings.Builder
	b.WriteString(g.rules.ChatPreamble())
	b.WriteString("\n")

	if len(history) > 0 {
		b.WriteString("Previous conversation context:\n")
		b.WriteString(strings.Join(history, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString("User question: ")
	b.WriteString(message)
	b.WriteString("\n\nProvide a helpful legal information response:")

	text, err := g.complete(ctx, b.String())
	if err != nil {
		g.logger.Error("chat reply generation failed", "error", err)
		return "", &domain.GenerationError{Op: "chat", Err: err}
	}

	return text, nil
}

// complete performs one blocking Messages round trip and concatenates the
// text blocks of the response.
func (g *AnthropicGenerator) complete(ctx context.Context, prompt string) (string, error) {
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   maxOutputTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from model %s", g.model)
	}

	return b.String(), nil
}
