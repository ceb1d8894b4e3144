// Package doctype infers a document's category from its originating prompt
// and holds the generation prompt templates. Rules live in an embedded YAML
// file so the keyword list stays declarative and ordered.
package doctype

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesFile embed.FS

// Rule maps a set of prompt keywords to a document type. Rules are
// evaluated in file order; the first match wins.
type Rule struct {
	Type     string   `yaml:"type"`
	Keywords []string `yaml:"keywords"`
}

// Prompts holds the generation preambles for the two LLM operations.
type Prompts struct {
	DocumentPreamble string `yaml:"document_preamble"`
	ChatPreamble     string `yaml:"chat_preamble"`
}

type rulesConfig struct {
	DefaultType string  `yaml:"default_type"`
	Rules       []Rule  `yaml:"rules"`
	Prompts     Prompts `yaml:"prompts"`
}

// Registry holds the loaded inference rules and prompt templates.
// It is immutable after NewRegistry and safe for concurrent use.
type Registry struct {
	defaultType string
	rules       []Rule
	prompts     Prompts
}

// NewRegistry loads the embedded rules file.
func NewRegistry() (*Registry, error) {
	data, err := rulesFile.ReadFile("rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("read rules.yaml: %w", err)
	}

	var cfg rulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal rules.yaml: %w", err)
	}

	if cfg.DefaultType == "" {
		return nil, fmt.Errorf("rules.yaml: default_type is required")
	}
	for i, rule := range cfg.Rules {
		if rule.Type == "" || len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("rules.yaml: rule %d needs a type and at least one keyword", i)
		}
	}

	return &Registry{
		defaultType: cfg.DefaultType,
		rules:       cfg.Rules,
		prompts:     cfg.Prompts,
	}, nil
}

// InferType returns the document type for a prompt. Matching is
// case-insensitive substring matching, first rule wins.
func (r *Registry) InferType(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, rule := range r.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Type
			}
		}
	}
	return r.defaultType
}

// DocumentPreamble returns the full document-generation prompt for the
// caller's request text.
func (r *Registry) DocumentPreamble(prompt string) string {
	return fmt.Sprintf(r.prompts.DocumentPreamble, prompt)
}

// ChatPreamble returns the system-style preamble for chat replies.
func (r *Registry) ChatPreamble() string {
	return r.prompts.ChatPreamble
}
