package utils

import (
	"strings"
)

// PreviewLength is the number of leading characters kept in a document preview.
const PreviewLength = 200

// CountWords counts whitespace-delimited non-empty tokens in content.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// MakePreview returns the first PreviewLength characters of content, with
// "..." appended only when content was actually truncated. Content at or
// under the limit is returned unchanged, never with an ellipsis.
func MakePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength]) + "..."
}

// TitleFromPrompt derives a display title from the originating prompt:
// the first six whitespace-split words joined by single spaces, with only
// the first character of the result capitalized.
func TitleFromPrompt(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > 6 {
		words = words[:6]
	}
	title := strings.Join(words, " ")
	if title == "" {
		return ""
	}
	runes := []rune(title)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
