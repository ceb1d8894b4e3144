package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// GenerationError indicates the external text-generation API failed.
// The upstream message is preserved so handlers can surface it as a
// diagnostic `details` field alongside the generic client-facing error.
type GenerationError struct {
	Op  string // "document" or "chat"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Detail returns the upstream failure message for client diagnostics.
func (e *GenerationError) Detail() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}
