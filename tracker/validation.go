package tracker

import (
	"errors"
	"fmt"

	internalstrings "github.com/tasktrack/tasktrack/internal/strings"
)

// ErrEmptyTitle indicates a task title with no visible characters.
var ErrEmptyTitle = errors.New("task title cannot be empty")

// ValidateTitle checks that a title is non-empty and within bounds.
func ValidateTitle(title string) error {
	if internalstrings.NormalizeWhitespace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("task title exceeds %d characters", MaxTitleLength)
	}
	return nil
}

func normalizeStatusInput(status Status) (Status, error) {
	normalized := Status(internalstrings.NormalizeLowerTrimSpace(string(status)))
	if !normalized.IsValid() {
		return "", fmt.Errorf("invalid status %q (valid: pending, in_progress, completed)", status)
	}
	return normalized, nil
}

func normalizePriorityInput(priority Priority) (Priority, error) {
	normalized := Priority(internalstrings.NormalizeLowerTrimSpace(string(priority)))
	if !normalized.IsValid() {
		return "", fmt.Errorf("invalid priority %q (valid: high, medium, low)", priority)
	}
	return normalized, nil
}
