package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks inputs that do not exist or are not absolute paths.
	ErrNotFound = errors.New("not found")
	// ErrReservedPath marks inputs that target a library control folder.
	ErrReservedPath = errors.New("reserved path")
	// ErrLinkConflict marks destination names that already exist.
	ErrLinkConflict = errors.New("link conflict")
	// ErrValidation marks inputs that fail structural checks.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransient marks recoverable filesystem or storage failures.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error should abort its whole invocation rather
// than be skipped with a log line. Link conflicts and transient failures are
// always recoverable; missing or reserved inputs are not.
func Fatal(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrReservedPath) || errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sorter failure"
	}
	return strings.Join(parts, ": ")
}
