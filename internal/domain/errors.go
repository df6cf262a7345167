package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors classify every failure surfaced by the section services.
var (
	ErrValidation      = errors.New("sections: validation failed")
	ErrNotFound        = errors.New("sections: not found")
	ErrConflict        = errors.New("sections: conflict")
	ErrReorderMismatch = errors.New("sections: reorder id set mismatch")
	ErrPersistence     = errors.New("sections: persistence failure")
)

// Issue captures a single field level validation failure.
type Issue struct {
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

// ValidationError reports payloads that fail shape, required field, or enum rules.
type ValidationError struct {
	Resource string
	Issues   []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	prefix := ErrValidation.Error()
	if e.Resource != "" {
		prefix = fmt.Sprintf("%s (%s)", prefix, e.Resource)
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError with a single issue.
func NewValidationError(resource, location, message string) *ValidationError {
	return &ValidationError{
		Resource: resource,
		Issues:   []Issue{{Location: location, Message: message}},
	}
}

// NotFoundError is returned when a row does not exist or belongs to another site.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports unique key violations and stale revision writes.
type ConflictError struct {
	Resource string
	Key      string
	Reason   string
}

func (e *ConflictError) Error() string {
	if e == nil {
		return ErrConflict.Error()
	}
	msg := fmt.Sprintf("%s: %s", ErrConflict.Error(), e.Resource)
	if e.Key != "" {
		msg += fmt.Sprintf(" %q", e.Key)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ConflictReasons used across services.
const (
	ReasonDuplicateKey  = "already exists"
	ReasonStaleRevision = "revision mismatch"
)

// ReorderMismatchError lists how a requested order differs from the stored children.
type ReorderMismatchError struct {
	Container  string
	Missing    []uuid.UUID
	Extra      []uuid.UUID
	Duplicates []uuid.UUID
}

func (e *ReorderMismatchError) Error() string {
	if e == nil {
		return ErrReorderMismatch.Error()
	}
	return fmt.Sprintf("%s: container=%s missing=%d extra=%d duplicates=%d",
		ErrReorderMismatch.Error(), e.Container, len(e.Missing), len(e.Extra), len(e.Duplicates))
}

func (e *ReorderMismatchError) Unwrap() error { return ErrReorderMismatch }

// PersistenceError wraps storage failures that are safe for callers to retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return ErrPersistence.Error()
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrPersistence.Error(), e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", ErrPersistence.Error(), e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	if e == nil || e.Err == nil {
		return []error{ErrPersistence}
	}
	return []error{ErrPersistence, e.Err}
}

// Persistence wraps err unless it already belongs to the taxonomy.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsKnown reports whether err carries one of the taxonomy sentinels.
func IsKnown(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrReorderMismatch) ||
		errors.Is(err, ErrPersistence)
}

// Kind returns a stable, lower-case label for err used by logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrReorderMismatch):
		return "reorder_mismatch"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	default:
		return "unknown"
	}
}
