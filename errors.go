package sections

import "github.com/goliatone/go-sections/internal/domain"

var (
	ErrValidation      = domain.ErrValidation
	ErrNotFound        = domain.ErrNotFound
	ErrConflict        = domain.ErrConflict
	ErrReorderMismatch = domain.ErrReorderMismatch
	ErrPersistence     = domain.ErrPersistence
)

type (
	Issue                = domain.Issue
	ValidationError      = domain.ValidationError
	NotFoundError        = domain.NotFoundError
	ConflictError        = domain.ConflictError
	ReorderMismatchError = domain.ReorderMismatchError
	PersistenceError     = domain.PersistenceError
)

// ErrorKind returns a stable label for err ("validation", "not_found", ...).
func ErrorKind(err error) string {
	return domain.Kind(err)
}
