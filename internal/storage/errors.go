package storage

import (
	"database/sql"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// MapError translates driver and repository failures into the domain
// taxonomy. Errors already classified pass through untouched.
func MapError(op, resource, key string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKnown(err) {
		return err
	}
	if IsNotFound(err) {
		return &domain.NotFoundError{Resource: resource, Key: key}
	}
	if IsUniqueViolation(err) {
		return &domain.ConflictError{Resource: resource, Key: key, Reason: domain.ReasonDuplicateKey}
	}
	return &domain.PersistenceError{Op: op, Err: err}
}

// IsNotFound reports missing rows from bun or go-repository-bun.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	return goerrors.IsCategory(err, repository.CategoryDatabaseNotFound)
}

// IsUniqueViolation recognises unique constraint failures from sqlite and postgres.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
