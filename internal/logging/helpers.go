package logging

import (
	"strings"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

// WithFields attaches fields when logger implements interfaces.FieldsLogger.
// Nil values and blank strings are dropped; the caller's map is not retained.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	kept := make(map[string]any, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case nil:
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				kept[key] = trimmed
			}
		default:
			kept[key] = value
		}
	}
	if len(kept) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(kept)
}

// WithContainerContext tags logger with the site, container kind, and
// container id of an operation.
func WithContainerContext(logger interfaces.Logger, site, container, id string) interfaces.Logger {
	return WithFields(logger, map[string]any{
		fieldSite:        site,
		fieldContainer:   container,
		fieldContainerID: id,
	})
}

// WithOperation tags logger with the operation name and, when set, the
// taxonomy kind of its failure.
func WithOperation(logger interfaces.Logger, operation, errorKind string) interfaces.Logger {
	return WithFields(logger, map[string]any{
		fieldOperation: operation,
		fieldErrorKind: errorKind,
	})
}

// WithRequest tags logger with HTTP request coordinates.
func WithRequest(logger interfaces.Logger, method, path string) interfaces.Logger {
	return WithFields(logger, map[string]any{
		fieldRequestMethod: method,
		fieldRequestPath:   path,
	})
}
