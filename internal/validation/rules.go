package validation

import (
	"errors"
	"sort"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sections/internal/domain"
)

// FromRules converts ozzo-validation failures into a domain ValidationError.
// Nested field errors are flattened into JSON pointer style locations.
func FromRules(resource string, err error) error {
	if err == nil {
		return nil
	}
	var internal ozzo.InternalError
	if errors.As(err, &internal) {
		return err
	}
	issues := flattenRuleErrors("#", err)
	if len(issues) == 0 {
		return nil
	}
	return &domain.ValidationError{Resource: resource, Issues: issues}
}

func flattenRuleErrors(prefix string, err error) []domain.Issue {
	var fieldErrs ozzo.Errors
	if !errors.As(err, &fieldErrs) {
		return []domain.Issue{{Location: prefix, Message: err.Error()}}
	}
	keys := make([]string, 0, len(fieldErrs))
	for key := range fieldErrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	issues := make([]domain.Issue, 0, len(keys))
	for _, key := range keys {
		nested := fieldErrs[key]
		if nested == nil {
			continue
		}
		issues = append(issues, flattenRuleErrors(prefix+"/"+key, nested)...)
	}
	return issues
}
