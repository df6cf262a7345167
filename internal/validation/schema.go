package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-sections/internal/domain"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid  = errors.New("schema invalid")
	ErrSchemaNotFound = errors.New("schema not registered")
)

// Schema is a compiled JSON schema bound to a resource name used in errors.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// Compile builds a Schema from a JSON schema document.
func Compile(name, document string) (*Schema, error) {
	compiled, err := compileSchema(name, []byte(document))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// MustCompile is Compile for package level schema tables.
func MustCompile(name, document string) *Schema {
	schema, err := Compile(name, document)
	if err != nil {
		panic(err)
	}
	return schema
}

// Name returns the resource name attached to validation failures.
func (s *Schema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Validate checks payload against the schema. The payload is normalised
// through encoding/json first so Go typed slices and maps validate the same
// way as decoded request bodies.
func (s *Schema) Validate(payload any) error {
	if s == nil || s.compiled == nil {
		return ErrSchemaNotFound
	}
	normalized, err := Normalize(payload)
	if err != nil {
		return domain.NewValidationError(s.name, "#", err.Error())
	}
	if err := s.compiled.Validate(normalized); err != nil {
		return &domain.ValidationError{
			Resource: s.name,
			Issues:   Issues(err),
		}
	}
	return nil
}

// Normalize converts payload into the generic JSON value space.
func Normalize(payload any) (any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Issues extracts validation issues from an error.
func Issues(err error) []domain.Issue {
	if err == nil {
		return nil
	}
	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) && domainErr != nil {
		return domainErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []domain.Issue{{Message: err.Error()}}
}

var compileMu sync.Mutex

func compileSchema(name string, document []byte) (*jsonschema.Schema, error) {
	compileMu.Lock()
	defer compileMu.Unlock()

	url := strings.TrimSpace(name)
	if url == "" {
		url = "schema"
	}
	url += ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(document)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

func collectValidationIssues(err *jsonschema.ValidationError) []domain.Issue {
	if err == nil {
		return nil
	}
	issues := []domain.Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			} else if !strings.HasPrefix(location, "#") {
				location = "#" + location
			}
			issues = append(issues, domain.Issue{
				Location: location,
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
