package variants

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/validation"
)

// Decode turns a raw field bag into the typed fields of sectionType.
// Unknown keys, wrong element shapes, and illegal enum values are rejected.
// Absent style, linkType, and imageAlign values receive their defaults.
func Decode(sectionType domain.SectionType, payload map[string]any) (Fields, error) {
	fields, ok := newFields(sectionType)
	if !ok {
		return nil, unknownType(sectionType)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	schema, _ := Schema(sectionType)
	if err := schema.Validate(payload); err != nil {
		return nil, err
	}
	if err := decodeStrict(payload, fields); err != nil {
		return nil, domain.NewValidationError(string(sectionType), "#", err.Error())
	}
	fields.normalize()
	fields.applyDefaults()
	if err := validation.FromRules(string(sectionType), fields.Validate()); err != nil {
		return nil, err
	}
	return fields, nil
}

// Encode renders fields as a canonical field bag with every key present.
func Encode(fields Fields) (map[string]any, error) {
	if fields == nil {
		return nil, domain.NewValidationError("section", "#", "fields are required")
	}
	clone, err := cloneFields(fields)
	if err != nil {
		return nil, err
	}
	clone.normalize()
	raw, err := json.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("encode %s fields: %w", fields.Type(), err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode %s fields: %w", fields.Type(), err)
	}
	return out, nil
}

// Defaults returns the field values a freshly added section starts with.
func Defaults(sectionType domain.SectionType) (Fields, error) {
	switch sectionType {
	case domain.SectionTriple:
		return &Triple{Items: []TripleItem{{}, {}, {}}}, nil
	case domain.SectionTextImage:
		return &TextImage{ImageAlign: AlignLeft, Buttons: []LinkButton{}}, nil
	case domain.SectionBlackCTA:
		return &BlackCTA{Title: DefaultCTATitle, Buttons: []Button{}}, nil
	case domain.SectionNumbers:
		return &Numbers{Stats: []Stat{}}, nil
	case domain.SectionAccordion:
		return &Accordion{Cards: []Card{}}, nil
	default:
		return nil, unknownType(sectionType)
	}
}

// Merge replaces the top level keys of current with those present in partial
// and decodes the result. Neither input is modified.
func Merge(sectionType domain.SectionType, current, partial map[string]any) (Fields, error) {
	merged := make(map[string]any, len(current)+len(partial))
	maps.Copy(merged, current)
	maps.Copy(merged, partial)
	return Decode(sectionType, merged)
}

// Initial builds the fields for a new section: defaults overlaid with the
// caller supplied keys.
func Initial(sectionType domain.SectionType, initial map[string]any) (Fields, error) {
	defaults, err := Defaults(sectionType)
	if err != nil {
		return nil, err
	}
	base, err := Encode(defaults)
	if err != nil {
		return nil, err
	}
	return Merge(sectionType, base, initial)
}

func decodeStrict(payload map[string]any, target Fields) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func cloneFields(fields Fields) (Fields, error) {
	target, ok := newFields(fields.Type())
	if !ok {
		return nil, unknownType(fields.Type())
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, err
	}
	return target, nil
}

func unknownType(sectionType domain.SectionType) error {
	return domain.NewValidationError("section", "#/type", fmt.Sprintf("unknown section type %q", sectionType))
}
