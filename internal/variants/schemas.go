package variants

import (
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/validation"
)

// Defaulted enums may be omitted; an explicit empty string is rejected.
const (
	styleEnum    = `{"type": "string", "enum": ["primary", "secondary"]}`
	linkTypeEnum = `{"type": "string", "enum": ["internal", "external"]}`
	alignEnum    = `{"type": "string", "enum": ["left", "right"]}`
)

const tripleSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "title": {"type": "string"},
          "content": {"type": "string"}
        }
      }
    }
  }
}`

const textImageSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string"},
    "content": {"type": "string"},
    "imageUrl": {"type": "string"},
    "imageAlt": {"type": "string"},
    "imageAlign": ` + alignEnum + `,
    "buttons": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "text": {"type": "string"},
          "link": {"type": "string"},
          "linkType": ` + linkTypeEnum + `,
          "style": ` + styleEnum + `
        }
      }
    }
  }
}`

const blackCTASchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string"},
    "content": {"type": "string"},
    "imageUrl": {"type": "string"},
    "buttons": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "text": {"type": "string"},
          "link": {"type": "string"},
          "style": ` + styleEnum + `
        }
      }
    }
  }
}`

const numbersSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "stats": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "number": {"type": "string"},
          "title": {"type": "string"}
        }
      }
    }
  }
}`

const cardSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string"},
    "content": {"type": "string"},
    "linkUrl": {"type": "string"},
    "linkText": {"type": "string"},
    "style": ` + styleEnum + `
  }
}`

const accordionSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "cards": {"type": "array", "items": ` + cardSchema + `}
  }
}`

var schemas = map[domain.SectionType]*validation.Schema{
	domain.SectionTriple:    validation.MustCompile(string(domain.SectionTriple), tripleSchema),
	domain.SectionTextImage: validation.MustCompile(string(domain.SectionTextImage), textImageSchema),
	domain.SectionBlackCTA:  validation.MustCompile(string(domain.SectionBlackCTA), blackCTASchema),
	domain.SectionNumbers:   validation.MustCompile(string(domain.SectionNumbers), numbersSchema),
	domain.SectionAccordion: validation.MustCompile(string(domain.SectionAccordion), accordionSchema),
}

// Schema returns the payload schema registered for sectionType.
func Schema(sectionType domain.SectionType) (*validation.Schema, bool) {
	schema, ok := schemas[sectionType]
	return schema, ok
}
