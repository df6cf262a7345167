package domain

import "strings"

// SectionType is the discriminator selecting which field shape a block uses.
type SectionType string

const (
	SectionTriple    SectionType = "triple"
	SectionTextImage SectionType = "text_image"
	SectionBlackCTA  SectionType = "black_cta"
	SectionNumbers   SectionType = "numbers"
	// SectionAccordion is the homepage card list shape. It never appears on
	// page_sections rows.
	SectionAccordion SectionType = "accordion"
)

// PageSectionTypes lists the variants accepted under a Page.
var PageSectionTypes = []SectionType{
	SectionTriple,
	SectionTextImage,
	SectionBlackCTA,
	SectionNumbers,
}

// ParseSectionType normalises raw type tags.
func ParseSectionType(raw string) (SectionType, bool) {
	candidate := SectionType(strings.ToLower(strings.TrimSpace(raw)))
	switch candidate {
	case SectionTriple, SectionTextImage, SectionBlackCTA, SectionNumbers, SectionAccordion:
		return candidate, true
	default:
		return "", false
	}
}

// IsPageSectionType reports whether t can be stored under a Page.
func IsPageSectionType(t SectionType) bool {
	for _, candidate := range PageSectionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}
