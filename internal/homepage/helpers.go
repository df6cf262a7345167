package homepage

import (
	"sort"
	"strings"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/variants"
	"github.com/google/uuid"
)

const resourceSection = "homepage_section"

func sectionNotFound(key string) error {
	return &domain.NotFoundError{Resource: resourceSection, Key: key}
}

func staleRevision(key string) error {
	return &domain.ConflictError{Resource: resourceSection, Key: key, Reason: domain.ReasonStaleRevision}
}

func duplicateIdentifier(site, identifier string) error {
	return &domain.ConflictError{Resource: resourceSection, Key: site + "/" + identifier, Reason: domain.ReasonDuplicateKey}
}

func cloneSection(section *Section) *Section {
	if section == nil {
		return nil
	}
	cloned := *section
	cloned.Subtitle = cloneString(section.Subtitle)
	cloned.Description = cloneString(section.Description)
	cloned.BackgroundImage = cloneString(section.BackgroundImage)
	cloned.Cards = cloneCards(section.Cards)
	return &cloned
}

func cloneSections(src []*Section) []*Section {
	out := make([]*Section, len(src))
	for i, section := range src {
		out[i] = cloneSection(section)
	}
	return out
}

func cloneCards(cards []variants.Card) []variants.Card {
	out := make([]variants.Card, len(cards))
	copy(out, cards)
	return out
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func optionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func sortSections(sections []*Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})
}

func sectionIDs(sections []*Section) []uuid.UUID {
	ids := make([]uuid.UUID, len(sections))
	for i, section := range sections {
		ids[i] = section.ID
	}
	return ids
}
