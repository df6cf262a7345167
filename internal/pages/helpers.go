package pages

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/google/uuid"
)

const (
	resourcePage    = "page"
	resourceSection = "page_section"
)

func pageNotFound(key string) error {
	return &domain.NotFoundError{Resource: resourcePage, Key: key}
}

func sectionNotFound(key string) error {
	return &domain.NotFoundError{Resource: resourceSection, Key: key}
}

func staleRevision(resource, key string) error {
	return &domain.ConflictError{Resource: resource, Key: key, Reason: domain.ReasonStaleRevision}
}

func duplicateSlug(site, slug string) error {
	return &domain.ConflictError{Resource: resourcePage, Key: site + "/" + slug, Reason: domain.ReasonDuplicateKey}
}

func clonePage(page *Page) *Page {
	if page == nil {
		return nil
	}
	cloned := *page
	cloned.SEOTitle = cloneString(page.SEOTitle)
	cloned.SEODescription = cloneString(page.SEODescription)
	cloned.SEOKeywords = cloneString(page.SEOKeywords)
	cloned.HeroTitle = cloneString(page.HeroTitle)
	cloned.HeroSubtitle = cloneString(page.HeroSubtitle)
	cloned.HeroDescription = cloneString(page.HeroDescription)
	cloned.HeroImage = cloneString(page.HeroImage)
	cloned.HeroButtonText = cloneString(page.HeroButtonText)
	cloned.HeroButtonLink = cloneString(page.HeroButtonLink)
	if page.Sections != nil {
		cloned.Sections = cloneSections(page.Sections)
	}
	return &cloned
}

func cloneSection(section *Section) *Section {
	if section == nil {
		return nil
	}
	cloned := *section
	cloned.Fields = cloneFieldBag(section.Fields)
	cloned.Content = nil
	return &cloned
}

func cloneSections(src []*Section) []*Section {
	out := make([]*Section, len(src))
	for i, section := range src {
		out[i] = cloneSection(section)
	}
	return out
}

// cloneFieldBag deep copies a JSON shaped map.
func cloneFieldBag(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return src
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return src
	}
	return out
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

// optionalString trims value and maps blanks to nil.
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
