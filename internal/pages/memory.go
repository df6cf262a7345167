package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-sections/internal/ordering"
	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	pages    map[uuid.UUID]*Page
	bySlug   map[string]uuid.UUID
	sections map[uuid.UUID]*Section
}

// NewMemoryRepository constructs an in-memory page repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		pages:    make(map[uuid.UUID]*Page),
		bySlug:   make(map[string]uuid.UUID),
		sections: make(map[uuid.UUID]*Section),
	}
}

func slugKey(site, slug string) string {
	return site + "\x00" + slug
}

func (m *memoryRepository) CreatePage(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := slugKey(page.SiteKey, page.Slug)
	if _, exists := m.bySlug[key]; exists {
		return nil, duplicateSlug(page.SiteKey, page.Slug)
	}
	cloned := clonePage(page)
	cloned.Sections = nil
	m.pages[cloned.ID] = cloned
	m.bySlug[key] = cloned.ID
	return clonePage(cloned), nil
}

func (m *memoryRepository) GetPage(_ context.Context, site string, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page, ok := m.pageLocked(site, id)
	if !ok {
		return nil, pageNotFound(id.String())
	}
	return clonePage(page), nil
}

func (m *memoryRepository) GetPageBySlug(_ context.Context, site, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slugKey(site, slug)]
	if !ok {
		return nil, pageNotFound(slug)
	}
	return clonePage(m.pages[id]), nil
}

func (m *memoryRepository) ListPages(_ context.Context, site string) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Page, 0)
	for _, page := range m.pages {
		if page.SiteKey == site {
			records = append(records, clonePage(page))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Slug < records[j].Slug
	})
	return records, nil
}

func (m *memoryRepository) UpdatePage(_ context.Context, page *Page, expectedRevision int64) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.pageLocked(page.SiteKey, page.ID)
	if !ok {
		return nil, pageNotFound(page.ID.String())
	}
	if existing.Revision != expectedRevision {
		return nil, staleRevision(resourcePage, page.ID.String())
	}
	newKey := slugKey(page.SiteKey, page.Slug)
	oldKey := slugKey(existing.SiteKey, existing.Slug)
	if newKey != oldKey {
		if _, taken := m.bySlug[newKey]; taken {
			return nil, duplicateSlug(page.SiteKey, page.Slug)
		}
	}

	cloned := clonePage(page)
	cloned.Sections = nil
	cloned.Active = existing.Active
	cloned.CreatedAt = existing.CreatedAt
	cloned.Revision = expectedRevision + 1
	m.pages[cloned.ID] = cloned
	if newKey != oldKey {
		delete(m.bySlug, oldKey)
		m.bySlug[newKey] = cloned.ID
	}
	return clonePage(cloned), nil
}

func (m *memoryRepository) DeletePage(_ context.Context, site string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	page, ok := m.pageLocked(site, id)
	if !ok {
		return pageNotFound(id.String())
	}
	for sectionID, section := range m.sections {
		if section.PageID == id {
			delete(m.sections, sectionID)
		}
	}
	delete(m.bySlug, slugKey(page.SiteKey, page.Slug))
	delete(m.pages, id)
	return nil
}

func (m *memoryRepository) TogglePage(_ context.Context, site string, id uuid.UUID) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	page, ok := m.pageLocked(site, id)
	if !ok {
		return nil, pageNotFound(id.String())
	}
	page.Active = !page.Active
	return clonePage(page), nil
}

func (m *memoryRepository) CreateSection(_ context.Context, section *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pageLocked(section.SiteKey, section.PageID); !ok {
		return nil, pageNotFound(section.PageID.String())
	}
	cloned := cloneSection(section)
	cloned.SortOrder = len(m.sectionsLocked(section.SiteKey, section.PageID))
	m.sections[cloned.ID] = cloned
	return cloneSection(cloned), nil
}

func (m *memoryRepository) GetSection(_ context.Context, site string, pageID, id uuid.UUID) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.sectionLocked(site, pageID, id)
	if !ok {
		return nil, sectionNotFound(id.String())
	}
	return cloneSection(section), nil
}

func (m *memoryRepository) ListSections(_ context.Context, site string, pageID uuid.UUID) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneSections(m.sectionsLocked(site, pageID)), nil
}

func (m *memoryRepository) UpdateSection(_ context.Context, section *Section, expectedRevision int64, writeActive bool) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.sectionLocked(section.SiteKey, section.PageID, section.ID)
	if !ok {
		return nil, sectionNotFound(section.ID.String())
	}
	if existing.Revision != expectedRevision {
		return nil, staleRevision(resourceSection, section.ID.String())
	}
	existing.Fields = cloneFieldBag(section.Fields)
	if writeActive {
		existing.Active = section.Active
	}
	existing.UpdatedAt = section.UpdatedAt
	existing.Revision = expectedRevision + 1
	return cloneSection(existing), nil
}

func (m *memoryRepository) DeleteSection(_ context.Context, site string, pageID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sectionLocked(site, pageID, id); !ok {
		return sectionNotFound(id.String())
	}
	delete(m.sections, id)

	remaining := m.sectionsLocked(site, pageID)
	positions := make([]ordering.Positioned, len(remaining))
	for i, section := range remaining {
		positions[i] = ordering.Positioned{ID: section.ID, Position: section.SortOrder}
	}
	for _, moved := range ordering.Compact(positions) {
		m.sections[moved.ID].SortOrder = moved.Position
	}
	return nil
}

func (m *memoryRepository) ReorderSections(_ context.Context, site string, pageID uuid.UUID, order []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := sectionIDs(m.sectionsLocked(site, pageID))
	if err := ordering.Verify(pageID.String(), current, order); err != nil {
		return err
	}
	for idx, id := range order {
		m.sections[id].SortOrder = idx
	}
	return nil
}

func (m *memoryRepository) ToggleSection(_ context.Context, site string, pageID, id uuid.UUID) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	section, ok := m.sectionLocked(site, pageID, id)
	if !ok {
		return nil, sectionNotFound(id.String())
	}
	section.Active = !section.Active
	return cloneSection(section), nil
}

func (m *memoryRepository) pageLocked(site string, id uuid.UUID) (*Page, bool) {
	page, ok := m.pages[id]
	if !ok || page.SiteKey != site {
		return nil, false
	}
	return page, true
}

func (m *memoryRepository) sectionLocked(site string, pageID, id uuid.UUID) (*Section, bool) {
	section, ok := m.sections[id]
	if !ok || section.SiteKey != site || section.PageID != pageID {
		return nil, false
	}
	return section, true
}

// sectionsLocked returns live pointers ordered by sort_order.
func (m *memoryRepository) sectionsLocked(site string, pageID uuid.UUID) []*Section {
	out := make([]*Section, 0)
	for _, section := range m.sections {
		if section.PageID == pageID && section.SiteKey == site {
			out = append(out, section)
		}
	}
	sortSections(out)
	return out
}
