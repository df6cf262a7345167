package homepage

import (
	"context"
	"sync"

	"github.com/goliatone/go-sections/internal/ordering"
	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	sections map[uuid.UUID]*Section
	byKey    map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory homepage repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		sections: make(map[uuid.UUID]*Section),
		byKey:    make(map[string]uuid.UUID),
	}
}

func identifierKey(site, identifier string) string {
	return site + "\x00" + identifier
}

func (m *memoryRepository) Create(_ context.Context, section *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := identifierKey(section.SiteKey, section.Identifier)
	if _, exists := m.byKey[key]; exists {
		return nil, duplicateIdentifier(section.SiteKey, section.Identifier)
	}
	if _, exists := m.sections[section.ID]; exists {
		return nil, duplicateIdentifier(section.SiteKey, section.Identifier)
	}
	cloned := cloneSection(section)
	cloned.SortOrder = len(m.listLocked(section.SiteKey))
	m.sections[cloned.ID] = cloned
	m.byKey[key] = cloned.ID
	return cloneSection(cloned), nil
}

func (m *memoryRepository) Get(_ context.Context, site string, id uuid.UUID) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	section, ok := m.getLocked(site, id)
	if !ok {
		return nil, sectionNotFound(id.String())
	}
	return cloneSection(section), nil
}

func (m *memoryRepository) GetByIdentifier(_ context.Context, site, identifier string) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byKey[identifierKey(site, identifier)]
	if !ok {
		return nil, sectionNotFound(identifier)
	}
	return cloneSection(m.sections[id]), nil
}

func (m *memoryRepository) List(_ context.Context, site string) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneSections(m.listLocked(site)), nil
}

func (m *memoryRepository) Update(_ context.Context, section *Section, expectedRevision int64, writeActive bool) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.getLocked(section.SiteKey, section.ID)
	if !ok {
		return nil, sectionNotFound(section.ID.String())
	}
	if existing.Revision != expectedRevision {
		return nil, staleRevision(section.ID.String())
	}
	existing.Title = section.Title
	existing.Subtitle = cloneString(section.Subtitle)
	existing.Description = cloneString(section.Description)
	existing.BackgroundColor = section.BackgroundColor
	existing.TextColor = section.TextColor
	existing.BackgroundImage = cloneString(section.BackgroundImage)
	if writeActive {
		existing.Active = section.Active
	}
	existing.Cards = cloneCards(section.Cards)
	existing.UpdatedAt = section.UpdatedAt
	existing.Revision = expectedRevision + 1
	return cloneSection(existing), nil
}

func (m *memoryRepository) Delete(_ context.Context, site string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	section, ok := m.getLocked(site, id)
	if !ok {
		return sectionNotFound(id.String())
	}
	delete(m.byKey, identifierKey(section.SiteKey, section.Identifier))
	delete(m.sections, id)

	remaining := m.listLocked(site)
	positions := make([]ordering.Positioned, len(remaining))
	for i, item := range remaining {
		positions[i] = ordering.Positioned{ID: item.ID, Position: item.SortOrder}
	}
	for _, moved := range ordering.Compact(positions) {
		m.sections[moved.ID].SortOrder = moved.Position
	}
	return nil
}

func (m *memoryRepository) Reorder(_ context.Context, site string, order []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ordering.Verify(site, sectionIDs(m.listLocked(site)), order); err != nil {
		return err
	}
	for idx, id := range order {
		m.sections[id].SortOrder = idx
	}
	return nil
}

func (m *memoryRepository) Toggle(_ context.Context, site string, id uuid.UUID) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	section, ok := m.getLocked(site, id)
	if !ok {
		return nil, sectionNotFound(id.String())
	}
	section.Active = !section.Active
	return cloneSection(section), nil
}

func (m *memoryRepository) getLocked(site string, id uuid.UUID) (*Section, bool) {
	section, ok := m.sections[id]
	if !ok || section.SiteKey != site {
		return nil, false
	}
	return section, true
}

func (m *memoryRepository) listLocked(site string) []*Section {
	out := make([]*Section, 0)
	for _, section := range m.sections {
		if section.SiteKey == site {
			out = append(out, section)
		}
	}
	sortSections(out)
	return out
}
