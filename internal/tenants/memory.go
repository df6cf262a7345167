package tenants

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/google/uuid"
)

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Site
	byKey map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory site repository.
func NewMemoryRepository() SiteRepository {
	return &memoryRepository{
		byID:  make(map[uuid.UUID]*Site),
		byKey: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, site *Site) (*Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSite(site)
	cloned.Key = NormalizeKey(cloned.Key)
	if _, exists := m.byKey[cloned.Key]; exists {
		return nil, &domain.ConflictError{Resource: "site", Key: cloned.Key, Reason: domain.ReasonDuplicateKey}
	}
	m.byID[cloned.ID] = cloned
	m.byKey[cloned.Key] = cloned.ID
	return cloneSite(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, site *Site) (*Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[site.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "site", Key: site.ID.String()}
	}
	cloned := cloneSite(site)
	// keys are immutable once registered
	cloned.Key = existing.Key
	cloned.CreatedAt = existing.CreatedAt
	m.byID[cloned.ID] = cloned
	return cloneSite(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "site", Key: id.String()}
	}
	return cloneSite(record), nil
}

func (m *memoryRepository) GetByKey(_ context.Context, key string) (*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	normalized := NormalizeKey(key)
	id, ok := m.byKey[normalized]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "site", Key: normalized}
	}
	return cloneSite(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Site, error) {
	return m.list(func(*Site) bool { return true }), nil
}

func (m *memoryRepository) ListActive(_ context.Context) ([]*Site, error) {
	return m.list(func(site *Site) bool { return site.IsActive }), nil
}

func (m *memoryRepository) list(keep func(*Site) bool) []*Site {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Site, 0, len(m.byID))
	for _, record := range m.byID {
		if record == nil || !keep(record) {
			continue
		}
		records = append(records, cloneSite(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key < records[j].Key
	})
	return records
}
