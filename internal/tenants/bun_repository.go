package tenants

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/goliatone/go-sections/internal/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunSiteRepository implements SiteRepository with optional caching.
type BunSiteRepository struct {
	repo repository.Repository[*Site]
}

// NewBunSiteRepository creates a site repository without caching.
func NewBunSiteRepository(db *bun.DB) *BunSiteRepository {
	return NewBunSiteRepositoryWithCache(db, nil, nil)
}

// NewBunSiteRepositoryWithCache creates a site repository with caching support.
// The registry is read on every request and changes rarely.
func NewBunSiteRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSiteRepository {
	base := NewSiteRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunSiteRepository{repo: base}
}

func (r *BunSiteRepository) Create(ctx context.Context, site *Site) (*Site, error) {
	record, err := r.repo.Create(ctx, site)
	if err != nil {
		return nil, storage.MapError("sites.create", "site", site.Key, err)
	}
	return record, nil
}

func (r *BunSiteRepository) Update(ctx context.Context, site *Site) (*Site, error) {
	updated, err := r.repo.Update(ctx, site,
		repository.UpdateByID(site.ID.String()),
		repository.UpdateColumns(
			"name",
			"description",
			"is_active",
			"updated_at",
		),
	)
	if err != nil {
		return nil, storage.MapError("sites.update", "site", site.Key, err)
	}
	return updated, nil
}

func (r *BunSiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Site, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, storage.MapError("sites.get", "site", id.String(), err)
	}
	return record, nil
}

func (r *BunSiteRepository) GetByKey(ctx context.Context, key string) (*Site, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, storage.MapError("sites.get_by_key", "site", key, err)
	}
	return record, nil
}

func (r *BunSiteRepository) List(ctx context.Context) ([]*Site, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("key ASC")
	}))
	if err != nil {
		return nil, storage.MapError("sites.list", "site", "", err)
	}
	return records, nil
}

func (r *BunSiteRepository) ListActive(ctx context.Context) ([]*Site, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.is_active = ?", true).Order("key ASC")
	}))
	if err != nil {
		return nil, storage.MapError("sites.list_active", "site", "", err)
	}
	return records, nil
}
