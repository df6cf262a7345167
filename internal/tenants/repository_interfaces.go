package tenants

import (
	"context"

	"github.com/google/uuid"
)

// SiteRepository exposes persistence operations for the site registry.
type SiteRepository interface {
	Create(ctx context.Context, site *Site) (*Site, error)
	Update(ctx context.Context, site *Site) (*Site, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Site, error)
	GetByKey(ctx context.Context, key string) (*Site, error)
	List(ctx context.Context) ([]*Site, error)
	ListActive(ctx context.Context) ([]*Site, error)
}
