package homepage

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists homepage sections. Every call is scoped to a site key.
type Repository interface {
	// Create appends section with sort_order equal to the site's section count.
	Create(ctx context.Context, section *Section) (*Section, error)
	Get(ctx context.Context, site string, id uuid.UUID) (*Section, error)
	GetByIdentifier(ctx context.Context, site, identifier string) (*Section, error)
	List(ctx context.Context, site string) ([]*Section, error)
	// Update writes content columns and cards when the stored revision equals
	// expectedRevision and stores expectedRevision+1. Identifier and
	// sort_order are never written; active only when writeActive is set.
	Update(ctx context.Context, section *Section, expectedRevision int64, writeActive bool) (*Section, error)
	// Delete removes the section and closes the gap in the site list.
	Delete(ctx context.Context, site string, id uuid.UUID) error
	// Reorder assigns sort_order = index. order must hold exactly the site's
	// current section ids.
	Reorder(ctx context.Context, site string, order []uuid.UUID) error
	Toggle(ctx context.Context, site string, id uuid.UUID) (*Section, error)
}
