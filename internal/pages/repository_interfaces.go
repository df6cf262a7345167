package pages

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists pages and their sections. Every call is scoped to a
// site key; rows of other sites behave as if they did not exist.
type Repository interface {
	CreatePage(ctx context.Context, page *Page) (*Page, error)
	GetPage(ctx context.Context, site string, id uuid.UUID) (*Page, error)
	GetPageBySlug(ctx context.Context, site, slug string) (*Page, error)
	ListPages(ctx context.Context, site string) ([]*Page, error)
	// UpdatePage writes content columns when the stored revision equals
	// expectedRevision and stores expectedRevision+1.
	UpdatePage(ctx context.Context, page *Page, expectedRevision int64) (*Page, error)
	// DeletePage removes the page and all of its sections atomically.
	DeletePage(ctx context.Context, site string, id uuid.UUID) error
	// TogglePage flips the active column and writes nothing else.
	TogglePage(ctx context.Context, site string, id uuid.UUID) (*Page, error)

	// CreateSection appends section with sort_order equal to the current
	// section count of its page.
	CreateSection(ctx context.Context, section *Section) (*Section, error)
	GetSection(ctx context.Context, site string, pageID, id uuid.UUID) (*Section, error)
	ListSections(ctx context.Context, site string, pageID uuid.UUID) ([]*Section, error)
	// UpdateSection writes the field bag when the stored revision equals
	// expectedRevision and stores expectedRevision+1. The active column is
	// written only when writeActive is set.
	UpdateSection(ctx context.Context, section *Section, expectedRevision int64, writeActive bool) (*Section, error)
	// DeleteSection removes one section and closes the gap it leaves.
	DeleteSection(ctx context.Context, site string, pageID, id uuid.UUID) error
	// ReorderSections assigns sort_order = index for order. order must hold
	// exactly the page's current section ids.
	ReorderSections(ctx context.Context, site string, pageID uuid.UUID, order []uuid.UUID) error
	ToggleSection(ctx context.Context, site string, pageID, id uuid.UUID) (*Section, error)
}
