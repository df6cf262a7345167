package sectionscmd

import (
	"context"

	"github.com/goliatone/go-sections/internal/homepage"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/google/uuid"
)

// PageSections is the subset of pages.Service the section commands drive.
type PageSections interface {
	ReorderSections(ctx context.Context, site string, pageID uuid.UUID, order []uuid.UUID) ([]*pages.Section, error)
	ToggleSectionActive(ctx context.Context, site string, pageID, sectionID uuid.UUID) (*pages.Section, error)
	TogglePageActive(ctx context.Context, site string, id uuid.UUID) (*pages.Page, error)
	DeleteSection(ctx context.Context, site string, pageID, sectionID uuid.UUID) error
}

// HomepageOrdering is the subset of homepage.Service the homepage commands drive.
type HomepageOrdering interface {
	Reorder(ctx context.Context, site string, order []uuid.UUID) ([]*homepage.Section, error)
	ToggleActive(ctx context.Context, site string, id uuid.UUID) (*homepage.Section, error)
}

var (
	_ PageSections     = (pages.Service)(nil)
	_ HomepageOrdering = (homepage.Service)(nil)
)
