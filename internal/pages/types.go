package pages

import (
	"time"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/storage"
	"github.com/goliatone/go-sections/internal/variants"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is a site scoped container identified by (site_key, slug). It owns an
// ordered list of sections.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID              uuid.UUID `bun:",pk,type:uuid" json:"id"`
	SiteKey         string    `bun:"site_key,notnull" json:"site_key"`
	Slug            string    `bun:"slug,notnull" json:"slug"`
	Title           string    `bun:"title,notnull" json:"title"`
	SEOTitle        *string   `bun:"seo_title" json:"seo_title,omitempty"`
	SEODescription  *string   `bun:"seo_description" json:"seo_description,omitempty"`
	SEOKeywords     *string   `bun:"seo_keywords" json:"seo_keywords,omitempty"`
	HeroTitle       *string   `bun:"hero_title" json:"hero_title,omitempty"`
	HeroSubtitle    *string   `bun:"hero_subtitle" json:"hero_subtitle,omitempty"`
	HeroDescription *string   `bun:"hero_description" json:"hero_description,omitempty"`
	HeroImage       *string   `bun:"hero_image" json:"hero_image,omitempty"`
	HeroButtonText  *string   `bun:"hero_button_text" json:"hero_button_text,omitempty"`
	HeroButtonLink  *string   `bun:"hero_button_link" json:"hero_button_link,omitempty"`
	Active          bool      `bun:"active,notnull,default:true" json:"active"`
	Revision        int64     `bun:"revision,notnull,default:1" json:"revision"`
	CreatedAt       time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Sections []*Section `bun:"-" json:"sections,omitempty"`
}

// Section is one content block of a page. Fields holds the canonical field
// bag for Type; Content is its decoded form and is populated on read.
type Section struct {
	bun.BaseModel `bun:"table:page_sections,alias:ps"`

	ID        uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	PageID    uuid.UUID          `bun:"page_id,notnull,type:uuid" json:"page_id"`
	SiteKey   string             `bun:"site_key,notnull" json:"site_key"`
	Type      domain.SectionType `bun:"type,notnull" json:"type"`
	SortOrder int                `bun:"sort_order,notnull" json:"sort_order"`
	Active    bool               `bun:"active,notnull,default:true" json:"active"`
	Revision  int64              `bun:"revision,notnull,default:1" json:"revision"`
	Fields    map[string]any     `bun:"fields,type:jsonb,notnull" json:"fields"`
	CreatedAt time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Content variants.Fields `bun:"-" json:"-"`
}

// Tables lists the storage tables owned by pages.
func Tables() []storage.Table {
	return []storage.Table{
		{
			Model: (*Page)(nil),
			Indexes: []storage.Index{
				{Name: "pages_site_slug_uidx", Columns: []string{"site_key", "slug"}, Unique: true},
			},
		},
		{
			Model: (*Section)(nil),
			Indexes: []storage.Index{
				{Name: "page_sections_page_order_idx", Columns: []string{"page_id", "sort_order"}},
				{Name: "page_sections_site_idx", Columns: []string{"site_key"}},
			},
		},
	}
}
