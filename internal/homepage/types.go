package homepage

import (
	"time"

	"github.com/goliatone/go-sections/internal/storage"
	"github.com/goliatone/go-sections/internal/variants"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Background colours accepted by a homepage section.
const (
	BackgroundWhite = "white"
	BackgroundLight = "light"
	BackgroundDark  = "dark"
)

// Text colours accepted by a homepage section.
const (
	TextDark  = "dark"
	TextLight = "light"
)

// Section is a homepage block of one site. Sections of a site form a single
// ordered list; each owns an ordered list of accordion cards.
type Section struct {
	bun.BaseModel `bun:"table:homepage_sections,alias:hs"`

	ID              uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	SiteKey         string          `bun:"site_key,notnull" json:"site_key"`
	Identifier      string          `bun:"identifier,notnull" json:"identifier"`
	Title           string          `bun:"title,notnull" json:"title"`
	Subtitle        *string         `bun:"subtitle" json:"subtitle,omitempty"`
	Description     *string         `bun:"description" json:"description,omitempty"`
	BackgroundColor string          `bun:"background_color,notnull" json:"background_color"`
	TextColor       string          `bun:"text_color,notnull" json:"text_color"`
	BackgroundImage *string         `bun:"background_image" json:"background_image,omitempty"`
	SortOrder       int             `bun:"sort_order,notnull" json:"sort_order"`
	Active          bool            `bun:"active,notnull,default:true" json:"active"`
	Revision        int64           `bun:"revision,notnull,default:1" json:"revision"`
	Cards           []variants.Card `bun:"cards,type:jsonb,notnull" json:"cards"`
	CreatedAt       time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Tables lists the storage tables owned by the homepage.
func Tables() []storage.Table {
	return []storage.Table{
		{
			Model: (*Section)(nil),
			Indexes: []storage.Index{
				{Name: "homepage_sections_site_identifier_uidx", Columns: []string{"site_key", "identifier"}, Unique: true},
				{Name: "homepage_sections_site_order_idx", Columns: []string{"site_key", "sort_order"}},
			},
		},
	}
}
