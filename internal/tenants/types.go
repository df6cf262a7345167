package tenants

import (
	"time"

	"github.com/goliatone/go-sections/internal/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Site is one tenant of the registry. Every page and homepage section
// belongs to exactly one site key.
type Site struct {
	bun.BaseModel `bun:"table:sites,alias:s"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key         string    `bun:"key,notnull,unique" json:"key"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description *string   `bun:"description" json:"description,omitempty"`
	IsActive    bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Tables lists the storage tables owned by the registry.
func Tables() []storage.Table {
	return []storage.Table{{Model: (*Site)(nil)}}
}
