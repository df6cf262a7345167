package tenants

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewSiteRepository creates a generic repository for site records.
func NewSiteRepository(db *bun.DB) repository.Repository[*Site] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Site]{
		NewRecord: func() *Site { return &Site{} },
		GetID: func(site *Site) uuid.UUID {
			return site.ID
		},
		SetID: func(site *Site, id uuid.UUID) {
			site.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(site *Site) string {
			return site.Key
		},
	})
}
