package homepage

import (
	"context"
	"database/sql"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-sections/internal/ordering"
	"github.com/goliatone/go-sections/internal/storage"
	"github.com/goliatone/go-sections/internal/variants"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var contentColumns = []string{
	"title",
	"subtitle",
	"description",
	"background_color",
	"text_color",
	"background_image",
	"cards",
	"revision",
	"updated_at",
}

// BunRepository implements Repository on top of bun.
type BunRepository struct {
	db       *bun.DB
	sections repository.Repository[*Section]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:       db,
		sections: NewSectionRepository(db),
	}
}

func (r *BunRepository) Create(ctx context.Context, section *Section) (*Section, error) {
	record := cloneSection(section)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().
			Model((*Section)(nil)).
			Where("?TableAlias.site_key = ?", record.SiteKey).
			Count(ctx)
		if err != nil {
			return err
		}
		record.SortOrder = count
		_, err = tx.NewInsert().Model(record).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, storage.MapError("homepage_sections.create", resourceSection, record.SiteKey+"/"+record.Identifier, err)
	}
	return r.Get(ctx, record.SiteKey, record.ID)
}

func (r *BunRepository) Get(ctx context.Context, site string, id uuid.UUID) (*Section, error) {
	return r.first(ctx, "homepage_sections.get", id.String(), func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id).Where("?TableAlias.site_key = ?", site)
	})
}

func (r *BunRepository) GetByIdentifier(ctx context.Context, site, identifier string) (*Section, error) {
	return r.first(ctx, "homepage_sections.get_by_identifier", identifier, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.identifier = ?", identifier).Where("?TableAlias.site_key = ?", site)
	})
}

func (r *BunRepository) first(ctx context.Context, op, key string, filter func(*bun.SelectQuery) *bun.SelectQuery) (*Section, error) {
	records, _, err := r.sections.List(ctx,
		repository.SelectRawProcessor(filter),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, storage.MapError(op, resourceSection, key, err)
	}
	if len(records) == 0 {
		return nil, sectionNotFound(key)
	}
	return normalizeRecord(records[0]), nil
}

func (r *BunRepository) List(ctx context.Context, site string) ([]*Section, error) {
	var records []*Section
	if err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.site_key = ?", site).
		Order("sort_order ASC").
		Scan(ctx); err != nil {
		return nil, storage.MapError("homepage_sections.list", resourceSection, site, err)
	}
	for i := range records {
		records[i] = normalizeRecord(records[i])
	}
	return records, nil
}

func (r *BunRepository) Update(ctx context.Context, section *Section, expectedRevision int64, writeActive bool) (*Section, error) {
	record := cloneSection(section)
	record.Revision = expectedRevision + 1

	columns := append([]string(nil), contentColumns...)
	if writeActive {
		columns = append(columns, "active")
	}
	res, err := r.db.NewUpdate().
		Model(record).
		Column(columns...).
		Where("id = ?", record.ID).
		Where("site_key = ?", record.SiteKey).
		Where("revision = ?", expectedRevision).
		Exec(ctx)
	if err != nil {
		return nil, storage.MapError("homepage_sections.update", resourceSection, record.ID.String(), err)
	}
	if affected(res) == 0 {
		if _, err := r.Get(ctx, record.SiteKey, record.ID); err != nil {
			return nil, err
		}
		return nil, staleRevision(record.ID.String())
	}
	return r.Get(ctx, record.SiteKey, record.ID)
}

func (r *BunRepository) Delete(ctx context.Context, site string, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*Section)(nil)).
			Where("id = ?", id).
			Where("site_key = ?", site).
			Exec(ctx)
		if err != nil {
			return err
		}
		if affected(res) == 0 {
			return sectionNotFound(id.String())
		}

		var remaining []ordering.Positioned
		if err := tx.NewSelect().
			Model((*Section)(nil)).
			Column("id").
			ColumnExpr("sort_order AS position").
			Where("?TableAlias.site_key = ?", site).
			Scan(ctx, &remaining); err != nil {
			return err
		}
		return applyPositions(ctx, tx, ordering.Compact(remaining))
	})
	return storage.MapError("homepage_sections.delete", resourceSection, id.String(), err)
}

func (r *BunRepository) Reorder(ctx context.Context, site string, order []uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var current []uuid.UUID
		if err := tx.NewSelect().
			Model((*Section)(nil)).
			Column("id").
			Where("?TableAlias.site_key = ?", site).
			Order("sort_order ASC").
			Scan(ctx, &current); err != nil {
			return err
		}
		if err := ordering.Verify(site, current, order); err != nil {
			return err
		}
		moves := make([]ordering.Positioned, len(order))
		for idx, id := range order {
			moves[idx] = ordering.Positioned{ID: id, Position: idx}
		}
		return applyPositions(ctx, tx, moves)
	})
	return storage.MapError("homepage_sections.reorder", resourceSection, site, err)
}

func (r *BunRepository) Toggle(ctx context.Context, site string, id uuid.UUID) (*Section, error) {
	res, err := r.db.NewUpdate().
		Model((*Section)(nil)).
		Set("active = NOT active").
		Where("id = ?", id).
		Where("site_key = ?", site).
		Exec(ctx)
	if err != nil {
		return nil, storage.MapError("homepage_sections.toggle", resourceSection, id.String(), err)
	}
	if affected(res) == 0 {
		return nil, sectionNotFound(id.String())
	}
	return r.Get(ctx, site, id)
}

func applyPositions(ctx context.Context, tx bun.Tx, moves []ordering.Positioned) error {
	for _, move := range moves {
		if _, err := tx.NewUpdate().
			Model((*Section)(nil)).
			Set("sort_order = ?", move.Position).
			Where("id = ?", move.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("update homepage section position: %w", err)
		}
	}
	return nil
}

// normalizeRecord maps a stored null card list to an empty one.
func normalizeRecord(section *Section) *Section {
	if section != nil && section.Cards == nil {
		section.Cards = []variants.Card{}
	}
	return section
}

func affected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
