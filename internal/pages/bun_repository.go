package pages

import (
	"context"
	"database/sql"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-sections/internal/ordering"
	"github.com/goliatone/go-sections/internal/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var pageContentColumns = []string{
	"slug",
	"title",
	"seo_title",
	"seo_description",
	"seo_keywords",
	"hero_title",
	"hero_subtitle",
	"hero_description",
	"hero_image",
	"hero_button_text",
	"hero_button_link",
	"revision",
	"updated_at",
}

// BunRepository implements Repository on top of bun. Multi row writes run in
// a single transaction.
type BunRepository struct {
	db       *bun.DB
	pages    repository.Repository[*Page]
	sections repository.Repository[*Section]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:       db,
		pages:    NewPageRepository(db),
		sections: NewSectionRepository(db),
	}
}

func (r *BunRepository) CreatePage(ctx context.Context, page *Page) (*Page, error) {
	created, err := r.pages.Create(ctx, page)
	if err != nil {
		return nil, storage.MapError("pages.create", resourcePage, page.SiteKey+"/"+page.Slug, err)
	}
	return created, nil
}

func (r *BunRepository) GetPage(ctx context.Context, site string, id uuid.UUID) (*Page, error) {
	records, _, err := r.pages.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id).Where("?TableAlias.site_key = ?", site)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, storage.MapError("pages.get", resourcePage, id.String(), err)
	}
	if len(records) == 0 {
		return nil, pageNotFound(id.String())
	}
	return records[0], nil
}

func (r *BunRepository) GetPageBySlug(ctx context.Context, site, slug string) (*Page, error) {
	records, _, err := r.pages.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug).Where("?TableAlias.site_key = ?", site)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, storage.MapError("pages.get_by_slug", resourcePage, slug, err)
	}
	if len(records) == 0 {
		return nil, pageNotFound(slug)
	}
	return records[0], nil
}

func (r *BunRepository) ListPages(ctx context.Context, site string) ([]*Page, error) {
	var records []*Page
	if err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.site_key = ?", site).
		Order("slug ASC").
		Scan(ctx); err != nil {
		return nil, storage.MapError("pages.list", resourcePage, site, err)
	}
	return records, nil
}

func (r *BunRepository) UpdatePage(ctx context.Context, page *Page, expectedRevision int64) (*Page, error) {
	record := clonePage(page)
	record.Revision = expectedRevision + 1

	res, err := r.db.NewUpdate().
		Model(record).
		Column(pageContentColumns...).
		Where("id = ?", record.ID).
		Where("site_key = ?", record.SiteKey).
		Where("revision = ?", expectedRevision).
		Exec(ctx)
	if err != nil {
		return nil, storage.MapError("pages.update", resourcePage, record.SiteKey+"/"+record.Slug, err)
	}
	if err := r.checkRevisionWrite(ctx, res, resourcePage, record.ID, func(ctx context.Context) error {
		_, err := r.GetPage(ctx, record.SiteKey, record.ID)
		return err
	}); err != nil {
		return nil, err
	}
	return r.GetPage(ctx, record.SiteKey, record.ID)
}

func (r *BunRepository) DeletePage(ctx context.Context, site string, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Section)(nil)).
			Where("page_id = ?", id).
			Where("site_key = ?", site).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page sections: %w", err)
		}
		res, err := tx.NewDelete().
			Model((*Page)(nil)).
			Where("id = ?", id).
			Where("site_key = ?", site).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		if affected(res) == 0 {
			return pageNotFound(id.String())
		}
		return nil
	})
	return storage.MapError("pages.delete", resourcePage, id.String(), err)
}

func (r *BunRepository) TogglePage(ctx context.Context, site string, id uuid.UUID) (*Page, error) {
	res, err := r.db.NewUpdate().
		Model((*Page)(nil)).
		Set("active = NOT active").
		Where("id = ?", id).
		Where("site_key = ?", site).
		Exec(ctx)
	if err != nil {
		return nil, storage.MapError("pages.toggle", resourcePage, id.String(), err)
	}
	if affected(res) == 0 {
		return nil, pageNotFound(id.String())
	}
	return r.GetPage(ctx, site, id)
}

func (r *BunRepository) CreateSection(ctx context.Context, section *Section) (*Section, error) {
	record := cloneSection(section)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*Page)(nil)).
			Where("?TableAlias.id = ?", record.PageID).
			Where("?TableAlias.site_key = ?", record.SiteKey).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return pageNotFound(record.PageID.String())
		}
		count, err := tx.NewSelect().
			Model((*Section)(nil)).
			Where("?TableAlias.page_id = ?", record.PageID).
			Count(ctx)
		if err != nil {
			return err
		}
		record.SortOrder = count
		_, err = tx.NewInsert().Model(record).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, storage.MapError("page_sections.create", resourceSection, record.ID.String(), err)
	}
	return r.GetSection(ctx, record.SiteKey, record.PageID, record.ID)
}

func (r *BunRepository) GetSection(ctx context.Context, site string, pageID, id uuid.UUID) (*Section, error) {
	records, _, err := r.sections.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id).
				Where("?TableAlias.page_id = ?", pageID).
				Where("?TableAlias.site_key = ?", site)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, storage.MapError("page_sections.get", resourceSection, id.String(), err)
	}
	if len(records) == 0 {
		return nil, sectionNotFound(id.String())
	}
	return records[0], nil
}

// ListSections reads the full child list directly; reorders compare against
// it, so it must never be paginated.
func (r *BunRepository) ListSections(ctx context.Context, site string, pageID uuid.UUID) ([]*Section, error) {
	var records []*Section
	if err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.page_id = ?", pageID).
		Where("?TableAlias.site_key = ?", site).
		Order("sort_order ASC").
		Scan(ctx); err != nil {
		return nil, storage.MapError("page_sections.list", resourceSection, pageID.String(), err)
	}
	return records, nil
}

func (r *BunRepository) UpdateSection(ctx context.Context, section *Section, expectedRevision int64, writeActive bool) (*Section, error) {
	record := cloneSection(section)
	record.Revision = expectedRevision + 1

	columns := []string{"fields", "revision", "updated_at"}
	if writeActive {
		columns = append(columns, "active")
	}
	res, err := r.db.NewUpdate().
		Model(record).
		Column(columns...).
		Where("id = ?", record.ID).
		Where("page_id = ?", record.PageID).
		Where("site_key = ?", record.SiteKey).
		Where("revision = ?", expectedRevision).
		Exec(ctx)
	if err != nil {
		return nil, storage.MapError("page_sections.update", resourceSection, record.ID.String(), err)
	}
	if err := r.checkRevisionWrite(ctx, res, resourceSection, record.ID, func(ctx context.Context) error {
		_, err := r.GetSection(ctx, record.SiteKey, record.PageID, record.ID)
		return err
	}); err != nil {
		return nil, err
	}
	return r.GetSection(ctx, record.SiteKey, record.PageID, record.ID)
}

func (r *BunRepository) DeleteSection(ctx context.Context, site string, pageID, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*Section)(nil)).
			Where("id = ?", id).
			Where("page_id = ?", pageID).
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
			Where("?TableAlias.page_id = ?", pageID).
			Where("?TableAlias.site_key = ?", site).
			Scan(ctx, &remaining); err != nil {
			return err
		}
		return applyPositions(ctx, tx, ordering.Compact(remaining))
	})
	return storage.MapError("page_sections.delete", resourceSection, id.String(), err)
}

func (r *BunRepository) ReorderSections(ctx context.Context, site string, pageID uuid.UUID, order []uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var current []uuid.UUID
		if err := tx.NewSelect().
			Model((*Section)(nil)).
			Column("id").
			Where("?TableAlias.page_id = ?", pageID).
			Where("?TableAlias.site_key = ?", site).
			Order("sort_order ASC").
			Scan(ctx, &current); err != nil {
			return err
		}
		if err := ordering.Verify(pageID.String(), current, order); err != nil {
			return err
		}
		moves := make([]ordering.Positioned, len(order))
		for idx, id := range order {
			moves[idx] = ordering.Positioned{ID: id, Position: idx}
		}
		return applyPositions(ctx, tx, moves)
	})
	return storage.MapError("page_sections.reorder", resourceSection, pageID.String(), err)
}

func (r *BunRepository) ToggleSection(ctx context.Context, site string, pageID, id uuid.UUID) (*Section, error) {
	res, err := r.db.NewUpdate().
		Model((*Section)(nil)).
		Set("active = NOT active").
		Where("id = ?", id).
		Where("page_id = ?", pageID).
		Where("site_key = ?", site).
		Exec(ctx)
	if err != nil {
		return nil, storage.MapError("page_sections.toggle", resourceSection, id.String(), err)
	}
	if affected(res) == 0 {
		return nil, sectionNotFound(id.String())
	}
	return r.GetSection(ctx, site, pageID, id)
}

// checkRevisionWrite distinguishes a missing row from a stale revision when a
// compare-and-set update touched nothing.
func (r *BunRepository) checkRevisionWrite(ctx context.Context, res sql.Result, resource string, id uuid.UUID, lookup func(context.Context) error) error {
	if affected(res) > 0 {
		return nil
	}
	if err := lookup(ctx); err != nil {
		return err
	}
	return staleRevision(resource, id.String())
}

func applyPositions(ctx context.Context, tx bun.Tx, moves []ordering.Positioned) error {
	for _, move := range moves {
		if _, err := tx.NewUpdate().
			Model((*Section)(nil)).
			Set("sort_order = ?", move.Position).
			Where("id = ?", move.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("update section position: %w", err)
		}
	}
	return nil
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
