package sectionscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/homepage"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/google/uuid"
)

type stubPageSections struct {
	reorders [][]uuid.UUID
	toggled  []uuid.UUID
	pages    []uuid.UUID
	deleted  []uuid.UUID

	err error
}

func (s *stubPageSections) ReorderSections(_ context.Context, _ string, _ uuid.UUID, order []uuid.UUID) ([]*pages.Section, error) {
	s.reorders = append(s.reorders, order)
	if s.err != nil {
		return nil, s.err
	}
	return nil, nil
}

func (s *stubPageSections) ToggleSectionActive(_ context.Context, _ string, _ uuid.UUID, sectionID uuid.UUID) (*pages.Section, error) {
	s.toggled = append(s.toggled, sectionID)
	if s.err != nil {
		return nil, s.err
	}
	return &pages.Section{ID: sectionID}, nil
}

func (s *stubPageSections) TogglePageActive(_ context.Context, _ string, id uuid.UUID) (*pages.Page, error) {
	s.pages = append(s.pages, id)
	if s.err != nil {
		return nil, s.err
	}
	return &pages.Page{ID: id}, nil
}

func (s *stubPageSections) DeleteSection(_ context.Context, _ string, _ uuid.UUID, sectionID uuid.UUID) error {
	s.deleted = append(s.deleted, sectionID)
	return s.err
}

type stubHomepage struct {
	reorders [][]uuid.UUID
	toggled  []uuid.UUID
}

func (s *stubHomepage) Reorder(_ context.Context, _ string, order []uuid.UUID) ([]*homepage.Section, error) {
	s.reorders = append(s.reorders, order)
	return nil, nil
}

func (s *stubHomepage) ToggleActive(_ context.Context, _ string, id uuid.UUID) (*homepage.Section, error) {
	s.toggled = append(s.toggled, id)
	return &homepage.Section{ID: id}, nil
}

func TestReorderSectionsHandlerExecutesService(t *testing.T) {
	service := &stubPageSections{}
	handler := NewReorderSectionsHandler(service, commands.CommandLogger(nil, "sections"))

	order := []uuid.UUID{uuid.New(), uuid.New()}
	if err := handler.Execute(context.Background(), ReorderSectionsCommand{Site: "primary", PageID: uuid.New(), Order: order}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(service.reorders) != 1 || len(service.reorders[0]) != 2 || service.reorders[0][0] != order[0] {
		t.Fatalf("expected reorder to receive %v, got %v", order, service.reorders)
	}
}

func TestReorderSectionsHandlerValidationError(t *testing.T) {
	service := &stubPageSections{}
	handler := NewReorderSectionsHandler(service, logging.NoOp())

	cases := map[string]ReorderSectionsCommand{
		"missing site": {PageID: uuid.New()},
		"invalid site": {Site: "not a key!", PageID: uuid.New()},
		"missing page": {Site: "primary"},
		"nil id":       {Site: "primary", PageID: uuid.New(), Order: []uuid.UUID{uuid.Nil}},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			err := handler.Execute(context.Background(), msg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}
	if len(service.reorders) != 0 {
		t.Fatalf("expected no reorder attempts, got %d", len(service.reorders))
	}
}

func TestReorderSectionsHandlerKeepsMismatchError(t *testing.T) {
	missing := uuid.New()
	service := &stubPageSections{err: &domain.ReorderMismatchError{Container: "page", Missing: []uuid.UUID{missing}}}
	handler := NewReorderSectionsHandler(service, logging.NoOp())

	err := handler.Execute(context.Background(), ReorderSectionsCommand{Site: "primary", PageID: uuid.New()})
	var mismatch *domain.ReorderMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected reorder mismatch error, got %v", err)
	}
	if len(mismatch.Missing) != 1 || mismatch.Missing[0] != missing {
		t.Fatalf("expected missing %s, got %v", missing, mismatch.Missing)
	}
}

func TestToggleAndDeleteHandlers(t *testing.T) {
	service := &stubPageSections{}
	logger := logging.NoOp()
	pageID := uuid.New()
	sectionID := uuid.New()

	if err := NewToggleSectionHandler(service, logger).Execute(context.Background(), ToggleSectionCommand{Site: "primary", PageID: pageID, SectionID: sectionID}); err != nil {
		t.Fatalf("toggle section: %v", err)
	}
	if err := NewTogglePageHandler(service, logger).Execute(context.Background(), TogglePageCommand{Site: "primary", PageID: pageID}); err != nil {
		t.Fatalf("toggle page: %v", err)
	}
	if err := NewDeleteSectionHandler(service, logger).Execute(context.Background(), DeleteSectionCommand{Site: "primary", PageID: pageID, SectionID: sectionID}); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	if len(service.toggled) != 1 || service.toggled[0] != sectionID {
		t.Fatalf("expected section toggle for %s, got %v", sectionID, service.toggled)
	}
	if len(service.pages) != 1 || service.pages[0] != pageID {
		t.Fatalf("expected page toggle for %s, got %v", pageID, service.pages)
	}
	if len(service.deleted) != 1 || service.deleted[0] != sectionID {
		t.Fatalf("expected delete for %s, got %v", sectionID, service.deleted)
	}

	err := NewDeleteSectionHandler(service, logger).Execute(context.Background(), DeleteSectionCommand{Site: "primary", PageID: pageID})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category for missing section id, got %v", err)
	}
	if len(service.deleted) != 1 {
		t.Fatalf("expected no further delete attempts, got %d", len(service.deleted))
	}
}

func TestHandlersWrapUnexpectedFailures(t *testing.T) {
	service := &stubPageSections{err: errors.New("boom")}
	err := NewTogglePageHandler(service, logging.NoOp()).Execute(context.Background(), TogglePageCommand{Site: "primary", PageID: uuid.New()})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHomepageHandlers(t *testing.T) {
	service := &stubHomepage{}
	logger := logging.NoOp()
	order := []uuid.UUID{uuid.New()}

	if err := NewReorderHomepageHandler(service, logger).Execute(context.Background(), ReorderHomepageCommand{Site: "primary", Order: order}); err != nil {
		t.Fatalf("reorder homepage: %v", err)
	}
	if err := NewToggleHomepageSectionHandler(service, logger).Execute(context.Background(), ToggleHomepageSectionCommand{Site: "primary", SectionID: order[0]}); err != nil {
		t.Fatalf("toggle homepage section: %v", err)
	}
	if len(service.reorders) != 1 || len(service.toggled) != 1 {
		t.Fatalf("expected one reorder and one toggle, got %d and %d", len(service.reorders), len(service.toggled))
	}
}

func TestHandlersAgainstMemoryServices(t *testing.T) {
	ctx := context.Background()
	service := pages.NewService(pages.NewMemoryRepository())
	page, err := service.CreatePage(ctx, pages.CreatePageInput{Site: "primary", Slug: "about", Title: "About"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	ids := make([]uuid.UUID, 0, 2)
	for _, sectionType := range []string{"triple", "numbers"} {
		section, err := service.AddSection(ctx, pages.AddSectionInput{Site: "primary", PageID: page.ID, Type: sectionType})
		if err != nil {
			t.Fatalf("add section: %v", err)
		}
		ids = append(ids, section.ID)
	}

	reorder := NewReorderSectionsHandler(service, logging.NoOp())
	if err := reorder.Execute(ctx, ReorderSectionsCommand{Site: "primary", PageID: page.ID, Order: []uuid.UUID{ids[1], ids[0]}}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	err = reorder.Execute(ctx, ReorderSectionsCommand{Site: "primary", PageID: page.ID, Order: []uuid.UUID{ids[1]}})
	if !errors.Is(err, domain.ErrReorderMismatch) {
		t.Fatalf("expected reorder mismatch, got %v", err)
	}

	sections, err := service.ListSections(ctx, "primary", page.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(sections) != 2 || sections[0].ID != ids[1] || sections[1].ID != ids[0] {
		t.Fatalf("expected reordered sections, got %+v", sections)
	}
}
