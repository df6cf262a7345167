package pages

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/metrics"
	"github.com/goliatone/go-sections/internal/ordering"
	"github.com/goliatone/go-sections/internal/tenants"
	"github.com/goliatone/go-sections/internal/variants"
	"github.com/goliatone/go-sections/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service manages pages and their ordered sections.
type Service interface {
	CreatePage(ctx context.Context, input CreatePageInput) (*Page, error)
	// GetPage returns the page with its decoded sections in order.
	GetPage(ctx context.Context, site string, id uuid.UUID) (*Page, error)
	GetPageBySlug(ctx context.Context, site, slug string) (*Page, error)
	ListPages(ctx context.Context, site string) ([]*Page, error)
	UpdatePage(ctx context.Context, input UpdatePageInput) (*Page, error)
	DeletePage(ctx context.Context, site string, id uuid.UUID) error
	TogglePageActive(ctx context.Context, site string, id uuid.UUID) (*Page, error)

	AddSection(ctx context.Context, input AddSectionInput) (*Section, error)
	GetSection(ctx context.Context, site string, pageID, sectionID uuid.UUID) (*Section, error)
	ListSections(ctx context.Context, site string, pageID uuid.UUID) ([]*Section, error)
	UpdateSection(ctx context.Context, input UpdateSectionInput) (*Section, error)
	DeleteSection(ctx context.Context, site string, pageID, sectionID uuid.UUID) error
	ReorderSections(ctx context.Context, site string, pageID uuid.UUID, order []uuid.UUID) ([]*Section, error)
	ToggleSectionActive(ctx context.Context, site string, pageID, sectionID uuid.UUID) (*Section, error)
}

// PageMeta holds the optional SEO and hero columns of a page. On update a nil
// pointer leaves the column unchanged and a blank string clears it.
type PageMeta struct {
	SEOTitle        *string `json:"seo_title,omitempty"`
	SEODescription  *string `json:"seo_description,omitempty"`
	SEOKeywords     *string `json:"seo_keywords,omitempty"`
	HeroTitle       *string `json:"hero_title,omitempty"`
	HeroSubtitle    *string `json:"hero_subtitle,omitempty"`
	HeroDescription *string `json:"hero_description,omitempty"`
	HeroImage       *string `json:"hero_image,omitempty"`
	HeroButtonText  *string `json:"hero_button_text,omitempty"`
	HeroButtonLink  *string `json:"hero_button_link,omitempty"`
}

// CreatePageInput captures the fields required to create a page.
type CreatePageInput struct {
	Site   string
	Slug   string
	Title  string
	Meta   PageMeta
	Active *bool
}

// UpdatePageInput is a partial update of page level fields.
type UpdatePageInput struct {
	Site             string
	ID               uuid.UUID
	Slug             *string
	Title            *string
	Meta             PageMeta
	ExpectedRevision *int64
}

// AddSectionInput appends a new section to a page.
type AddSectionInput struct {
	Site   string
	PageID uuid.UUID
	Type   string
	Fields map[string]any
	Active *bool
}

// UpdateSectionInput merges Fields into the stored field bag by top level key.
type UpdateSectionInput struct {
	Site             string
	PageID           uuid.UUID
	SectionID        uuid.UUID
	Fields           map[string]any
	Active           *bool
	ExpectedRevision *int64
}

var ErrRepositoryRequired = errors.New("pages: repository required")

// SiteResolver maps caller supplied site keys to registry rows.
type SiteResolver interface {
	Resolve(ctx context.Context, key string) (*tenants.Site, error)
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithSiteResolver validates site keys against the registry.
func WithSiteResolver(resolver SiteResolver) ServiceOption {
	return func(s *service) {
		s.sites = resolver
	}
}

// WithLocker overrides the per page lock used by structural writes.
func WithLocker(locker ordering.Locker) ServiceOption {
	return func(s *service) {
		if locker != nil {
			s.locker = locker
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the outcome recorder.
func WithMetrics(recorder metrics.Recorder) ServiceOption {
	return func(s *service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithIDGenerator overrides record id generation (primarily for tests).
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	repo    Repository
	sites   SiteResolver
	locker  ordering.Locker
	logger  interfaces.Logger
	metrics metrics.Recorder
	id      IDGenerator
	now     func() time.Time
}

// NewService constructs a page service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:    repo,
		locker:  ordering.NewMemoryLocker(),
		logger:  logging.PagesLogger(nil),
		metrics: metrics.Noop{},
		id:      uuid.New,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreatePage(ctx context.Context, input CreatePageInput) (page *Page, err error) {
	site, err := s.resolveSite(ctx, input.Site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record(metrics.ContainerPage, "create", site, err) }()

	slugValue, err := normalizeSlug(input.Slug)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.NewValidationError(resourcePage, "#/title", "title is required")
	}
	if _, err := s.repo.GetPageBySlug(ctx, site, slugValue); err == nil {
		return nil, duplicateSlug(site, slugValue)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	now := s.now().UTC()
	record := &Page{
		ID:        s.id(),
		SiteKey:   site,
		Slug:      slugValue,
		Title:     title,
		Active:    active,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyMeta(record, input.Meta)

	created, err := s.repo.CreatePage(ctx, record)
	if err != nil {
		return nil, err
	}
	created.Sections = []*Section{}
	logging.WithContainerContext(s.logger, site, resourcePage, created.ID.String()).
		Info("page created", "slug", created.Slug)
	return created, nil
}

func (s *service) GetPage(ctx context.Context, site string, id uuid.UUID) (*Page, error) {
	site, err := s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	page, err := s.repo.GetPage(ctx, site, id)
	if err != nil {
		return nil, err
	}
	return s.withSections(ctx, page)
}

func (s *service) GetPageBySlug(ctx context.Context, site, slugValue string) (*Page, error) {
	site, err := s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	page, err := s.repo.GetPageBySlug(ctx, site, strings.ToLower(strings.TrimSpace(slugValue)))
	if err != nil {
		return nil, err
	}
	return s.withSections(ctx, page)
}

func (s *service) ListPages(ctx context.Context, site string) ([]*Page, error) {
	site, err := s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPages(ctx, site)
}

func (s *service) UpdatePage(ctx context.Context, input UpdatePageInput) (page *Page, err error) {
	site, err := s.resolveSite(ctx, input.Site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record(metrics.ContainerPage, "update", site, err) }()

	current, err := s.repo.GetPage(ctx, site, input.ID)
	if err != nil {
		return nil, err
	}
	if input.ExpectedRevision != nil && *input.ExpectedRevision != current.Revision {
		return nil, staleRevision(resourcePage, current.ID.String())
	}

	if input.Slug != nil {
		slugValue, err := normalizeSlug(*input.Slug)
		if err != nil {
			return nil, err
		}
		if slugValue != current.Slug {
			if other, err := s.repo.GetPageBySlug(ctx, site, slugValue); err == nil && other.ID != current.ID {
				return nil, duplicateSlug(site, slugValue)
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
		}
		current.Slug = slugValue
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.NewValidationError(resourcePage, "#/title", "title cannot be blank")
		}
		current.Title = title
	}
	applyMeta(current, input.Meta)
	current.UpdatedAt = s.now().UTC()

	return s.repo.UpdatePage(ctx, current, current.Revision)
}

func (s *service) DeletePage(ctx context.Context, site string, id uuid.UUID) (err error) {
	site, err = s.resolveSite(ctx, site)
	if err != nil {
		return err
	}
	defer func() { s.record(metrics.ContainerPage, "delete", site, err) }()

	unlock, err := s.lock(ctx, site, id)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.repo.DeletePage(ctx, site, id); err != nil {
		return err
	}
	logging.WithContainerContext(s.logger, site, resourcePage, id.String()).Info("page deleted")
	return nil
}

func (s *service) TogglePageActive(ctx context.Context, site string, id uuid.UUID) (page *Page, err error) {
	site, err = s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record(metrics.ContainerPage, "toggle", site, err) }()
	return s.repo.TogglePage(ctx, site, id)
}

func (s *service) AddSection(ctx context.Context, input AddSectionInput) (section *Section, err error) {
	site, err := s.resolveSite(ctx, input.Site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record(metrics.ContainerSection, "create", site, err) }()

	sectionType, ok := domain.ParseSectionType(input.Type)
	if !ok || !domain.IsPageSectionType(sectionType) {
		return nil, domain.NewValidationError(resourceSection, "#/type", "unsupported section type "+strconv.Quote(input.Type))
	}
	fields, err := variants.Initial(sectionType, input.Fields)
	if err != nil {
		return nil, err
	}
	encoded, err := variants.Encode(variants.Sanitize(fields))
	if err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	now := s.now().UTC()
	record := &Section{
		ID:        s.id(),
		PageID:    input.PageID,
		SiteKey:   site,
		Type:      sectionType,
		Active:    active,
		Revision:  1,
		Fields:    encoded,
		CreatedAt: now,
		UpdatedAt: now,
	}

	unlock, err := s.lock(ctx, site, input.PageID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	created, err := s.repo.CreateSection(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.decode(created), nil
}

func (s *service) GetSection(ctx context.Context, site string, pageID, sectionID uuid.UUID) (*Section, error) {
	site, err := s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	section, err := s.repo.GetSection(ctx, site, pageID, sectionID)
	if err != nil {
		return nil, err
	}
	return s.decode(section), nil
}

func (s *service) ListSections(ctx context.Context, site string, pageID uuid.UUID) ([]*Section, error) {
	site, err := s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetPage(ctx, site, pageID); err != nil {
		return nil, err
	}
	return s.listDecoded(ctx, site, pageID)
}

func (s *service) UpdateSection(ctx context.Context, input UpdateSectionInput) (section *Section, err error) {
	site, err := s.resolveSite(ctx, input.Site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record(metrics.ContainerSection, "update", site, err) }()

	current, err := s.repo.GetSection(ctx, site, input.PageID, input.SectionID)
	if err != nil {
		return nil, err
	}
	if input.ExpectedRevision != nil && *input.ExpectedRevision != current.Revision {
		return nil, staleRevision(resourceSection, current.ID.String())
	}
	if input.Fields != nil {
		merged, err := variants.Merge(current.Type, current.Fields, input.Fields)
		if err != nil {
			return nil, err
		}
		encoded, err := variants.Encode(variants.Sanitize(merged))
		if err != nil {
			return nil, err
		}
		current.Fields = encoded
	}
	if input.Active != nil {
		current.Active = *input.Active
	}
	current.UpdatedAt = s.now().UTC()

	updated, err := s.repo.UpdateSection(ctx, current, current.Revision, input.Active != nil)
	if err != nil {
		return nil, err
	}
	return s.decode(updated), nil
}

func (s *service) DeleteSection(ctx context.Context, site string, pageID, sectionID uuid.UUID) (err error) {
	site, err = s.resolveSite(ctx, site)
	if err != nil {
		return err
	}
	defer func() { s.record(metrics.ContainerSection, "delete", site, err) }()

	unlock, err := s.lock(ctx, site, pageID)
	if err != nil {
		return err
	}
	defer unlock()
	return s.repo.DeleteSection(ctx, site, pageID, sectionID)
}

func (s *service) ReorderSections(ctx context.Context, site string, pageID uuid.UUID, order []uuid.UUID) (sections []*Section, err error) {
	site, err = s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetPage(ctx, site, pageID); err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, site, pageID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.repo.ListSections(ctx, site, pageID)
	if err != nil {
		return nil, err
	}
	plan, err := ordering.Build(pageID.String(), sectionIDs(current), order)
	defer func() { s.metrics.Reorder(metrics.ContainerSection, site, plan.Changed, err) }()
	if err != nil {
		logging.WithContainerContext(s.logger, site, resourcePage, pageID.String()).
			Warn("section reorder rejected", "error", err)
		return nil, err
	}
	if plan.Changed {
		if err := s.repo.ReorderSections(ctx, site, pageID, plan.Order); err != nil {
			return nil, err
		}
	}
	return s.listDecoded(ctx, site, pageID)
}

func (s *service) ToggleSectionActive(ctx context.Context, site string, pageID, sectionID uuid.UUID) (section *Section, err error) {
	site, err = s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record(metrics.ContainerSection, "toggle", site, err) }()

	toggled, err := s.repo.ToggleSection(ctx, site, pageID, sectionID)
	if err != nil {
		return nil, err
	}
	return s.decode(toggled), nil
}

func (s *service) withSections(ctx context.Context, page *Page) (*Page, error) {
	sections, err := s.listDecoded(ctx, page.SiteKey, page.ID)
	if err != nil {
		return nil, err
	}
	page.Sections = sections
	return page, nil
}

func (s *service) listDecoded(ctx context.Context, site string, pageID uuid.UUID) ([]*Section, error) {
	sections, err := s.repo.ListSections(ctx, site, pageID)
	if err != nil {
		return nil, err
	}
	for i, section := range sections {
		sections[i] = s.decode(section)
	}
	return sections, nil
}

// decode populates Content. Rows written before strict validation may not
// decode; they are returned with a nil Content and logged.
func (s *service) decode(section *Section) *Section {
	if section == nil {
		return nil
	}
	content, err := variants.Decode(section.Type, section.Fields)
	if err != nil {
		logging.WithContainerContext(s.logger, section.SiteKey, resourceSection, section.ID.String()).
			Warn("stored section fields do not decode", "type", section.Type, "error", err)
		return section
	}
	section.Content = content
	return section
}

func (s *service) resolveSite(ctx context.Context, key string) (string, error) {
	normalized := tenants.NormalizeKey(key)
	if s.sites == nil {
		if normalized == "" || !tenants.ValidKey(normalized) {
			return "", &domain.NotFoundError{Resource: "site", Key: normalized}
		}
		return normalized, nil
	}
	site, err := s.sites.Resolve(ctx, normalized)
	if err != nil {
		return "", err
	}
	return site.Key, nil
}

func (s *service) lock(ctx context.Context, site string, pageID uuid.UUID) (func(), error) {
	unlock, err := s.locker.Lock(ctx, ordering.ContainerKey(resourcePage, site, pageID.String()))
	if err != nil {
		return nil, domain.Persistence("pages.lock", err)
	}
	return unlock, nil
}

func (s *service) record(container, operation, site string, err error) {
	s.metrics.Mutation(container, operation, site, err)
	if err != nil && !domain.IsKnown(err) {
		logging.WithOperation(s.logger, operation, domain.Kind(err)).Error("page operation failed", "site", site, "error", err)
	}
}

func applyMeta(page *Page, meta PageMeta) {
	assign := func(target **string, value *string) {
		if value != nil {
			*target = optionalString(value)
		}
	}
	assign(&page.SEOTitle, meta.SEOTitle)
	assign(&page.SEODescription, meta.SEODescription)
	assign(&page.SEOKeywords, meta.SEOKeywords)
	assign(&page.HeroTitle, meta.HeroTitle)
	assign(&page.HeroSubtitle, meta.HeroSubtitle)
	assign(&page.HeroDescription, meta.HeroDescription)
	assign(&page.HeroImage, meta.HeroImage)
	assign(&page.HeroButtonText, meta.HeroButtonText)
	assign(&page.HeroButtonLink, meta.HeroButtonLink)
}

func normalizeSlug(value string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "", domain.NewValidationError(resourcePage, "#/slug", "slug is required")
	}
	if !slug.IsValid(normalized) {
		return "", domain.NewValidationError(resourcePage, "#/slug", "slug "+strconv.Quote(normalized)+" is not valid")
	}
	return normalized, nil
}
