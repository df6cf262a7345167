package homepage

import (
	"context"
	"errors"
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/identity"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/metrics"
	"github.com/goliatone/go-sections/internal/ordering"
	"github.com/goliatone/go-sections/internal/tenants"
	"github.com/goliatone/go-sections/internal/validation"
	"github.com/goliatone/go-sections/internal/variants"
	"github.com/goliatone/go-sections/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service manages the ordered homepage sections of each site.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Section, error)
	Get(ctx context.Context, site string, id uuid.UUID) (*Section, error)
	GetByIdentifier(ctx context.Context, site, identifier string) (*Section, error)
	List(ctx context.Context, site string) ([]*Section, error)
	Update(ctx context.Context, input UpdateInput) (*Section, error)
	Delete(ctx context.Context, site string, id uuid.UUID) error
	ListCards(ctx context.Context, site string, id uuid.UUID) ([]variants.Card, error)
	ReplaceCards(ctx context.Context, input ReplaceCardsInput) (*Section, error)
	Reorder(ctx context.Context, site string, order []uuid.UUID) ([]*Section, error)
	ToggleActive(ctx context.Context, site string, id uuid.UUID) (*Section, error)
}

// CreateInput describes a new homepage section. Cards is the raw card list
// and is decoded strictly.
type CreateInput struct {
	Site            string
	Identifier      string
	Title           string
	Subtitle        *string
	Description     *string
	BackgroundColor string
	TextColor       string
	BackgroundImage *string
	Cards           []any
	Active          *bool
}

// UpdateInput is a partial update. The identifier cannot change.
type UpdateInput struct {
	Site             string
	ID               uuid.UUID
	Title            *string
	Subtitle         *string
	Description      *string
	BackgroundColor  *string
	TextColor        *string
	BackgroundImage  *string
	Active           *bool
	ExpectedRevision *int64
}

// ReplaceCardsInput swaps the full card list. Array order is card order.
type ReplaceCardsInput struct {
	Site             string
	ID               uuid.UUID
	Cards            []any
	ExpectedRevision *int64
}

var ErrRepositoryRequired = errors.New("homepage: repository required")

// SiteResolver maps caller supplied site keys to registry rows.
type SiteResolver interface {
	Resolve(ctx context.Context, key string) (*tenants.Site, error)
}

// IDDeriver produces the id of a new section from its site and identifier.
type IDDeriver func(site, identifier string) uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithSiteResolver validates site keys against the registry.
func WithSiteResolver(resolver SiteResolver) ServiceOption {
	return func(s *service) {
		s.sites = resolver
	}
}

// WithLocker overrides the per site lock used by structural writes.
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

// WithIDDeriver overrides id derivation (primarily for tests).
func WithIDDeriver(deriver IDDeriver) ServiceOption {
	return func(s *service) {
		if deriver != nil {
			s.id = deriver
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
	id      IDDeriver
	now     func() time.Time
}

// NewService constructs a homepage service. Section ids are derived from
// (site, identifier) unless overridden.
func NewService(repo Repository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:    repo,
		locker:  ordering.NewMemoryLocker(),
		logger:  logging.HomepageLogger(nil),
		metrics: metrics.Noop{},
		id:      identity.HomepageSectionUUID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateInput) (section *Section, err error) {
	site, err := s.resolveSite(ctx, input.Site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record("create", site, err) }()

	cards, err := decodeCards(input.Cards)
	if err != nil {
		return nil, err
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	identifier := strings.ToLower(strings.TrimSpace(input.Identifier))
	now := s.now().UTC()
	record := &Section{
		SiteKey:         site,
		Identifier:      identifier,
		Title:           strings.TrimSpace(input.Title),
		Subtitle:        optionalString(input.Subtitle),
		Description:     optionalString(input.Description),
		BackgroundColor: defaultString(input.BackgroundColor, BackgroundWhite),
		TextColor:       defaultString(input.TextColor, TextDark),
		BackgroundImage: optionalString(input.BackgroundImage),
		Active:          active,
		Revision:        1,
		Cards:           cards,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := validateSection(record); err != nil {
		return nil, err
	}
	record.ID = s.id(site, identifier)

	unlock, err := s.lock(ctx, site)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.repo.Create(ctx, record)
}

func (s *service) Get(ctx context.Context, site string, id uuid.UUID) (*Section, error) {
	site, err := s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, site, id)
}

func (s *service) GetByIdentifier(ctx context.Context, site, identifier string) (*Section, error) {
	site, err := s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByIdentifier(ctx, site, strings.ToLower(strings.TrimSpace(identifier)))
}

func (s *service) List(ctx context.Context, site string) ([]*Section, error) {
	site, err := s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, site)
}

func (s *service) Update(ctx context.Context, input UpdateInput) (section *Section, err error) {
	site, err := s.resolveSite(ctx, input.Site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record("update", site, err) }()

	current, err := s.repo.Get(ctx, site, input.ID)
	if err != nil {
		return nil, err
	}
	if input.ExpectedRevision != nil && *input.ExpectedRevision != current.Revision {
		return nil, staleRevision(current.ID.String())
	}
	if input.Title != nil {
		current.Title = strings.TrimSpace(*input.Title)
	}
	if input.Subtitle != nil {
		current.Subtitle = optionalString(input.Subtitle)
	}
	if input.Description != nil {
		current.Description = optionalString(input.Description)
	}
	if input.BackgroundColor != nil {
		current.BackgroundColor = defaultString(*input.BackgroundColor, BackgroundWhite)
	}
	if input.TextColor != nil {
		current.TextColor = defaultString(*input.TextColor, TextDark)
	}
	if input.BackgroundImage != nil {
		current.BackgroundImage = optionalString(input.BackgroundImage)
	}
	if input.Active != nil {
		current.Active = *input.Active
	}
	if err := validateSection(current); err != nil {
		return nil, err
	}
	current.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, current, current.Revision, input.Active != nil)
}

func (s *service) Delete(ctx context.Context, site string, id uuid.UUID) (err error) {
	site, err = s.resolveSite(ctx, site)
	if err != nil {
		return err
	}
	defer func() { s.record("delete", site, err) }()

	unlock, err := s.lock(ctx, site)
	if err != nil {
		return err
	}
	defer unlock()
	if err := s.repo.Delete(ctx, site, id); err != nil {
		return err
	}
	logging.WithContainerContext(s.logger, site, resourceSection, id.String()).Info("homepage section deleted")
	return nil
}

func (s *service) ListCards(ctx context.Context, site string, id uuid.UUID) ([]variants.Card, error) {
	section, err := s.Get(ctx, site, id)
	if err != nil {
		return nil, err
	}
	return section.Cards, nil
}

func (s *service) ReplaceCards(ctx context.Context, input ReplaceCardsInput) (section *Section, err error) {
	site, err := s.resolveSite(ctx, input.Site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record("replace_cards", site, err) }()

	cards, err := decodeCards(input.Cards)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, site, input.ID)
	if err != nil {
		return nil, err
	}
	if input.ExpectedRevision != nil && *input.ExpectedRevision != current.Revision {
		return nil, staleRevision(current.ID.String())
	}
	current.Cards = cards
	current.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, current, current.Revision, false)
}

func (s *service) Reorder(ctx context.Context, site string, order []uuid.UUID) (sections []*Section, err error) {
	site, err = s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, site)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.repo.List(ctx, site)
	if err != nil {
		return nil, err
	}
	plan, err := ordering.Build(site, sectionIDs(current), order)
	defer func() { s.metrics.Reorder(metrics.ContainerHomepage, site, plan.Changed, err) }()
	if err != nil {
		logging.WithContainerContext(s.logger, site, resourceSection, site).
			Warn("homepage reorder rejected", "error", err)
		return nil, err
	}
	if plan.Changed {
		if err := s.repo.Reorder(ctx, site, plan.Order); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, site)
}

func (s *service) ToggleActive(ctx context.Context, site string, id uuid.UUID) (section *Section, err error) {
	site, err = s.resolveSite(ctx, site)
	if err != nil {
		return nil, err
	}
	defer func() { s.record("toggle", site, err) }()
	return s.repo.Toggle(ctx, site, id)
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

// lock serializes structural writes to the site's homepage list.
func (s *service) lock(ctx context.Context, site string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, ordering.ContainerKey(resourceSection, site, "list"))
	if err != nil {
		return nil, domain.Persistence("homepage.lock", err)
	}
	return unlock, nil
}

func (s *service) record(operation, site string, err error) {
	s.metrics.Mutation(metrics.ContainerHomepage, operation, site, err)
	if err != nil && !domain.IsKnown(err) {
		logging.WithOperation(s.logger, operation, domain.Kind(err)).Error("homepage operation failed", "site", site, "error", err)
	}
}

func decodeCards(raw []any) ([]variants.Card, error) {
	cards, err := variants.DecodeCards(raw)
	if err != nil {
		var invalid *domain.ValidationError
		if errors.As(err, &invalid) {
			invalid.Resource = resourceSection
		}
		return nil, err
	}
	return variants.SanitizeCards(cards), nil
}

func validateSection(section *Section) error {
	err := ozzo.ValidateStruct(section,
		ozzo.Field(&section.Identifier,
			ozzo.Required,
			ozzo.By(func(value any) error {
				if identifier, _ := value.(string); identifier != "" && !slug.IsValid(identifier) {
					return errors.New("must be a lower case slug")
				}
				return nil
			}),
		),
		ozzo.Field(&section.Title, ozzo.Required),
		ozzo.Field(&section.BackgroundColor, ozzo.In(BackgroundWhite, BackgroundLight, BackgroundDark)),
		ozzo.Field(&section.TextColor, ozzo.In(TextDark, TextLight)),
	)
	return validation.FromRules(resourceSection, err)
}

func defaultString(value, fallback string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
