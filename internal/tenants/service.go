package tenants

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/google/uuid"
)

// Service manages the site registry and resolves caller supplied site keys.
type Service interface {
	CreateSite(ctx context.Context, input CreateSiteInput) (*Site, error)
	UpdateSite(ctx context.Context, input UpdateSiteInput) (*Site, error)
	GetSite(ctx context.Context, key string) (*Site, error)
	ListSites(ctx context.Context) ([]*Site, error)
	// Resolve returns the active site registered under key. Unknown and
	// inactive keys yield a NotFoundError.
	Resolve(ctx context.Context, key string) (*Site, error)
	// EnsureSites registers missing sites and leaves existing rows untouched.
	EnsureSites(ctx context.Context, inputs []CreateSiteInput) error
}

// CreateSiteInput captures the information required to register a site.
type CreateSiteInput struct {
	Key         string
	Name        string
	Description *string
	IsActive    *bool
}

// UpdateSiteInput captures mutable site fields.
type UpdateSiteInput struct {
	Key         string
	Name        *string
	Description *string
	IsActive    *bool
}

var ErrSiteRepositoryRequired = errors.New("tenants: repository required")

// IDDeriver produces deterministic site IDs from keys.
type IDDeriver func(key string) uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDDeriver overrides site ID derivation.
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
	repo SiteRepository
	id   IDDeriver
	now  func() time.Time
}

// NewService constructs a site registry service.
func NewService(repo SiteRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrSiteRepositoryRequired)
	}
	s := &service{
		repo: repo,
		id:   IDForKey,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateSite(ctx context.Context, input CreateSiteInput) (*Site, error) {
	key := NormalizeKey(input.Key)
	if key == "" {
		return nil, domain.NewValidationError("site", "#/key", "key is required")
	}
	if !ValidKey(key) {
		return nil, domain.NewValidationError("site", "#/key", "key must match ^[a-z0-9_-]+$")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = deriveSiteName(key)
	}

	if _, err := s.repo.GetByKey(ctx, key); err == nil {
		return nil, &domain.ConflictError{Resource: "site", Key: key, Reason: domain.ReasonDuplicateKey}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &Site{
		ID:          s.id(key),
		Key:         key,
		Name:        name,
		Description: trimmedOrNil(input.Description),
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	return cloneSite(created), nil
}

func (s *service) UpdateSite(ctx context.Context, input UpdateSiteInput) (*Site, error) {
	site, err := s.repo.GetByKey(ctx, NormalizeKey(input.Key))
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError("site", "#/name", "name cannot be blank")
		}
		site.Name = name
	}
	if input.Description != nil {
		site.Description = trimmedOrNil(input.Description)
	}
	if input.IsActive != nil {
		site.IsActive = *input.IsActive
	}
	site.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, site)
	if err != nil {
		return nil, err
	}
	return cloneSite(updated), nil
}

func (s *service) GetSite(ctx context.Context, key string) (*Site, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, &domain.NotFoundError{Resource: "site"}
	}
	site, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return cloneSite(site), nil
}

func (s *service) ListSites(ctx context.Context) ([]*Site, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return cloneSites(records), nil
}

func (s *service) Resolve(ctx context.Context, key string) (*Site, error) {
	site, err := s.GetSite(ctx, key)
	if err != nil {
		return nil, err
	}
	if !site.IsActive {
		return nil, &domain.NotFoundError{Resource: "site", Key: site.Key}
	}
	return site, nil
}

func (s *service) EnsureSites(ctx context.Context, inputs []CreateSiteInput) error {
	for _, input := range inputs {
		_, err := s.CreateSite(ctx, input)
		if err == nil || errors.Is(err, domain.ErrConflict) {
			continue
		}
		return err
	}
	return nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
