// Package sections exposes the multi-site page and homepage section backend:
// services, the admin HTTP API, and the runtime wiring behind them.
package sections

import (
	"context"
	"net/http"

	"github.com/goliatone/go-sections/internal/di"
	"github.com/goliatone/go-sections/internal/homepage"
	adminhttp "github.com/goliatone/go-sections/internal/http"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/tenants"
	"github.com/goliatone/go-sections/internal/variants"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// SiteService exports the site registry contract.
type SiteService = tenants.Service

// PageService exports the pages service contract.
type PageService = pages.Service

// HomepageService exports the homepage section service contract.
type HomepageService = homepage.Service

type (
	Site                = tenants.Site
	Page                = pages.Page
	PageSection         = pages.Section
	PageMeta            = pages.PageMeta
	CreatePageInput     = pages.CreatePageInput
	UpdatePageInput     = pages.UpdatePageInput
	AddSectionInput     = pages.AddSectionInput
	UpdateSectionInput  = pages.UpdateSectionInput
	HomepageSection     = homepage.Section
	CreateHomepageInput = homepage.CreateInput
	UpdateHomepageInput = homepage.UpdateInput
	ReplaceCardsInput   = homepage.ReplaceCardsInput
	Card                = variants.Card
)

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Bootstrap migrates storage when configured and seeds the site registry.
func (m *Module) Bootstrap(ctx context.Context) error {
	return m.container.Bootstrap(ctx)
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	return m.container.Close()
}

// Sites returns the site registry service.
func (m *Module) Sites() SiteService {
	return m.container.SiteService()
}

// Pages returns the page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Homepage returns the homepage section service.
func (m *Module) Homepage() HomepageService {
	return m.container.HomepageService()
}

// Logger returns a module logger for host applications.
func (m *Module) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), module)
}

// RegisterRoutes mounts the admin API on mux under the configured base path.
func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	api := adminhttp.NewAdminAPI(
		adminhttp.WithBasePath(m.container.Config.HTTP.BasePath),
		adminhttp.WithSiteService(m.container.SiteService()),
		adminhttp.WithPageService(m.container.PageService()),
		adminhttp.WithHomepageService(m.container.HomepageService()),
		adminhttp.WithMetrics(m.container.Metrics()),
		adminhttp.WithLogger(logging.HTTPLogger(m.container.LoggerProvider())),
	)
	return api.Register(mux)
}
