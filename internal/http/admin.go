package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-sections/internal/homepage"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/metrics"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/tenants"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// AdminAPI registers admin endpoints for the site registry, pages, and
// homepage sections.
type AdminAPI struct {
	basePath string
	sites    tenants.Service
	pages    pages.Service
	homepage homepage.Service
	metrics  metrics.Recorder
	logger   interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		metrics:  metrics.Noop{},
		logger:   logging.HTTPLogger(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithSiteService wires the site registry.
func WithSiteService(service tenants.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.sites = service
		}
	}
}

// WithPageService wires the page service.
func WithPageService(service pages.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.pages = service
		}
	}
}

// WithHomepageService wires the homepage section service.
func WithHomepageService(service homepage.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.homepage = service
		}
	}
}

// WithMetrics records request counts and latencies per route.
func WithMetrics(recorder metrics.Recorder) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && recorder != nil {
			api.metrics = recorder
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerSiteRoutes(mux, base)
	api.registerPageRoutes(mux, base)
	api.registerSectionRoutes(mux, base)
	api.registerHomepageRoutes(mux, base)

	return nil
}

// handle registers handler under pattern and instruments it with the
// pattern as route label.
func (api *AdminAPI) handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	route := pattern
	if _, path, ok := strings.Cut(pattern, " "); ok {
		route = path
	}
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(rec, r)
		elapsed := time.Since(started)

		api.metrics.Request(r.Method, route, rec.status, elapsed)
		logger := logging.WithRequest(api.logger, r.Method, route)
		if rec.status >= http.StatusInternalServerError {
			logger.Error("admin request failed", "status", rec.status, "elapsed", elapsed)
			return
		}
		logger.Debug("admin request", "status", rec.status, "elapsed", elapsed)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (api *AdminAPI) registerSiteRoutes(mux *http.ServeMux, base string) {
	api.handle(mux, "GET "+joinPath(base, "sites"), api.handleSiteList)
}

func (api *AdminAPI) handleSiteList(w http.ResponseWriter, r *http.Request) {
	if api.sites == nil {
		unavailable(w)
		return
	}
	sites, err := api.sites.ListSites(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}
