package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-sections/internal/homepage"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/logging/gologger"
	"github.com/goliatone/go-sections/internal/metrics"
	"github.com/goliatone/go-sections/internal/ordering"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/runtimeconfig"
	"github.com/goliatone/go-sections/internal/storage"
	"github.com/goliatone/go-sections/internal/tenants"
	"github.com/goliatone/go-sections/pkg/interfaces"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

// Container wires repositories and services from runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	registry       *prometheus.Registry
	recorder       metrics.Recorder

	redisClient redis.UniversalClient
	ownsRedis   bool
	locker      ordering.Locker

	siteRepo     tenants.SiteRepository
	pageRepo     pages.Repository
	homepageRepo homepage.Repository

	siteSvc     tenants.Service
	pageSvc     pages.Service
	homepageSvc homepage.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database handle. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache used by the site registry.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithRegistry registers metrics on registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithRedisClient supplies the client used by redis locking.
func WithRedisClient(client redis.UniversalClient) Option {
	return func(c *Container) {
		c.redisClient = client
	}
}

// WithLocker overrides the container lock shared by both services.
func WithLocker(locker ordering.Locker) Option {
	return func(c *Container) {
		c.locker = locker
	}
}

// WithPageService overrides the default page service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithHomepageService overrides the default homepage service binding.
func WithHomepageService(svc homepage.Service) Option {
	return func(c *Container) {
		c.homepageSvc = svc
	}
}

// NewContainer validates cfg and builds every service. Call Bootstrap before
// serving requests.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureMetrics()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureLocker()

	c.siteSvc = tenants.NewService(c.siteRepo)

	if c.pageSvc == nil {
		pageOpts := []pages.ServiceOption{
			pages.WithLocker(c.locker),
			pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
			pages.WithMetrics(c.recorder),
		}
		if cfg.Features.SiteRegistry {
			pageOpts = append(pageOpts, pages.WithSiteResolver(c.siteSvc))
		}
		c.pageSvc = pages.NewService(c.pageRepo, pageOpts...)
	}

	if c.homepageSvc == nil {
		homepageOpts := []homepage.ServiceOption{
			homepage.WithLocker(c.locker),
			homepage.WithLogger(logging.HomepageLogger(c.loggerProvider)),
			homepage.WithMetrics(c.recorder),
		}
		if cfg.Features.SiteRegistry {
			homepageOpts = append(homepageOpts, homepage.WithSiteResolver(c.siteSvc))
		}
		c.homepageSvc = homepage.NewService(c.homepageRepo, homepageOpts...)
	}

	return c, nil
}

// Bootstrap creates missing tables when AutoMigrate is set and seeds the
// configured sites into the registry.
func (c *Container) Bootstrap(ctx context.Context) error {
	if c.bunDB != nil && c.Config.Storage.AutoMigrate {
		if err := storage.EnsureSchema(ctx, c.bunDB, tenants.Tables(), pages.Tables(), homepage.Tables()); err != nil {
			return err
		}
	}

	inputs := make([]tenants.CreateSiteInput, 0, len(c.Config.Sites))
	for _, site := range c.Config.Sites {
		input := tenants.CreateSiteInput{Key: site.Key, Name: site.Name}
		if description := strings.TrimSpace(site.Description); description != "" {
			input.Description = &description
		}
		inputs = append(inputs, input)
	}
	if err := c.siteSvc.EnsureSites(ctx, inputs); err != nil {
		return fmt.Errorf("seed sites: %w", err)
	}
	logging.TenantsLogger(c.loggerProvider).Info("site registry ready", "sites", len(inputs))
	return nil
}

// Close releases the database and redis handles the container opened itself.
func (c *Container) Close() error {
	var errs []error
	if c.ownsRedis && c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	if c.ownsDB && c.bunDB != nil {
		errs = append(errs, c.bunDB.Close())
	}
	return errors.Join(errs...)
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	format := c.Config.Logging.Format
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "console") {
		format = "console"
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureMetrics() {
	if !c.Config.Features.Metrics {
		c.recorder = metrics.Noop{}
		return
	}
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}
	c.recorder = metrics.NewPrometheus(c.registry)
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || strings.EqualFold(strings.TrimSpace(c.Config.Storage.Driver), "memory") {
		return nil
	}
	db, err := storage.Open(c.Config.Storage.Driver, c.Config.Storage.DSN)
	if err != nil {
		return err
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		c.siteRepo = tenants.NewMemoryRepository()
		c.pageRepo = pages.NewMemoryRepository()
		c.homepageRepo = homepage.NewMemoryRepository()
		return
	}
	c.siteRepo = tenants.NewBunSiteRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.pageRepo = pages.NewBunRepository(c.bunDB)
	c.homepageRepo = homepage.NewBunRepository(c.bunDB)
}

func (c *Container) configureLocker() {
	if c.locker != nil {
		return
	}
	lockCfg := c.Config.Locking
	if !strings.EqualFold(strings.TrimSpace(lockCfg.Provider), "redis") {
		c.locker = ordering.NewMemoryLocker()
		return
	}
	if c.redisClient == nil {
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     lockCfg.RedisAddr,
			Password: lockCfg.RedisPassword,
			DB:       lockCfg.RedisDB,
		})
		c.ownsRedis = true
	}
	c.locker = ordering.NewRedisLocker(c.redisClient, lockCfg.Prefix, lockCfg.TTL, lockCfg.Timeout)
}

// DB returns the database handle, or nil for memory storage.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider returns the configured provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Registry returns the metrics registry, or nil when metrics are disabled.
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// Metrics returns the outcome recorder shared by services and adapters.
func (c *Container) Metrics() metrics.Recorder {
	return c.recorder
}

// Locker returns the container lock shared by both services.
func (c *Container) Locker() ordering.Locker {
	return c.locker
}

func (c *Container) SiteService() tenants.Service {
	return c.siteSvc
}

func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

func (c *Container) HomepageService() homepage.Service {
	return c.homepageSvc
}
