package di

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/goliatone/go-sections/internal/domain"
	"github.com/goliatone/go-sections/internal/homepage"
	"github.com/goliatone/go-sections/internal/logging/gologger"
	"github.com/goliatone/go-sections/internal/metrics"
	"github.com/goliatone/go-sections/internal/ordering"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/runtimeconfig"
	"github.com/goliatone/go-sections/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func memoryConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "memory"
	cfg.Storage.DSN = ""
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "oracle"

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestContainerMemoryStorageSeedsRegistry(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainer(memoryConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	defer container.Close()

	if container.DB() != nil {
		t.Fatalf("expected no database for memory storage")
	}
	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("second bootstrap should be idempotent: %v", err)
	}

	sites, err := container.SiteService().ListSites(ctx)
	if err != nil {
		t.Fatalf("list sites: %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("expected two seeded sites, got %d", len(sites))
	}

	if _, err := container.PageService().CreatePage(ctx, pages.CreatePageInput{Site: "primary", Slug: "home", Title: "Home"}); err != nil {
		t.Fatalf("create page on seeded site: %v", err)
	}
	if _, err := container.PageService().CreatePage(ctx, pages.CreatePageInput{Site: "tertiary", Slug: "home", Title: "Home"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected unregistered site to be rejected, got %v", err)
	}
}

func TestContainerWithBunDBMigratesAndServes(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)

	container, err := NewContainer(runtimeconfig.DefaultConfig(), WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, ok := container.pageRepo.(*pages.BunRepository); !ok {
		t.Fatalf("expected bun page repository, got %T", container.pageRepo)
	}
	if container.cacheService == nil {
		t.Fatalf("expected cache service for the site registry")
	}

	section, err := container.HomepageService().Create(ctx, homepage.CreateInput{Site: "secondary", Identifier: "faq", Title: "FAQ"})
	if err != nil {
		t.Fatalf("create homepage section: %v", err)
	}
	if _, err := container.HomepageService().Get(ctx, "primary", section.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected cross-site lookup to fail, got %v", err)
	}

	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		t.Fatalf("expected caller owned database to stay open: %v", err)
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := memoryConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.LoggerProvider().(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
	if logger := provider.GetLogger("sections.test"); logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestContainerRecordsMetrics(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainer(memoryConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, ok := container.Metrics().(*metrics.Prometheus); !ok {
		t.Fatalf("expected prometheus recorder, got %T", container.Metrics())
	}

	if _, err := container.PageService().CreatePage(ctx, pages.CreatePageInput{Site: "primary", Slug: "home", Title: "Home"}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	count, err := testutil.GatherAndCount(container.Registry(), "sections_content_mutations_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected mutation series to be recorded")
	}
}

func TestContainerDisabledMetricsUsesNoop(t *testing.T) {
	cfg := memoryConfig()
	cfg.Features.Metrics = false

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.Registry() != nil {
		t.Fatalf("expected no registry")
	}
	if _, ok := container.Metrics().(metrics.Noop); !ok {
		t.Fatalf("expected noop recorder, got %T", container.Metrics())
	}
}

func TestContainerRedisLocking(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := memoryConfig()
	cfg.Locking.Provider = "redis"
	cfg.Locking.RedisAddr = server.Addr()

	container, err := NewContainer(cfg, WithRedisClient(client))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.Locker().(*ordering.RedisLocker); !ok {
		t.Fatalf("expected redis locker, got %T", container.Locker())
	}

	ctx := context.Background()
	if err := container.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	svc := container.HomepageService()
	a, err := svc.Create(ctx, homepage.CreateInput{Site: "primary", Identifier: "a", Title: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := svc.Create(ctx, homepage.CreateInput{Site: "primary", Identifier: "b", Title: "B"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	reordered, err := svc.Reorder(ctx, "primary", []uuid.UUID{b.ID, a.ID})
	if err != nil {
		t.Fatalf("reorder under redis lock: %v", err)
	}
	if reordered[0].ID != b.ID {
		t.Fatalf("unexpected order %v", reordered)
	}
	if keys := server.Keys(); len(keys) != 0 {
		t.Fatalf("expected locks to be released, found %v", keys)
	}
}
