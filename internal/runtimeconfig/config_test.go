package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-sections/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if len(cfg.Sites) != 2 || cfg.Sites[0].Key != "primary" || cfg.Sites[1].Key != "secondary" {
		t.Fatalf("expected the two configured sites, got %+v", cfg.Sites)
	}
}

func TestConfigValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "mysql"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestConfigValidate_RequiresDSN(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.DSN = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}

	cfg.Storage.Driver = "memory"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected memory storage without dsn to validate, got %v", err)
	}
}

func TestConfigValidate_RejectsBadSites(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Sites = append(cfg.Sites, runtimeconfig.SiteConfig{Key: "Primary"})
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSiteKeyDuplicate) {
		t.Fatalf("expected ErrSiteKeyDuplicate, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Sites = []runtimeconfig.SiteConfig{{Key: "two words"}}
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSiteKeyInvalid) {
		t.Fatalf("expected ErrSiteKeyInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Sites = nil
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSitesRequired) {
		t.Fatalf("expected ErrSitesRequired, got %v", err)
	}
}

func TestConfigValidate_RedisLockingRequiresAddress(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locking.Provider = "redis"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrRedisAddrRequired) {
		t.Fatalf("expected ErrRedisAddrRequired, got %v", err)
	}

	cfg.Locking.RedisAddr = "localhost:6379"
	cfg.Locking.TTL = 0
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLockTTLInvalid) {
		t.Fatalf("expected ErrLockTTLInvalid, got %v", err)
	}

	cfg.Locking.Provider = "etcd"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLockingProviderUnknown) {
		t.Fatalf("expected ErrLockingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsRelativeBasePath(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.HTTP.BasePath = "admin"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrHTTPBasePathInvalid) {
		t.Fatalf("expected ErrHTTPBasePathInvalid, got %v", err)
	}
}

func TestConfigValidate_LoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := runtimeconfig.Load("")
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	defaults := runtimeconfig.DefaultConfig()
	if cfg.Storage.Driver != defaults.Storage.Driver || cfg.HTTP.BasePath != defaults.HTTP.BasePath {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Locking.TTL != defaults.Locking.TTL || len(cfg.Sites) != 2 {
		t.Fatalf("expected default locking and sites, got %+v", cfg)
	}
}

func TestLoadReadsFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sections.yaml")
	content := `
storage:
  driver: postgres
  dsn: postgres://localhost/sections
locking:
  provider: redis
  redis_addr: localhost:6379
  ttl: 5s
sites:
  - key: alpha
    name: Alpha
  - key: beta
    name: Beta
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SECTIONS_HTTP_ADDR", ":9090")

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Storage.Driver != "postgres" || cfg.Storage.DSN != "postgres://localhost/sections" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Locking.Provider != "redis" || cfg.Locking.TTL != 5*time.Second || cfg.Locking.Timeout != 2*time.Second {
		t.Fatalf("unexpected locking %+v", cfg.Locking)
	}
	if len(cfg.Sites) != 2 || cfg.Sites[0].Key != "alpha" || cfg.Sites[1].Name != "Beta" {
		t.Fatalf("unexpected sites %+v", cfg.Sites)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("expected env override, got %q", cfg.HTTP.Addr)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sections.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: oracle\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.Load(path); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}
