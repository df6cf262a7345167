package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-sections/internal/tenants"
)

var (
	ErrStorageDriverUnknown   = errors.New("sections config: storage driver is invalid")
	ErrStorageDSNRequired     = errors.New("sections config: storage dsn is required")
	ErrSitesRequired          = errors.New("sections config: at least one site is required")
	ErrSiteKeyInvalid         = errors.New("sections config: site key is invalid")
	ErrSiteKeyDuplicate       = errors.New("sections config: site key is duplicated")
	ErrLockingProviderUnknown = errors.New("sections config: locking provider is invalid")
	ErrRedisAddrRequired      = errors.New("sections config: redis address is required for redis locking")
	ErrLockTTLInvalid         = errors.New("sections config: lock ttl must be positive")
	ErrHTTPBasePathInvalid    = errors.New("sections config: http base path must start with /")
)

var ErrLoggingProviderRequired = errors.New("sections config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("sections config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sections config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sections config: logging format is invalid")

// Config aggregates storage, tenancy, and adapter settings for the module.
type Config struct {
	Storage  StorageConfig
	Sites    []SiteConfig
	Locking  LockingConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
	Cache    CacheConfig
	Features Features
}

// StorageConfig selects the database driver.
type StorageConfig struct {
	// Driver is "sqlite", "postgres", or "memory" (in-process repositories,
	// no DSN).
	Driver string
	DSN    string
	// AutoMigrate creates missing tables and indexes on startup.
	AutoMigrate bool
}

// SiteConfig seeds one row of the site registry.
type SiteConfig struct {
	Key         string `mapstructure:"key"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

// LockingConfig selects how structural writes on one container serialize.
type LockingConfig struct {
	// Provider is "memory" (single process) or "redis".
	Provider      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
	TTL           time.Duration
	Timeout       time.Duration
}

// HTTPConfig configures the admin API server.
type HTTPConfig struct {
	Addr         string
	BasePath     string
	MetricsPath  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CacheConfig controls caching of the site registry.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles optional module functionality.
type Features struct {
	Metrics bool
	Logger  bool
	// SiteRegistry resolves site keys against the sites table. When disabled
	// any well formed key is accepted.
	SiteRegistry bool
}

// DefaultConfig returns a single process sqlite setup serving the two
// configured marketing sites.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver:      "sqlite",
			DSN:         "file:sections.db?cache=shared&_foreign_keys=on",
			AutoMigrate: true,
		},
		Sites: []SiteConfig{
			{Key: "primary", Name: "Primary"},
			{Key: "secondary", Name: "Secondary"},
		},
		Locking: LockingConfig{
			Provider: "memory",
			Prefix:   "sections:lock:",
			TTL:      10 * time.Second,
			Timeout:  2 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			BasePath:     "/admin/api",
			MetricsPath:  "/metrics",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Metrics:      true,
			SiteRegistry: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Driver) {
	case "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}

	if cfg.Features.SiteRegistry && len(cfg.Sites) == 0 {
		return ErrSitesRequired
	}
	seen := make(map[string]struct{}, len(cfg.Sites))
	for _, site := range cfg.Sites {
		key := tenants.NormalizeKey(site.Key)
		if key == "" || !tenants.ValidKey(key) {
			return fmt.Errorf("%w: %q", ErrSiteKeyInvalid, site.Key)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s", ErrSiteKeyDuplicate, key)
		}
		seen[key] = struct{}{}
	}

	switch normalize(cfg.Locking.Provider) {
	case "", "memory":
	case "redis":
		if strings.TrimSpace(cfg.Locking.RedisAddr) == "" {
			return ErrRedisAddrRequired
		}
		if cfg.Locking.TTL <= 0 {
			return ErrLockTTLInvalid
		}
	default:
		return fmt.Errorf("%w: %s", ErrLockingProviderUnknown, cfg.Locking.Provider)
	}

	if base := strings.TrimSpace(cfg.HTTP.BasePath); base != "" && !strings.HasPrefix(base, "/") {
		return fmt.Errorf("%w: %s", ErrHTTPBasePathInvalid, base)
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
