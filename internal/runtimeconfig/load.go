package runtimeconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SECTIONS_STORAGE_DSN.
const EnvPrefix = "SECTIONS"

// Load reads configuration with the following priority (highest first):
// SECTIONS_* environment variables, the file at path when one is given
// (yaml, json, or toml by extension), DefaultConfig.
func Load(path string) (Config, error) {
	defaults := DefaultConfig()
	v := viper.New()
	setDefaults(v, defaults)

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Storage: StorageConfig{
			Driver:      v.GetString("storage.driver"),
			DSN:         v.GetString("storage.dsn"),
			AutoMigrate: v.GetBool("storage.auto_migrate"),
		},
		Sites: defaults.Sites,
		Locking: LockingConfig{
			Provider:      v.GetString("locking.provider"),
			RedisAddr:     v.GetString("locking.redis_addr"),
			RedisPassword: v.GetString("locking.redis_password"),
			RedisDB:       v.GetInt("locking.redis_db"),
			Prefix:        v.GetString("locking.prefix"),
			TTL:           v.GetDuration("locking.ttl"),
			Timeout:       v.GetDuration("locking.timeout"),
		},
		HTTP: HTTPConfig{
			Addr:         v.GetString("http.addr"),
			BasePath:     v.GetString("http.base_path"),
			MetricsPath:  v.GetString("http.metrics_path"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
		},
		Logging: LoggingConfig{
			Provider:  v.GetString("logging.provider"),
			Level:     v.GetString("logging.level"),
			Format:    v.GetString("logging.format"),
			AddSource: v.GetBool("logging.add_source"),
			Focus:     v.GetStringSlice("logging.focus"),
		},
		Cache: CacheConfig{
			Enabled:    v.GetBool("cache.enabled"),
			DefaultTTL: v.GetDuration("cache.default_ttl"),
		},
		Features: Features{
			Metrics:      v.GetBool("features.metrics"),
			Logger:       v.GetBool("features.logger"),
			SiteRegistry: v.GetBool("features.site_registry"),
		},
	}

	if v.InConfig("sites") {
		var sites []SiteConfig
		if err := v.UnmarshalKey("sites", &sites); err != nil {
			return Config{}, fmt.Errorf("decode sites: %w", err)
		}
		cfg.Sites = sites
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("storage.driver", cfg.Storage.Driver)
	v.SetDefault("storage.dsn", cfg.Storage.DSN)
	v.SetDefault("storage.auto_migrate", cfg.Storage.AutoMigrate)

	v.SetDefault("locking.provider", cfg.Locking.Provider)
	v.SetDefault("locking.redis_addr", cfg.Locking.RedisAddr)
	v.SetDefault("locking.redis_password", cfg.Locking.RedisPassword)
	v.SetDefault("locking.redis_db", cfg.Locking.RedisDB)
	v.SetDefault("locking.prefix", cfg.Locking.Prefix)
	v.SetDefault("locking.ttl", cfg.Locking.TTL)
	v.SetDefault("locking.timeout", cfg.Locking.Timeout)

	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("http.base_path", cfg.HTTP.BasePath)
	v.SetDefault("http.metrics_path", cfg.HTTP.MetricsPath)
	v.SetDefault("http.read_timeout", cfg.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", cfg.HTTP.WriteTimeout)

	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)

	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.default_ttl", cfg.Cache.DefaultTTL)

	v.SetDefault("features.metrics", cfg.Features.Metrics)
	v.SetDefault("features.logger", cfg.Features.Logger)
	v.SetDefault("features.site_registry", cfg.Features.SiteRegistry)
}
