package sections

import "github.com/goliatone/go-sections/internal/runtimeconfig"

var (
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrSitesRequired           = runtimeconfig.ErrSitesRequired
	ErrSiteKeyInvalid          = runtimeconfig.ErrSiteKeyInvalid
	ErrSiteKeyDuplicate        = runtimeconfig.ErrSiteKeyDuplicate
	ErrLockingProviderUnknown  = runtimeconfig.ErrLockingProviderUnknown
	ErrRedisAddrRequired       = runtimeconfig.ErrRedisAddrRequired
	ErrLockTTLInvalid          = runtimeconfig.ErrLockTTLInvalid
	ErrHTTPBasePathInvalid     = runtimeconfig.ErrHTTPBasePathInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	SiteConfig    = runtimeconfig.SiteConfig
	LockingConfig = runtimeconfig.LockingConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	CacheConfig   = runtimeconfig.CacheConfig
	Features      = runtimeconfig.Features
)

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads configuration from path (optional) and SECTIONS_* environment variables.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
