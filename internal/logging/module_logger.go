package logging

import (
	"context"

	"github.com/goliatone/go-sections/pkg/interfaces"
)

const (
	rootModule     = "sections"
	tenantsModule  = "sections.tenants"
	pagesModule    = "sections.pages"
	homepageModule = "sections.homepage"
	httpModule     = "sections.http"
	commandsModule = "sections.commands"
)

const (
	fieldSite          = "site"
	fieldContainer     = "container"
	fieldContainerID   = "container_id"
	fieldOperation     = "operation"
	fieldErrorKind     = "error_kind"
	fieldRequestMethod = "method"
	fieldRequestPath   = "path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// TenantsLogger returns the logger namespace reserved for the site registry.
func TenantsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tenantsModule)
}

// PagesLogger returns the logger namespace reserved for page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// HomepageLogger returns the logger namespace reserved for homepage sections.
func HomepageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, homepageModule)
}

// HTTPLogger returns the logger namespace reserved for the admin API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
