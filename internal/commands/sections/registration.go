package sectionscmd

import (
	"errors"

	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/di"
	"github.com/goliatone/go-sections/internal/metrics"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
	// Metrics receives command outcomes. Defaults to the container recorder.
	Metrics        metrics.Recorder
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the ordering and toggle handlers for the
// services of container and registers them with the optional registry and
// dispatcher.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}
	recorder := opts.Metrics
	if recorder == nil {
		recorder = container.Metrics()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if service := container.PageService(); service != nil {
		logger := commands.CommandLogger(provider, "pages")
		register(NewReorderSectionsHandler(service, logger, commands.WithMetrics[ReorderSectionsCommand](recorder)))
		register(NewToggleSectionHandler(service, logger, commands.WithMetrics[ToggleSectionCommand](recorder)))
		register(NewTogglePageHandler(service, logger, commands.WithMetrics[TogglePageCommand](recorder)))
		register(NewDeleteSectionHandler(service, logger, commands.WithMetrics[DeleteSectionCommand](recorder)))
	}

	if service := container.HomepageService(); service != nil {
		logger := commands.CommandLogger(provider, "homepage")
		register(NewReorderHomepageHandler(service, logger, commands.WithMetrics[ReorderHomepageCommand](recorder)))
		register(NewToggleHomepageSectionHandler(service, logger, commands.WithMetrics[ToggleHomepageSectionCommand](recorder)))
	}

	if len(result.Handlers) == 0 {
		return result, errors.Join(errs, errors.New("no command handlers registered; ensure services are configured"))
	}

	return result, errs
}
