package bootstrap

import (
	"context"
	"fmt"
	"strings"

	sections "github.com/goliatone/go-sections"
	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/di"
	"github.com/goliatone/go-sections/pkg/interfaces"
	"github.com/google/uuid"
)

// Options captures configuration for CLI bootstraps.
type Options struct {
	ConfigPath     string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the sections module and the command logger.
type Module struct {
	Module *sections.Module
	Logger interfaces.Logger
}

// BuildModule loads configuration, constructs the module, and bootstraps storage.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg, err := sections.LoadConfig(strings.TrimSpace(opts.ConfigPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var diOpts []di.Option
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := sections.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise module: %w", err)
	}
	if err := module.Bootstrap(ctx); err != nil {
		_ = module.Close()
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: commands.CommandLogger(module.Container().LoggerProvider(), "cli"),
	}, nil
}

// ParseUUID parses an optional UUID flag value.
func ParseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(trimmed)
}

// ParseUUIDList parses a comma separated list of UUIDs.
func ParseUUIDList(value string) ([]uuid.UUID, error) {
	parts := strings.Split(value, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := uuid.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", trimmed, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
