package sectionscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	reorderSectionsMessageType = "sections.pages.sections.reorder"
	reorderHomepageMessageType = "sections.homepage.reorder"
)

// ReorderSectionsCommand replaces the section order of a page. Order must
// list every section of the page exactly once.
type ReorderSectionsCommand struct {
	Site   string      `json:"site"`
	PageID uuid.UUID   `json:"page_id"`
	Order  []uuid.UUID `json:"order"`
}

// Type implements command.Message.
func (ReorderSectionsCommand) Type() string { return reorderSectionsMessageType }

// Validate ensures the command carries its container coordinates.
func (m ReorderSectionsCommand) Validate() error {
	errs := validation.Errors{}
	if siteErr := validateSite(m.Site); siteErr != nil {
		errs["site"] = siteErr
	}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("sections.reorder.page_id_required", "page_id is required")
	}
	if hasNil(m.Order) {
		errs["order"] = validation.NewError("sections.reorder.order_invalid", "order must not contain empty identifiers")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderSectionsHandler applies a full list reorder through the page service.
type ReorderSectionsHandler struct {
	inner *commands.Handler[ReorderSectionsCommand]
}

// NewReorderSectionsHandler constructs a handler wired to service.
func NewReorderSectionsHandler(service PageSections, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderSectionsCommand]) *ReorderSectionsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ReorderSectionsCommand) error {
		_, err := service.ReorderSections(ctx, msg.Site, msg.PageID, msg.Order)
		return err
	}

	handlerOpts := []commands.HandlerOption[ReorderSectionsCommand]{
		commands.WithLogger[ReorderSectionsCommand](baseLogger),
		commands.WithOperation[ReorderSectionsCommand]("pages.sections.reorder"),
		commands.WithMessageFields(func(msg ReorderSectionsCommand) map[string]any {
			return logFields(msg.Site, "page", msg.PageID, map[string]any{"count": len(msg.Order)})
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReorderSectionsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderSectionsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ReorderSectionsCommand].Execute.
func (h *ReorderSectionsHandler) Execute(ctx context.Context, msg ReorderSectionsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ReorderHomepageCommand replaces the homepage section order of a site.
type ReorderHomepageCommand struct {
	Site  string      `json:"site"`
	Order []uuid.UUID `json:"order"`
}

// Type implements command.Message.
func (ReorderHomepageCommand) Type() string { return reorderHomepageMessageType }

func (m ReorderHomepageCommand) Validate() error {
	errs := validation.Errors{}
	if siteErr := validateSite(m.Site); siteErr != nil {
		errs["site"] = siteErr
	}
	if hasNil(m.Order) {
		errs["order"] = validation.NewError("sections.reorder.order_invalid", "order must not contain empty identifiers")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderHomepageHandler applies a full list reorder through the homepage service.
type ReorderHomepageHandler struct {
	inner *commands.Handler[ReorderHomepageCommand]
}

// NewReorderHomepageHandler constructs a handler wired to service.
func NewReorderHomepageHandler(service HomepageOrdering, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderHomepageCommand]) *ReorderHomepageHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ReorderHomepageCommand) error {
		_, err := service.Reorder(ctx, msg.Site, msg.Order)
		return err
	}

	handlerOpts := []commands.HandlerOption[ReorderHomepageCommand]{
		commands.WithLogger[ReorderHomepageCommand](baseLogger),
		commands.WithOperation[ReorderHomepageCommand]("homepage.reorder"),
		commands.WithMessageFields(func(msg ReorderHomepageCommand) map[string]any {
			return logFields(msg.Site, "homepage", uuid.Nil, map[string]any{"count": len(msg.Order)})
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReorderHomepageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderHomepageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ReorderHomepageCommand].Execute.
func (h *ReorderHomepageHandler) Execute(ctx context.Context, msg ReorderHomepageCommand) error {
	return h.inner.Execute(ctx, msg)
}

func hasNil(ids []uuid.UUID) bool {
	for _, id := range ids {
		if id == uuid.Nil {
			return true
		}
	}
	return false
}

func logFields(site, container string, id uuid.UUID, extra map[string]any) map[string]any {
	fields := map[string]any{"container": container}
	if site != "" {
		fields["site"] = site
	}
	if id != uuid.Nil {
		fields["container_id"] = id.String()
	}
	for key, value := range extra {
		fields[key] = value
	}
	return fields
}
