package sectionscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/tenants"
	"github.com/goliatone/go-sections/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	toggleSectionMessageType  = "sections.pages.sections.toggle"
	togglePageMessageType     = "sections.pages.toggle"
	toggleHomepageMessageType = "sections.homepage.toggle"
)

// ToggleSectionCommand flips the active flag of one page section.
type ToggleSectionCommand struct {
	Site      string    `json:"site"`
	PageID    uuid.UUID `json:"page_id"`
	SectionID uuid.UUID `json:"section_id"`
}

// Type implements command.Message.
func (ToggleSectionCommand) Type() string { return toggleSectionMessageType }

func (m ToggleSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Site, validation.By(siteRule)),
		validation.Field(&m.PageID, validation.By(requiredID("page_id"))),
		validation.Field(&m.SectionID, validation.By(requiredID("section_id"))),
	)
}

// ToggleSectionHandler flips a section's active flag through the page service.
type ToggleSectionHandler struct {
	inner *commands.Handler[ToggleSectionCommand]
}

// NewToggleSectionHandler constructs a handler wired to service.
func NewToggleSectionHandler(service PageSections, logger interfaces.Logger, opts ...commands.HandlerOption[ToggleSectionCommand]) *ToggleSectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ToggleSectionCommand) error {
		_, err := service.ToggleSectionActive(ctx, msg.Site, msg.PageID, msg.SectionID)
		return err
	}

	handlerOpts := []commands.HandlerOption[ToggleSectionCommand]{
		commands.WithLogger[ToggleSectionCommand](baseLogger),
		commands.WithOperation[ToggleSectionCommand]("pages.sections.toggle"),
		commands.WithMessageFields(func(msg ToggleSectionCommand) map[string]any {
			return logFields(msg.Site, "page", msg.PageID, map[string]any{"section_id": msg.SectionID.String()})
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ToggleSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ToggleSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ToggleSectionCommand].Execute.
func (h *ToggleSectionHandler) Execute(ctx context.Context, msg ToggleSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// TogglePageCommand flips the active flag of a page.
type TogglePageCommand struct {
	Site   string    `json:"site"`
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (TogglePageCommand) Type() string { return togglePageMessageType }

func (m TogglePageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Site, validation.By(siteRule)),
		validation.Field(&m.PageID, validation.By(requiredID("page_id"))),
	)
}

// TogglePageHandler flips a page's active flag through the page service.
type TogglePageHandler struct {
	inner *commands.Handler[TogglePageCommand]
}

// NewTogglePageHandler constructs a handler wired to service.
func NewTogglePageHandler(service PageSections, logger interfaces.Logger, opts ...commands.HandlerOption[TogglePageCommand]) *TogglePageHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg TogglePageCommand) error {
		_, err := service.TogglePageActive(ctx, msg.Site, msg.PageID)
		return err
	}

	handlerOpts := []commands.HandlerOption[TogglePageCommand]{
		commands.WithLogger[TogglePageCommand](baseLogger),
		commands.WithOperation[TogglePageCommand]("pages.toggle"),
		commands.WithMessageFields(func(msg TogglePageCommand) map[string]any {
			return logFields(msg.Site, "page", msg.PageID, nil)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[TogglePageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &TogglePageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[TogglePageCommand].Execute.
func (h *TogglePageHandler) Execute(ctx context.Context, msg TogglePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ToggleHomepageSectionCommand flips the active flag of a homepage section.
type ToggleHomepageSectionCommand struct {
	Site      string    `json:"site"`
	SectionID uuid.UUID `json:"section_id"`
}

// Type implements command.Message.
func (ToggleHomepageSectionCommand) Type() string { return toggleHomepageMessageType }

func (m ToggleHomepageSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Site, validation.By(siteRule)),
		validation.Field(&m.SectionID, validation.By(requiredID("section_id"))),
	)
}

// ToggleHomepageSectionHandler flips a homepage section's active flag.
type ToggleHomepageSectionHandler struct {
	inner *commands.Handler[ToggleHomepageSectionCommand]
}

// NewToggleHomepageSectionHandler constructs a handler wired to service.
func NewToggleHomepageSectionHandler(service HomepageOrdering, logger interfaces.Logger, opts ...commands.HandlerOption[ToggleHomepageSectionCommand]) *ToggleHomepageSectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ToggleHomepageSectionCommand) error {
		_, err := service.ToggleActive(ctx, msg.Site, msg.SectionID)
		return err
	}

	handlerOpts := []commands.HandlerOption[ToggleHomepageSectionCommand]{
		commands.WithLogger[ToggleHomepageSectionCommand](baseLogger),
		commands.WithOperation[ToggleHomepageSectionCommand]("homepage.toggle"),
		commands.WithMessageFields(func(msg ToggleHomepageSectionCommand) map[string]any {
			return logFields(msg.Site, "homepage", msg.SectionID, nil)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ToggleHomepageSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ToggleHomepageSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ToggleHomepageSectionCommand].Execute.
func (h *ToggleHomepageSectionHandler) Execute(ctx context.Context, msg ToggleHomepageSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

func siteRule(value any) error {
	site, _ := value.(string)
	normalized := tenants.NormalizeKey(site)
	if normalized == "" {
		return validation.NewError("sections.site_required", "site is required")
	}
	if !tenants.ValidKey(normalized) {
		return validation.NewError("sections.site_invalid", "site must be a valid key")
	}
	return nil
}

func validateSite(site string) error {
	return siteRule(site)
}

// requiredID rejects uuid.Nil, which validation.Required accepts.
func requiredID(field string) validation.RuleFunc {
	return func(value any) error {
		id, _ := value.(uuid.UUID)
		if id == uuid.Nil {
			return validation.NewError("sections."+field+"_required", field+" is required")
		}
		return nil
	}
}
