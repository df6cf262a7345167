package sectionscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/pkg/interfaces"
	"github.com/google/uuid"
)

const deleteSectionMessageType = "sections.pages.sections.delete"

// DeleteSectionCommand removes one section from a page and closes the gap it
// leaves in the order.
type DeleteSectionCommand struct {
	Site      string    `json:"site"`
	PageID    uuid.UUID `json:"page_id"`
	SectionID uuid.UUID `json:"section_id"`
}

// Type implements command.Message.
func (DeleteSectionCommand) Type() string { return deleteSectionMessageType }

func (m DeleteSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Site, validation.By(siteRule)),
		validation.Field(&m.PageID, validation.By(requiredID("page_id"))),
		validation.Field(&m.SectionID, validation.By(requiredID("section_id"))),
	)
}

// DeleteSectionHandler deletes sections through the page service.
type DeleteSectionHandler struct {
	inner *commands.Handler[DeleteSectionCommand]
}

// NewDeleteSectionHandler constructs a handler wired to service.
func NewDeleteSectionHandler(service PageSections, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSectionCommand]) *DeleteSectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DeleteSectionCommand) error {
		return service.DeleteSection(ctx, msg.Site, msg.PageID, msg.SectionID)
	}

	handlerOpts := []commands.HandlerOption[DeleteSectionCommand]{
		commands.WithLogger[DeleteSectionCommand](baseLogger),
		commands.WithOperation[DeleteSectionCommand]("pages.sections.delete"),
		commands.WithMessageFields(func(msg DeleteSectionCommand) map[string]any {
			return logFields(msg.Site, "page", msg.PageID, map[string]any{"section_id": msg.SectionID.String()})
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[DeleteSectionCommand].Execute.
func (h *DeleteSectionHandler) Execute(ctx context.Context, msg DeleteSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}
