package pagescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitekit/internal/commands"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const revertPageMessageType = "sitekit.pages.revert"

// RevertPageCommand copies a historical revision into a new draft head.
type RevertPageCommand struct {
	PageID     uuid.UUID  `json:"page_id"`
	RevisionID uuid.UUID  `json:"revision_id"`
	RevertedBy *uuid.UUID `json:"reverted_by,omitempty"`
}

// Type implements command.Message.
func (RevertPageCommand) Type() string { return revertPageMessageType }

// Validate ensures the command captures the required identifiers before reaching handlers.
func (m RevertPageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("sitekit.pages.revert.page_id_required", "page_id is required")
	}
	if m.RevisionID == uuid.Nil {
		errs["revision_id"] = validation.NewError("sitekit.pages.revert.revision_id_required", "revision_id is required")
	}
	if m.RevertedBy != nil && *m.RevertedBy == uuid.Nil {
		errs["reverted_by"] = validation.NewError("sitekit.pages.revert.reverted_by_invalid", "reverted_by must be a valid identifier when provided")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RevertPageHandler reverts pages via the page service.
type RevertPageHandler struct {
	inner *commands.Handler[RevertPageCommand]
}

// NewRevertPageHandler constructs a handler wired to the provided page service.
func NewRevertPageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RevertPageCommand]) *RevertPageHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RevertPageCommand) error {
		req := pages.RevertPageRequest{
			PageID:     msg.PageID,
			RevisionID: msg.RevisionID,
		}
		if msg.RevertedBy != nil {
			req.RevertedBy = *msg.RevertedBy
		}
		_, err := service.Revert(ctx, req)
		return err
	}

	handlerOpts := []commands.HandlerOption[RevertPageCommand]{
		commands.WithLogger[RevertPageCommand](baseLogger),
		commands.WithOperation[RevertPageCommand]("pages.revert"),
		commands.WithMessageFields(func(msg RevertPageCommand) map[string]any {
			fields := map[string]any{}
			if msg.PageID != uuid.Nil {
				fields["page_id"] = msg.PageID
			}
			if msg.RevisionID != uuid.Nil {
				fields["revision_id"] = msg.RevisionID
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RevertPageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RevertPageHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RevertPageCommand].Execute.
func (h *RevertPageHandler) Execute(ctx context.Context, msg RevertPageCommand) error {
	return h.inner.Execute(ctx, msg)
}
