package pagescmd

import (
	"context"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitekit/internal/commands"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const saveDraftMessageType = "sitekit.pages.save"

// SaveDraftCommand snapshots the supplied block payload into a new draft
// revision of the page.
type SaveDraftCommand struct {
	PageID  uuid.UUID       `json:"page_id"`
	Title   string          `json:"title,omitempty"`
	Blocks  json.RawMessage `json:"blocks"`
	SavedBy *uuid.UUID      `json:"saved_by,omitempty"`
}

// Type implements command.Message.
func (SaveDraftCommand) Type() string { return saveDraftMessageType }

// Validate ensures the command carries the required identifiers before it
// reaches handlers.
func (m SaveDraftCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("sitekit.pages.save.page_id_required", "page_id is required")
	}
	if m.SavedBy != nil && *m.SavedBy == uuid.Nil {
		errs["saved_by"] = validation.NewError("sitekit.pages.save.saved_by_invalid", "saved_by must be a valid identifier when provided")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveDraftHandler persists editor drafts via the page service.
type SaveDraftHandler struct {
	inner *commands.Handler[SaveDraftCommand]
}

// NewSaveDraftHandler constructs a handler wired to the provided page service.
func NewSaveDraftHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveDraftCommand]) *SaveDraftHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SaveDraftCommand) error {
		req := pages.SavePageRequest{
			PageID:    msg.PageID,
			Title:     msg.Title,
			RawBlocks: msg.Blocks,
		}
		if msg.SavedBy != nil {
			req.SavedBy = *msg.SavedBy
		}
		_, err := service.Save(ctx, req)
		return err
	}

	handlerOpts := []commands.HandlerOption[SaveDraftCommand]{
		commands.WithLogger[SaveDraftCommand](baseLogger),
		commands.WithOperation[SaveDraftCommand]("pages.save"),
		commands.WithMessageFields(func(msg SaveDraftCommand) map[string]any {
			fields := map[string]any{}
			if msg.PageID != uuid.Nil {
				fields["page_id"] = msg.PageID
			}
			if msg.SavedBy != nil && *msg.SavedBy != uuid.Nil {
				fields["saved_by"] = *msg.SavedBy
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveDraftCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveDraftHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveDraftCommand].Execute.
func (h *SaveDraftHandler) Execute(ctx context.Context, msg SaveDraftCommand) error {
	return h.inner.Execute(ctx, msg)
}
