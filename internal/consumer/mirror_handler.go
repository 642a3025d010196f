package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/vinifranco48/performace/internal/domain"
	"github.com/vinifranco48/performace/internal/events"
)

// MirrorHandler appends every recorded run to a second table, enforcing the
// same header contract as the primary sheet.
type MirrorHandler struct {
	connector domain.Connector
	logger    *zap.Logger
}

// NewMirrorHandler constructs a handler writing through connector.
func NewMirrorHandler(connector domain.Connector, logger *zap.Logger) *MirrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MirrorHandler{connector: connector, logger: logger}
}

// Handle appends run.recorded payloads and ignores other event types.
func (h *MirrorHandler) Handle(ctx context.Context, msg Message) error {
	if msg.EventType != events.RunRecordedType {
		h.logger.Debug("skipping event", zap.String("event_type", msg.EventType))
		return nil
	}

	var event events.RunRecorded
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode run.recorded: %w", err)
	}
	entry, err := domain.EntryFromEvent(event)
	if err != nil {
		return fmt.Errorf("run.recorded %s: %w", event.EntryID, err)
	}

	table, err := h.connector.Connect(ctx)
	if err != nil {
		return &domain.ConnectionError{Err: err}
	}
	if err := domain.EnsureSchema(ctx, table); err != nil {
		return err
	}
	if err := domain.AppendRow(ctx, table, entry.Values()); err != nil {
		return err
	}

	h.logger.Info("run mirrored", zap.String("entry_id", event.EntryID), zap.String("date", event.Date))
	return nil
}
