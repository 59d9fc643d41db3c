package trade

import (
	"context"
	"fmt"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ApprovalRequestedHandler handles ApprovalRequestedEvent and surfaces
// quotes awaiting a decision so managers can pick them up.
type ApprovalRequestedHandler struct {
	logger *zap.Logger
}

// NewApprovalRequestedHandler creates a new handler for approval requested events
func NewApprovalRequestedHandler(logger *zap.Logger) *ApprovalRequestedHandler {
	return &ApprovalRequestedHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *ApprovalRequestedHandler) EventTypes() []string {
	return []string{trade.EventTypeApprovalRequested}
}

// Handle processes an ApprovalRequestedEvent
func (h *ApprovalRequestedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	requestedEvent, ok := event.(*trade.ApprovalRequestedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", trade.EventTypeApprovalRequested),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeApprovalRequested, event.EventType())
	}

	h.logger.Warn("discount approval awaiting decision",
		zap.String("request_id", requestedEvent.RequestID.String()),
		zap.String("customer_id", requestedEvent.CustomerID.String()),
		zap.String("requested_by", requestedEvent.RequestedBy),
	)
	return nil
}

// Ensure ApprovalRequestedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ApprovalRequestedHandler)(nil)
