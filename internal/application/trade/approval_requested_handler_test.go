package trade

import (
	"context"
	"testing"

	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestApprovalRequestedHandler_EventTypes(t *testing.T) {
	handler := NewApprovalRequestedHandler(zap.NewNop())

	eventTypes := handler.EventTypes()
	require.Len(t, eventTypes, 1)
	assert.Equal(t, trade.EventTypeApprovalRequested, eventTypes[0])
}

func TestApprovalRequestedHandler_Handle(t *testing.T) {
	handler := NewApprovalRequestedHandler(zap.NewNop())

	t.Run("handles ApprovalRequestedEvent", func(t *testing.T) {
		requestID := uuid.New()
		event := &trade.ApprovalRequestedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(
				trade.EventTypeApprovalRequested,
				trade.AggregateTypeApprovalRequest,
				requestID,
			),
			RequestID:   requestID,
			CustomerID:  uuid.New(),
			RequestedBy: "nurse-amy",
		}

		err := handler.Handle(context.Background(), event)
		require.NoError(t, err)
	})

	t.Run("rejects unexpected event type", func(t *testing.T) {
		order, err := trade.NewOrder("ORD-20260415-11AA22BB", uuid.New(), uuid.New(), "Hydration Boost", pricing.PackageSingle, 1)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), trade.NewOrderCreatedEvent(order))
		assert.Error(t, err)
	})
}
