package notification

import (
	"context"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
)

// Service defines the notification service interface. Delivery is best effort:
// events for users without an open stream are dropped.
type Service interface {
	LeaveSubmitted(ctx context.Context, request leave.LeaveRequest)
	LeaveResolved(ctx context.Context, request leave.LeaveRequest)

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan Notification, func())

	// Stop drains queued events and stops the background workers.
	Stop()
}
