package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository stores requests append-only; only the status fields change after creation.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// List returns matching requests, newest first.
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	// UpdateStatus moves a request from `from` to `to` as one write.
	// It fails with ErrLeaveRequestAlreadyProcessed when the stored status is not `from`.
	UpdateStatus(ctx context.Context, id string, from, to LeaveRequestStatus, resolvedBy string, resolvedAt time.Time) (LeaveRequest, error)
}
