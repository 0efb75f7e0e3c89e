package attendance

import (
	"context"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Status evaluates whether the clock action is currently enabled
	Status(ctx context.Context, actor user.User, source geo.PositionSource) (StatusResponse, error)

	// Clock performs the next action of today's cycle: check-in, then check-out
	Clock(ctx context.Context, actor user.User, source geo.PositionSource) (AttendanceResponse, error)

	// ListMine retrieves attendance records for the authenticated user
	ListMine(ctx context.Context, actor user.User, query HistoryQuery) ([]AttendanceResponse, error)
}
