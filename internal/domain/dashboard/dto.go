package dashboard

import (
	"context"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/attendance"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

// RecentRequestLimit is how many own requests the dashboard lists.
const RecentRequestLimit = 5

type DashboardResponse struct {
	User             user.UserResponse              `json:"user"`
	RemainingBalance int                            `json:"remaining_balance"`
	PendingRequests  int                            `json:"pending_requests"`
	Today            *attendance.AttendanceResponse `json:"today,omitempty"`
	RecentRequests   []leave.LeaveRequestResponse   `json:"recent_requests"`
}

type DashboardService interface {
	Get(ctx context.Context, viewer user.User) (DashboardResponse, error)
}
