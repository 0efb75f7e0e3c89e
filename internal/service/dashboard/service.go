package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/attendance"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/dashboard"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

type DashboardServiceImpl struct {
	leave.LeaveRequestRepository
	attendance.AttendanceRepository

	location *time.Location
	now      func() time.Time
}

func NewDashboardService(
	leaveRequestRepository leave.LeaveRequestRepository,
	attendanceRepository attendance.AttendanceRepository,
	location *time.Location,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		AttendanceRepository:   attendanceRepository,
		location:               location,
		now:                    time.Now,
	}
}

// Get implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Get(ctx context.Context, viewer user.User) (dashboard.DashboardResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{UserID: &viewer.ID})
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := dashboard.DashboardResponse{
		User:             user.NewUserResponse(viewer),
		RemainingBalance: leave.RemainingBalance(viewer, requests),
		RecentRequests:   make([]leave.LeaveRequestResponse, 0, dashboard.RecentRequestLimit),
	}

	for i, r := range requests {
		if r.Status == leave.LeaveRequestStatusPending {
			resp.PendingRequests++
		}
		if i < dashboard.RecentRequestLimit {
			resp.RecentRequests = append(resp.RecentRequests, leave.NewLeaveRequestResponse(r))
		}
	}

	day := attendance.Day(s.now(), s.location)
	record, err := s.AttendanceRepository.Get(ctx, attendance.NewKey(viewer.ID, day))
	switch {
	case err == nil:
		today := attendance.NewAttendanceResponse(record, s.location)
		resp.Today = &today
	case errors.Is(err, attendance.ErrAttendanceNotFound):
	default:
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return resp, nil
}
