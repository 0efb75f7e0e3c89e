package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/notification"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	geofence.Locator
	notificationService notification.Service

	now func() time.Time
}

func NewLeaveService(
	leaveRequestRepository leave.LeaveRequestRepository,
	locator geofence.Locator,
	notificationService notification.Service,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		Locator:                locator,
		notificationService:    notificationService,
		now:                    time.Now,
	}
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) []leave.LeaveTypeResponse {
	types := make([]leave.LeaveTypeResponse, 0, len(leave.LeaveTypes))
	for _, t := range leave.LeaveTypes {
		types = append(types, leave.LeaveTypeResponse{
			Code:            t,
			Label:           t.Label(),
			ConsumesBalance: t.ConsumesBalance(),
		})
	}
	return types
}

func (s *LeaveServiceImpl) ownRequests(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

// GetBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, actor user.User) (leave.BalanceResponse, error) {
	requests, err := s.ownRequests(ctx, actor.ID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	used := leave.UsedDays(requests, actor.ID)
	return leave.BalanceResponse{
		Total:     actor.TotalAnnualBalance,
		Used:      used,
		Remaining: actor.TotalAnnualBalance - used,
	}, nil
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, actor user.User, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	reading := s.Locator.Locate(ctx, req.Position)
	state := s.Locator.Policy().EvaluateLeaveSubmission(reading)

	requests, err := s.ownRequests(ctx, actor.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := leave.EvaluateSubmission(actor, req, state, leave.RemainingBalance(actor, requests), s.now())
	if err != nil {
		slog.Info("leave request refused", "user_id", actor.ID, "state", state, "reason", err)
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("leave request submitted",
		"request_id", created.ID,
		"user_id", actor.ID,
		"type", created.Type,
		"duration", created.Duration,
		"target", created.TargetManagerEmail,
	)
	s.notificationService.LeaveSubmitted(ctx, created)

	return leave.NewLeaveRequestResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, actor user.User, query leave.MyRequestsQuery) ([]leave.LeaveRequestResponse, error) {
	filter, err := query.Filter(actor.ID)
	if err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListPendingApprovals implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPendingApprovals(ctx context.Context, approver user.User) ([]leave.LeaveRequestResponse, error) {
	if !approver.IsManager() {
		return nil, user.ErrManagerAccessRequired
	}

	pending := leave.LeaveRequestStatusPending
	requests, err := s.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{Status: &pending})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	visible := make([]leave.LeaveRequest, 0, len(requests))
	for _, r := range requests {
		if leave.CanReview(approver, r) {
			visible = append(visible, r)
		}
	}
	return toResponses(visible), nil
}

// GetRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, actor user.User, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.UserID != actor.ID && !(actor.IsManager() && leave.CanReview(actor, request)) {
		return leave.LeaveRequestResponse{}, user.ErrInsufficientPermissions
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, approver user.User, id string) (leave.LeaveRequestResponse, error) {
	return s.resolve(ctx, approver, id, leave.LeaveRequestStatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, approver user.User, id string) (leave.LeaveRequestResponse, error) {
	return s.resolve(ctx, approver, id, leave.LeaveRequestStatusRejected)
}

func (s *LeaveServiceImpl) resolve(ctx context.Context, approver user.User, id string, to leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	if !approver.IsManager() {
		return leave.LeaveRequestResponse{}, user.ErrManagerAccessRequired
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leave.CanReview(approver, request) {
		return leave.LeaveRequestResponse{}, leave.ErrNotRoutedToApprover
	}

	resolved, err := s.LeaveRequestRepository.UpdateStatus(ctx, id, leave.LeaveRequestStatusPending, to, approver.Name, s.now())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request resolved", "request_id", id, "status", to, "resolved_by", approver.ID)
	s.notificationService.LeaveResolved(ctx, resolved)

	return leave.NewLeaveRequestResponse(resolved), nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}
