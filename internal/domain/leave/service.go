package leave

import (
	"context"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Type
	ListTypes(ctx context.Context) []LeaveTypeResponse
	// Balance
	GetBalance(ctx context.Context, actor user.User) (BalanceResponse, error)
	// Request
	Submit(ctx context.Context, actor user.User, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, actor user.User, query MyRequestsQuery) ([]LeaveRequestResponse, error)
	ListPendingApprovals(ctx context.Context, approver user.User) ([]LeaveRequestResponse, error)
	GetRequest(ctx context.Context, actor user.User, id string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, approver user.User, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, approver user.User, id string) (LeaveRequestResponse, error)
}
