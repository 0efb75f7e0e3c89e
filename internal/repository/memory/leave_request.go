package memory

import (
	"context"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
)

type leaveRequestRepositoryImpl struct {
	db *DB
}

func NewLeaveRequestRepository(db *DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if request.ID == "" {
		request.ID = newID()
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}

	r.db.requestIndex[request.ID] = len(r.db.requests)
	r.db.requests = append(r.db.requests, request)
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	i, ok := r.db.requestIndex[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.db.requests[i], nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	result := make([]leave.LeaveRequest, 0)
	for i := len(r.db.requests) - 1; i >= 0; i-- {
		if req := r.db.requests[i]; filter.Matches(req) {
			result = append(result, req)
		}
	}
	return result, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to leave.LeaveRequestStatus, resolvedBy string, resolvedAt time.Time) (leave.LeaveRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i, ok := r.db.requestIndex[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}

	req := r.db.requests[i]
	if req.Status != from || !leave.CanTransition(from, to) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	req.Status = to
	req.ResolvedBy = &resolvedBy
	req.ResolvedAt = &resolvedAt
	r.db.requests[i] = req
	return req, nil
}
