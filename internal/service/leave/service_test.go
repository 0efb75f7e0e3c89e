package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/notification"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
	"github.com/ghiras-nahda/hris-backend-go/internal/repository/memory"
	geofenceService "github.com/ghiras-nahda/hris-backend-go/internal/service/geofence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var office = geo.Coordinate{Latitude: 24.7136, Longitude: 46.6753}

var (
	admin = user.User{ID: "u1", Name: "System Admin", Email: "admin@ghiras-nahda.org", Role: user.RoleAdmin, TotalAnnualBalance: 30}
	hr    = user.User{ID: "u2", Name: "HR Manager", Email: "hr@ghiras-nahda.org", Role: user.RoleManager, TotalAnnualBalance: 21}
	other = user.User{ID: "u3", Name: "Finance Manager", Email: "finance@ghiras-nahda.org", Role: user.RoleManager, TotalAnnualBalance: 21}
	staff = user.User{ID: "u4", Name: "Staff Member", Email: "staff@ghiras-nahda.org", Role: user.RoleEmployee, TotalAnnualBalance: 21, ManagerEmail: "HR@ghiras-nahda.org"}
)

type recordingNotifier struct {
	mu        sync.Mutex
	submitted []leave.LeaveRequest
	resolved  []leave.LeaveRequest
}

func (n *recordingNotifier) LeaveSubmitted(ctx context.Context, r leave.LeaveRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, r)
}

func (n *recordingNotifier) LeaveResolved(ctx context.Context, r leave.LeaveRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolved = append(n.resolved, r)
}

func (n *recordingNotifier) Subscribe(ctx context.Context, userID string) (<-chan notification.Notification, func()) {
	ch := make(chan notification.Notification)
	close(ch)
	return ch, func() {}
}

func (n *recordingNotifier) Stop() {}

func newTestLeaveService(t *testing.T) (leave.LeaveService, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	svc := NewLeaveService(
		memory.NewLeaveRequestRepository(memory.NewDB()),
		geofenceService.NewGeolocator(geofence.DefaultPolicy(office)),
		notifier,
	)
	svc.(*LeaveServiceImpl).now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return svc, notifier
}

func reportedAt(meters float64) geo.ReportedPosition {
	return geo.At(geo.Destination(office, 0, meters))
}

func dailyRequest(start, end string, meters float64) leave.CreateLeaveRequestRequest {
	return leave.CreateLeaveRequestRequest{
		Type:      leave.LeaveTypeDaily,
		StartDate: start,
		EndDate:   end,
		Reason:    "family visit",
		Position:  reportedAt(meters),
	}
}

func TestLeave_SubmitAndApproveConsumesBalance(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newTestLeaveService(t)

	created, err := svc.Submit(ctx, staff, dailyRequest("2026-11-01", "2026-11-05", 600))
	require.NoError(t, err)
	assert.Equal(t, 5, created.Duration)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	assert.Equal(t, "HR@ghiras-nahda.org", created.TargetManagerEmail)
	assert.Len(t, notifier.submitted, 1)

	balance, err := svc.GetBalance(ctx, staff)
	require.NoError(t, err)
	assert.Equal(t, 21, balance.Remaining, "pending requests do not consume balance")

	approved, err := svc.Approve(ctx, hr, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ResolvedBy)
	assert.Equal(t, "HR Manager", *approved.ResolvedBy)
	assert.Len(t, notifier.resolved, 1)

	balance, err = svc.GetBalance(ctx, staff)
	require.NoError(t, err)
	assert.Equal(t, leave.BalanceResponse{Total: 21, Used: 5, Remaining: 16}, balance)
}

func TestLeave_InsufficientBalanceStoresNothing(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newTestLeaveService(t)

	long, err := svc.Submit(ctx, staff, dailyRequest("2026-11-01", "2026-11-19", 600))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, admin, long.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, staff, dailyRequest("2026-12-01", "2026-12-08", 600))
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	var balanceErr *leave.BalanceError
	require.ErrorAs(t, err, &balanceErr)
	assert.Equal(t, 2, balanceErr.Remaining)
	assert.Equal(t, 8, balanceErr.Requested)

	mine, err := svc.ListMine(ctx, staff, leave.MyRequestsQuery{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Len(t, notifier.submitted, 1)
}

func TestLeave_NonConsumingTypeIgnoresBalance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	req := dailyRequest("2026-11-01", "2026-12-30", 600)
	req.Type = leave.LeaveTypeSick
	created, err := svc.Submit(ctx, staff, req)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, hr, created.ID)
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, staff)
	require.NoError(t, err)
	assert.Equal(t, 21, balance.Remaining)
}

func TestLeave_SubmitOnSiteIsBlocked(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newTestLeaveService(t)

	_, err := svc.Submit(ctx, staff, dailyRequest("2026-11-01", "2026-11-02", 200))
	assert.ErrorIs(t, err, leave.ErrSubmissionOnSite)
	assert.ErrorIs(t, err, geofence.ErrPolicyBlocked)

	// the location rule wins over an otherwise invalid form
	_, err = svc.Submit(ctx, staff, leave.CreateLeaveRequestRequest{Position: reportedAt(10)})
	assert.ErrorIs(t, err, leave.ErrSubmissionOnSite)

	mine, err := svc.ListMine(ctx, staff, leave.MyRequestsQuery{})
	require.NoError(t, err)
	assert.Empty(t, mine)
	assert.Empty(t, notifier.submitted)
}

func TestLeave_SubmitWithoutPositionFailsOpen(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	req := dailyRequest("2026-11-01", "2026-11-01", 0)
	req.Position = geo.ReportedPosition{Error: "permission denied"}

	created, err := svc.Submit(ctx, staff, req)
	require.NoError(t, err)
	assert.Equal(t, 1, created.Duration)
}

func TestLeave_SubmitValidationOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	_, err := svc.Submit(ctx, staff, dailyRequest("2026-11-05", "2026-11-01", 600))
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "end_date")

	req := dailyRequest("2026-11-01", "2026-11-01", 600)
	req.Reason = " "
	_, err = svc.Submit(ctx, staff, req)
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "form")
}

func TestLeave_ApprovalRouting(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	created, err := svc.Submit(ctx, staff, dailyRequest("2026-11-01", "2026-11-02", 600))
	require.NoError(t, err)

	for _, tc := range []struct {
		approver user.User
		visible  int
	}{
		{admin, 1},
		{hr, 1},
		{other, 0},
	} {
		pending, err := svc.ListPendingApprovals(ctx, tc.approver)
		require.NoError(t, err)
		assert.Len(t, pending, tc.visible, tc.approver.Name)
	}

	_, err = svc.ListPendingApprovals(ctx, staff)
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	_, err = svc.Approve(ctx, other, created.ID)
	assert.ErrorIs(t, err, leave.ErrNotRoutedToApprover)

	_, err = svc.GetRequest(ctx, other, created.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	_, err = svc.GetRequest(ctx, staff, created.ID)
	assert.NoError(t, err)
}

func TestLeave_ResolvedRequestCannotChangeAgain(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	created, err := svc.Submit(ctx, staff, dailyRequest("2026-11-01", "2026-11-02", 600))
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, hr, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, rejected.Status)

	_, err = svc.Approve(ctx, admin, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	pending, err := svc.ListPendingApprovals(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLeave_ConcurrentApproveAndRejectResolveOnce(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newTestLeaveService(t)

	created, err := svc.Submit(ctx, staff, dailyRequest("2026-11-01", "2026-11-02", 600))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() { defer wg.Done(); _, errs[0] = svc.Approve(ctx, admin, created.ID) }()
	go func() { defer wg.Done(); _, errs[1] = svc.Reject(ctx, hr, created.ID) }()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, notifier.resolved, 1)
}

func TestLeave_ListTypes(t *testing.T) {
	svc, _ := newTestLeaveService(t)

	types := svc.ListTypes(context.Background())
	require.Len(t, types, 12)
	consuming := 0
	for _, lt := range types {
		if lt.ConsumesBalance {
			consuming++
			assert.Equal(t, leave.LeaveTypeDaily, lt.Code)
		}
	}
	assert.Equal(t, 1, consuming)
}

func TestLeave_ListMineFiltersByStatusAndType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	daily, err := svc.Submit(ctx, staff, dailyRequest("2026-11-01", "2026-11-02", 600))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, hr, daily.ID)
	require.NoError(t, err)

	sick := dailyRequest("2026-11-10", "2026-11-10", 600)
	sick.Type = leave.LeaveTypeSick
	_, err = svc.Submit(ctx, staff, sick)
	require.NoError(t, err)

	approved, err := svc.ListMine(ctx, staff, leave.MyRequestsQuery{Status: "approved"})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, daily.ID, approved[0].ID)

	sickOnly, err := svc.ListMine(ctx, staff, leave.MyRequestsQuery{Type: "sick", Status: "pending"})
	require.NoError(t, err)
	require.Len(t, sickOnly, 1)
	assert.Equal(t, leave.LeaveTypeSick, sickOnly[0].Type)

	others, err := svc.ListMine(ctx, hr, leave.MyRequestsQuery{})
	require.NoError(t, err)
	assert.Empty(t, others)

	var verrs validator.ValidationErrors
	_, err = svc.ListMine(ctx, staff, leave.MyRequestsQuery{Status: "cancelled"})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "status")

	_, err = svc.ListMine(ctx, staff, leave.MyRequestsQuery{Type: "sabbatical"})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "type")
}
