package leave

import (
	"errors"
	"fmt"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
)

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrNotRoutedToApprover          = errors.New("leave request is not routed to you")
	ErrSubmissionOnSite             = fmt.Errorf("%w: leave requests cannot be submitted from the workplace, please submit from outside the premises", geofence.ErrPolicyBlocked)
)

// BalanceError reports a balance-consuming request longer than what remains.
type BalanceError struct {
	Remaining int
	Requested int
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("your remaining balance (%d) is not sufficient for this request (%d days)", e.Remaining, e.Requested)
}

func (e *BalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
