package leave

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

type LeaveType string

const (
	LeaveTypeDaily              LeaveType = "daily"
	LeaveTypeSick               LeaveType = "sick"
	LeaveTypeUnpaid             LeaveType = "unpaid"
	LeaveTypeBereavement        LeaveType = "bereavement"
	LeaveTypeMarriage           LeaveType = "marriage"
	LeaveTypeHajj               LeaveType = "hajj"
	LeaveTypeMaternity          LeaveType = "maternity"
	LeaveTypePaternity          LeaveType = "paternity"
	LeaveTypeOvertime           LeaveType = "overtime"
	LeaveTypeWorkFromHome       LeaveType = "work_from_home"
	LeaveTypeExam               LeaveType = "exam"
	LeaveTypeExternalAssignment LeaveType = "external_assignment"
)

// LeaveTypes lists every variant in display order.
var LeaveTypes = []LeaveType{
	LeaveTypeDaily,
	LeaveTypeSick,
	LeaveTypeUnpaid,
	LeaveTypeBereavement,
	LeaveTypeMarriage,
	LeaveTypeHajj,
	LeaveTypeMaternity,
	LeaveTypePaternity,
	LeaveTypeOvertime,
	LeaveTypeWorkFromHome,
	LeaveTypeExam,
	LeaveTypeExternalAssignment,
}

func (t LeaveType) Valid() bool {
	for _, v := range LeaveTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ConsumesBalance reports whether approved days of this type are deducted from
// the annual allowance. Exactly one variant does.
func (t LeaveType) ConsumesBalance() bool {
	switch t {
	case LeaveTypeDaily:
		return true
	case LeaveTypeSick, LeaveTypeUnpaid, LeaveTypeBereavement, LeaveTypeMarriage,
		LeaveTypeHajj, LeaveTypeMaternity, LeaveTypePaternity, LeaveTypeOvertime,
		LeaveTypeWorkFromHome, LeaveTypeExam, LeaveTypeExternalAssignment:
		return false
	default:
		panic(fmt.Sprintf("leave: unhandled leave type %q", string(t)))
	}
}

func (t LeaveType) Label() string {
	switch t {
	case LeaveTypeDaily:
		return "إجازة يومية"
	case LeaveTypeSick:
		return "إجازة مرضية"
	case LeaveTypeUnpaid:
		return "إجازة بدون راتب"
	case LeaveTypeBereavement:
		return "إجازة وفاة"
	case LeaveTypeMarriage:
		return "إجازة زواج"
	case LeaveTypeHajj:
		return "إجازة حج"
	case LeaveTypeMaternity:
		return "إجازة وضع"
	case LeaveTypePaternity:
		return "إجازة أبوة"
	case LeaveTypeOvertime:
		return "عمل إضافي"
	case LeaveTypeWorkFromHome:
		return "عمل من المنزل"
	case LeaveTypeExam:
		return "إجازة امتحان"
	case LeaveTypeExternalAssignment:
		return "مهمة عمل خارجية"
	default:
		panic(fmt.Sprintf("leave: unhandled leave type %q", string(t)))
	}
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

func (s LeaveRequestStatus) Valid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// CanTransition allows only Pending -> Approved and Pending -> Rejected.
func CanTransition(from, to LeaveRequestStatus) bool {
	switch from {
	case LeaveRequestStatusPending:
		return to == LeaveRequestStatusApproved || to == LeaveRequestStatusRejected
	case LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return false
	default:
		panic(fmt.Sprintf("leave: unhandled status %q", string(from)))
	}
}

// LeaveRequest entity
type LeaveRequest struct {
	ID     string
	UserID string

	// Denormalized from the submitter for display
	UserName   string
	UserEmail  string
	Department user.Department

	Type LeaveType

	// Calendar dates, inclusive, at UTC midnight
	StartDate time.Time
	EndDate   time.Time
	Duration  int

	Reason     string
	Attachment *string

	Status     LeaveRequestStatus
	ResolvedBy *string
	ResolvedAt *time.Time

	// TargetManagerEmail is the routing target the request is addressed to
	TargetManagerEmail string

	CreatedAt time.Time
}

// Covers reports whether the calendar day of d falls within the request.
func (r LeaveRequest) Covers(d time.Time) bool {
	day := DateOf(d)
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}

// DateOf truncates t to its calendar date, expressed at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Duration counts inclusive calendar days: end - start + 1.
// Results below 1 mean the range is inverted.
func Duration(start, end time.Time) int {
	return int((DateOf(end).Unix()-DateOf(start).Unix())/secondsPerDay) + 1
}

const secondsPerDay = 24 * 60 * 60

// UsedDays sums the approved, balance-consuming durations of userID's requests.
func UsedDays(requests []LeaveRequest, userID string) int {
	used := 0
	for _, r := range requests {
		if r.UserID != userID || r.Status != LeaveRequestStatusApproved || !r.Type.ConsumesBalance() {
			continue
		}
		used += r.Duration
	}
	return used
}

// RemainingBalance is the allowance left after approved balance-consuming requests.
func RemainingBalance(u user.User, requests []LeaveRequest) int {
	return u.TotalAnnualBalance - UsedDays(requests, u.ID)
}

// CanReview reports whether approver may see and resolve r: administrators see
// every request, anyone else only the requests routed to their email.
func CanReview(approver user.User, r LeaveRequest) bool {
	if approver.IsAdmin() {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(approver.Email), strings.TrimSpace(r.TargetManagerEmail))
}
