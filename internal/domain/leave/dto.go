package leave

import (
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	Type       LeaveType            `json:"type"`
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
	Reason     string               `json:"reason"`
	Attachment *string              `json:"attachment,omitempty"`
	Position   geo.ReportedPosition `json:"position"`
}

// Period is a validated inclusive date range.
type Period struct {
	Start time.Time
	End   time.Time
	Days  int
}

// Check runs the form checks in fixed order (required fields, date ordering,
// balance) and stops at the first failure.
func (r *CreateLeaveRequestRequest) Check(remainingBalance int) (Period, error) {
	if err := r.checkRequired(); err != nil {
		return Period{}, err
	}

	period, err := r.checkDates()
	if err != nil {
		return Period{}, err
	}

	if r.Type.ConsumesBalance() && period.Days > remainingBalance {
		return Period{}, &BalanceError{Remaining: remainingBalance, Requested: period.Days}
	}

	return period, nil
}

func (r *CreateLeaveRequestRequest) checkRequired() error {
	if r.Type == "" {
		r.Type = LeaveTypeDaily
	}
	if !r.Type.Valid() {
		return validator.Single("type", "unknown leave type")
	}
	if validator.IsEmpty(r.StartDate) || validator.IsEmpty(r.EndDate) || validator.IsEmpty(r.Reason) {
		return validator.Single("form", "please fill in all required fields")
	}
	return nil
}

func (r *CreateLeaveRequestRequest) checkDates() (Period, error) {
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		return Period{}, validator.Single("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		return Period{}, validator.Single("end_date", "end_date must be in YYYY-MM-DD format")
	}

	days := Duration(start, end)
	if days <= 0 {
		return Period{}, validator.Single("end_date", "end date must not be before the start date")
	}
	return Period{Start: start, End: end, Days: days}, nil
}

// EvaluateSubmission decides a submission from the form, the leave-submission
// verdict and the applicant's remaining balance. The location rule is checked
// first and applies regardless of the form's validity. On success the returned
// request is Pending and routed to the applicant's manager; it has no ID yet.
func EvaluateSubmission(applicant user.User, req CreateLeaveRequestRequest, state geofence.LeaveSubmissionState, remainingBalance int, now time.Time) (LeaveRequest, error) {
	if state == geofence.LeaveSubmissionBlocked {
		return LeaveRequest{}, ErrSubmissionOnSite
	}

	period, err := req.Check(remainingBalance)
	if err != nil {
		return LeaveRequest{}, err
	}

	return LeaveRequest{
		UserID:             applicant.ID,
		UserName:           applicant.Name,
		UserEmail:          applicant.Email,
		Department:         applicant.Department,
		Type:               req.Type,
		StartDate:          period.Start,
		EndDate:            period.End,
		Duration:           period.Days,
		Reason:             req.Reason,
		Attachment:         req.Attachment,
		Status:             LeaveRequestStatusPending,
		TargetManagerEmail: applicant.ManagerEmail,
		CreatedAt:          now,
	}, nil
}

// MyRequestsQuery narrows the caller's own request history. Empty fields match everything.
type MyRequestsQuery struct {
	Status string
	Type   string
}

// Filter validates the query and scopes it to userID.
func (q MyRequestsQuery) Filter(userID string) (LeaveRequestFilter, error) {
	filter := LeaveRequestFilter{UserID: &userID}
	if q.Status != "" {
		status := LeaveRequestStatus(q.Status)
		if !status.Valid() {
			return LeaveRequestFilter{}, validator.Single("status", "status must be pending, approved or rejected")
		}
		filter.Status = &status
	}
	if q.Type != "" {
		t := LeaveType(q.Type)
		if !t.Valid() {
			return LeaveRequestFilter{}, validator.Single("type", "unknown leave type")
		}
		filter.Type = &t
	}
	return filter, nil
}

type LeaveRequestFilter struct {
	UserID *string
	Status *LeaveRequestStatus
	Type   *LeaveType
	// Overlapping range, inclusive
	From *time.Time
	To   *time.Time
}

func (f LeaveRequestFilter) Matches(r LeaveRequest) bool {
	if f.UserID != nil && r.UserID != *f.UserID {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.Type != nil && r.Type != *f.Type {
		return false
	}
	if f.From != nil && r.EndDate.Before(DateOf(*f.From)) {
		return false
	}
	if f.To != nil && r.StartDate.After(DateOf(*f.To)) {
		return false
	}
	return true
}

type LeaveTypeResponse struct {
	Code            LeaveType `json:"code"`
	Label           string    `json:"label"`
	ConsumesBalance bool      `json:"consumes_balance"`
}

type BalanceResponse struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

type LeaveRequestResponse struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"user_id"`
	UserName           string             `json:"user_name"`
	UserEmail          string             `json:"user_email"`
	Department         string             `json:"department"`
	Type               LeaveType          `json:"type"`
	TypeLabel          string             `json:"type_label"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	Duration           int                `json:"duration"`
	Reason             string             `json:"reason"`
	Attachment         *string            `json:"attachment,omitempty"`
	Status             LeaveRequestStatus `json:"status"`
	TargetManagerEmail string             `json:"target_manager_email"`
	ResolvedBy         *string            `json:"resolved_by,omitempty"`
	ResolvedAt         *string            `json:"resolved_at,omitempty"`
	CreatedAt          string             `json:"created_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           r.UserName,
		UserEmail:          r.UserEmail,
		Department:         string(r.Department),
		Type:               r.Type,
		TypeLabel:          r.Type.Label(),
		StartDate:          r.StartDate.Format(validator.DateLayout),
		EndDate:            r.EndDate.Format(validator.DateLayout),
		Duration:           r.Duration,
		Reason:             r.Reason,
		Attachment:         r.Attachment,
		Status:             r.Status,
		TargetManagerEmail: r.TargetManagerEmail,
		ResolvedBy:         r.ResolvedBy,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResolvedAt != nil {
		at := r.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &at
	}
	return resp
}
