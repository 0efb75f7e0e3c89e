package attendance

import (
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockRequest struct {
	Position geo.ReportedPosition `json:"position"`
}

// HistoryQuery bounds the caller's attendance history by inclusive YYYY-MM-DD dates.
type HistoryQuery struct {
	From string
	To   string
}

// Filter validates the query and scopes it to userID.
func (q HistoryQuery) Filter(userID string) (AttendanceFilter, error) {
	filter := AttendanceFilter{UserID: &userID}
	if q.From != "" {
		from, ok := validator.IsValidDate(q.From)
		if !ok {
			return AttendanceFilter{}, validator.Single("from", "from must be in YYYY-MM-DD format")
		}
		filter.From = &from
	}
	if q.To != "" {
		to, ok := validator.IsValidDate(q.To)
		if !ok {
			return AttendanceFilter{}, validator.Single("to", "to must be in YYYY-MM-DD format")
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return AttendanceFilter{}, validator.Single("to", "to must not be before from")
	}
	return filter, nil
}

type AttendanceFilter struct {
	UserID *string
	From   *time.Time
	To     *time.Time
}

func (f AttendanceFilter) Matches(r Record) bool {
	if f.UserID != nil && r.UserID != *f.UserID {
		return false
	}
	if f.From != nil && r.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && r.Date.After(*f.To) {
		return false
	}
	return true
}

type AttendanceResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Date        string          `json:"date"`
	ClockIn     *string         `json:"clock_in,omitempty"`
	ClockOut    *string         `json:"clock_out,omitempty"`
	LocationIn  *geo.Coordinate `json:"location_in,omitempty"`
	LocationOut *geo.Coordinate `json:"location_out,omitempty"`
	Status      Status          `json:"status"`
	StatusLabel string          `json:"status_label"`
}

// NewAttendanceResponse renders clock times as local wall-clock strings in loc.
func NewAttendanceResponse(r Record, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date.Format("2006-01-02"),
		ClockIn:     clockString(r.ClockIn, loc),
		ClockOut:    clockString(r.ClockOut, loc),
		LocationIn:  r.LocationIn,
		LocationOut: r.LocationOut,
		Status:      r.Status,
		StatusLabel: r.Status.Label(),
	}
}

func clockString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format("15:04:05")
	return &s
}

type StatusResponse struct {
	State          geofence.AttendanceState `json:"state"`
	DistanceMeters *float64                 `json:"distance_meters,omitempty"`
	Action         Action                   `json:"action"`
	Enabled        bool                     `json:"enabled"`
	Message        string                   `json:"message,omitempty"`
	Today          *AttendanceResponse      `json:"today,omitempty"`
}
