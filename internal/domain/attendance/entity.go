package attendance

import (
	"fmt"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
)

type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusAbsent     Status = "absent"
	StatusEarlyLeave Status = "early_leave"
)

func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "حضور"
	case StatusLate:
		return "تأخير"
	case StatusAbsent:
		return "غياب"
	case StatusEarlyLeave:
		return "خروج مبكر"
	default:
		panic(fmt.Sprintf("attendance: unhandled status %q", string(s)))
	}
}

// Record is one subject's attendance for one calendar day.
type Record struct {
	ID          string
	UserID      string
	Date        time.Time // calendar day, UTC midnight
	ClockIn     *time.Time
	ClockOut    *time.Time
	LocationIn  *geo.Coordinate
	LocationOut *geo.Coordinate
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Complete reports whether both halves of the day's cycle are recorded.
func (r Record) Complete() bool {
	return r.ClockIn != nil && r.ClockOut != nil
}

func (r Record) Key() Key {
	return NewKey(r.UserID, r.Date)
}

// Key identifies the single record a subject may have on a calendar day.
type Key struct {
	UserID string
	Date   string // YYYY-MM-DD
}

func NewKey(userID string, day time.Time) Key {
	return Key{UserID: userID, Date: day.Format("2006-01-02")}
}

// Day returns the calendar date of t in loc, at UTC midnight.
func Day(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
