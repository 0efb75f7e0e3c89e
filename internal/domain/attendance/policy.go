package attendance

import (
	"fmt"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
)

// Action is what the single clock button does next.
type Action string

const (
	ActionClockIn  Action = "clock_in"
	ActionClockOut Action = "clock_out"
	ActionNone     Action = "none"
)

// NextAction derives the action from today's record, nil when there is none.
func NextAction(today *Record) Action {
	switch {
	case today == nil:
		return ActionClockIn
	case today.ClockOut == nil:
		return ActionClockOut
	default:
		return ActionNone
	}
}

// Evaluation is the attendance verdict for a subject at one moment.
type Evaluation struct {
	State   geofence.AttendanceState
	Action  Action
	Enabled bool
	// Err explains why the action is disabled.
	Err error
}

// Evaluate combines the location verdict with today's record. The location
// verdict wins: outside the radius the action is disabled whatever the record says.
func Evaluate(today *Record, state geofence.AttendanceState) Evaluation {
	eval := Evaluation{State: state, Action: NextAction(today)}

	switch state {
	case geofence.AttendanceReady:
	case geofence.AttendanceOutOfRange:
		eval.Err = ErrOutsideAttendanceRadius
		return eval
	case geofence.AttendanceError:
		eval.Err = ErrLocationUnavailable
		return eval
	default:
		panic(fmt.Sprintf("attendance: unhandled state %q", string(state)))
	}

	if eval.Action == ActionNone {
		eval.Err = ErrAttendanceComplete
		return eval
	}

	eval.Enabled = true
	return eval
}

// Apply performs action on today's record and returns the record to store.
// Clock-out keeps the original check-in time and location.
func Apply(today *Record, action Action, userID string, day, now time.Time, position geo.Coordinate) (Record, error) {
	switch action {
	case ActionClockIn:
		if today != nil {
			return Record{}, ErrAttendanceComplete
		}
		at, loc := now, position
		return Record{
			UserID:     userID,
			Date:       day,
			ClockIn:    &at,
			LocationIn: &loc,
			Status:     StatusPresent,
			CreatedAt:  now,
			UpdatedAt:  now,
		}, nil
	case ActionClockOut:
		if today == nil {
			return Record{}, ErrNotCheckedIn
		}
		if today.ClockOut != nil {
			return Record{}, ErrAttendanceComplete
		}
		updated := *today
		at, loc := now, position
		updated.ClockOut = &at
		updated.LocationOut = &loc
		updated.UpdatedAt = now
		return updated, nil
	case ActionNone:
		return Record{}, ErrAttendanceComplete
	default:
		panic(fmt.Sprintf("attendance: unhandled action %q", string(action)))
	}
}
