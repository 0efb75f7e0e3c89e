package geofence

import "fmt"

// AttendanceState is the attendance policy verdict for a reading.
type AttendanceState string

const (
	AttendanceReady      AttendanceState = "ready"
	AttendanceOutOfRange AttendanceState = "out_of_range"
	AttendanceError      AttendanceState = "error"
)

// LeaveSubmissionState is the leave-submission policy verdict for a reading.
type LeaveSubmissionState string

const (
	LeaveSubmissionAllowed LeaveSubmissionState = "allowed"
	LeaveSubmissionBlocked LeaveSubmissionState = "blocked"
)

// EvaluateAttendance fails closed: an unavailable position blocks the action.
func (p Policy) EvaluateAttendance(r Reading) AttendanceState {
	switch r.Classify(p.AttendanceRadiusMeters) {
	case ZoneInside:
		return AttendanceReady
	case ZoneOutside:
		return AttendanceOutOfRange
	case ZoneUnavailable, ZoneUnknown:
		return AttendanceError
	default:
		panic(fmt.Sprintf("geofence: unhandled zone %d", r.Classify(p.AttendanceRadiusMeters)))
	}
}

// EvaluateLeaveSubmission fails open: an unavailable position is treated as far away.
func (p Policy) EvaluateLeaveSubmission(r Reading) LeaveSubmissionState {
	switch r.Classify(p.LeaveExclusionRadiusMeters) {
	case ZoneInside:
		return LeaveSubmissionBlocked
	case ZoneOutside, ZoneUnavailable:
		return LeaveSubmissionAllowed
	case ZoneUnknown:
		// no request was made; same outcome as a failed one
		return LeaveSubmissionAllowed
	default:
		panic(fmt.Sprintf("geofence: unhandled zone %d", r.Classify(p.LeaveExclusionRadiusMeters)))
	}
}
