package attendance

import (
	"errors"
	"fmt"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
)

// Attendance domain errors
var (
	ErrOutsideAttendanceRadius = fmt.Errorf("%w: you are outside the allowed attendance radius", geofence.ErrPolicyBlocked)
	ErrLocationUnavailable     = fmt.Errorf("%w: enable location services and try again", geofence.ErrLocationUnavailable)
	ErrAttendanceComplete      = errors.New("attendance for today is already complete")
	ErrNotCheckedIn            = errors.New("you have not checked in yet")
	ErrAttendanceNotFound      = errors.New("attendance record not found")
)
