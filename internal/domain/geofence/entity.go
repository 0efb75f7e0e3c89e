package geofence

import (
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
)

// Distances that land within this many meters of a threshold count as on it.
const boundaryToleranceMeters = 1e-6

const (
	DefaultAttendanceRadiusMeters     = 150.0
	DefaultLeaveExclusionRadiusMeters = 500.0
)

// ProximityZone classifies a reading against a single threshold.
type ProximityZone int

const (
	ZoneUnknown ProximityZone = iota
	ZoneInside
	ZoneOutside
	ZoneUnavailable
)

func (z ProximityZone) String() string {
	switch z {
	case ZoneInside:
		return "inside"
	case ZoneOutside:
		return "outside"
	case ZoneUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Reading is the outcome of one position request: either a coordinate with its
// distance to the reference point, or the failure that prevented it.
type Reading struct {
	Position       geo.Coordinate
	DistanceMeters float64
	Err            error
	resolved       bool
}

// NewReading builds a successful reading.
func NewReading(position geo.Coordinate, distanceMeters float64) Reading {
	return Reading{Position: position, DistanceMeters: distanceMeters, resolved: true}
}

// UnavailableReading builds a failed reading. A nil cause becomes geo.ErrUnavailable.
func UnavailableReading(cause error) Reading {
	if cause == nil {
		cause = geo.ErrUnavailable
	}
	return Reading{Err: cause, resolved: true}
}

// Available reports whether the reading carries a position.
func (r Reading) Available() bool {
	return r.resolved && r.Err == nil
}

// Classify places the reading relative to threshold. Inside is boundary-inclusive.
func (r Reading) Classify(thresholdMeters float64) ProximityZone {
	switch {
	case !r.resolved:
		return ZoneUnknown
	case r.Err != nil:
		return ZoneUnavailable
	case r.DistanceMeters <= thresholdMeters+boundaryToleranceMeters:
		return ZoneInside
	default:
		return ZoneOutside
	}
}

// Policy holds the reference point and the two independent thresholds.
type Policy struct {
	Reference                  geo.Coordinate
	AttendanceRadiusMeters     float64
	LeaveExclusionRadiusMeters float64
}

// DefaultPolicy returns a policy around reference with the standard radii.
func DefaultPolicy(reference geo.Coordinate) Policy {
	return Policy{
		Reference:                  reference,
		AttendanceRadiusMeters:     DefaultAttendanceRadiusMeters,
		LeaveExclusionRadiusMeters: DefaultLeaveExclusionRadiusMeters,
	}
}
