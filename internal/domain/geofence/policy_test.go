package geofence

import (
	"errors"
	"testing"

	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
)

var office = geo.Coordinate{Latitude: 24.7136, Longitude: 46.6753}

func readingAt(meters float64) Reading {
	p := geo.Destination(office, 90, meters)
	return NewReading(p, geo.Distance(office, p))
}

func TestEvaluateAttendance(t *testing.T) {
	policy := DefaultPolicy(office)

	cases := []struct {
		name    string
		reading Reading
		want    AttendanceState
	}{
		{"at the office", readingAt(0), AttendanceReady},
		{"100m away", readingAt(100), AttendanceReady},
		{"150m boundary", readingAt(150), AttendanceReady},
		{"150.5m away", readingAt(150.5), AttendanceOutOfRange},
		{"300m away", readingAt(300), AttendanceOutOfRange},
		{"position denied", UnavailableReading(errors.New("denied")), AttendanceError},
		{"never requested", Reading{}, AttendanceError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, policy.EvaluateAttendance(c.reading))
		})
	}
}

func TestEvaluateAttendance_BoundaryFromBearingOffset(t *testing.T) {
	policy := DefaultPolicy(office)
	for _, bearing := range []float64{0, 37, 90, 180, 251} {
		p := geo.Destination(office, bearing, 150.0)
		r := NewReading(p, geo.Distance(office, p))
		assert.Equal(t, AttendanceReady, policy.EvaluateAttendance(r), "bearing %v", bearing)
	}
}

func TestEvaluateLeaveSubmission(t *testing.T) {
	policy := DefaultPolicy(office)

	cases := []struct {
		name    string
		reading Reading
		want    LeaveSubmissionState
	}{
		{"on site", readingAt(10), LeaveSubmissionBlocked},
		{"200m away", readingAt(200), LeaveSubmissionBlocked},
		{"500m boundary", readingAt(500), LeaveSubmissionBlocked},
		{"600m away", readingAt(600), LeaveSubmissionAllowed},
		{"position failed", UnavailableReading(nil), LeaveSubmissionAllowed},
		{"never requested", Reading{}, LeaveSubmissionAllowed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, policy.EvaluateLeaveSubmission(c.reading))
		})
	}
}

func TestReading_Classify(t *testing.T) {
	assert.Equal(t, ZoneUnknown, Reading{}.Classify(150))
	assert.Equal(t, ZoneInside, readingAt(149).Classify(150))
	assert.Equal(t, ZoneOutside, readingAt(151).Classify(150))
	assert.Equal(t, ZoneUnavailable, UnavailableReading(nil).Classify(150))
	assert.ErrorIs(t, UnavailableReading(nil).Err, geo.ErrUnavailable)
	assert.Equal(t, "inside", ZoneInside.String())
}
