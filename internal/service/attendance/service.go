package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/attendance"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	geofence.Locator

	location *time.Location
	now      func() time.Time
}

// NewAttendanceService keys records by the calendar day in location.
func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, locator geofence.Locator, location *time.Location) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		Locator:              locator,
		location:             location,
		now:                  time.Now,
	}
}

// today returns the actor's record for the current day, nil when there is none.
func (a *AttendanceServiceImpl) today(ctx context.Context, userID string, day time.Time) (*attendance.Record, error) {
	record, err := a.AttendanceRepository.Get(ctx, attendance.NewKey(userID, day))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return &record, nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context, actor user.User, source geo.PositionSource) (attendance.StatusResponse, error) {
	reading := a.Locator.Locate(ctx, source)
	state := a.Locator.Policy().EvaluateAttendance(reading)

	day := attendance.Day(a.now(), a.location)
	today, err := a.today(ctx, actor.ID, day)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	eval := attendance.Evaluate(today, state)
	resp := attendance.StatusResponse{
		State:   eval.State,
		Action:  eval.Action,
		Enabled: eval.Enabled,
	}
	if reading.Available() {
		distance := reading.DistanceMeters
		resp.DistanceMeters = &distance
	}
	if eval.Err != nil {
		resp.Message = eval.Err.Error()
	}
	if today != nil {
		record := attendance.NewAttendanceResponse(*today, a.location)
		resp.Today = &record
	}
	return resp, nil
}

// Clock implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Clock(ctx context.Context, actor user.User, source geo.PositionSource) (attendance.AttendanceResponse, error) {
	reading := a.Locator.Locate(ctx, source)
	state := a.Locator.Policy().EvaluateAttendance(reading)

	now := a.now()
	day := attendance.Day(now, a.location)

	var action attendance.Action
	record, err := a.AttendanceRepository.Upsert(ctx, attendance.NewKey(actor.ID, day), func(existing *attendance.Record) (attendance.Record, error) {
		eval := attendance.Evaluate(existing, state)
		if !eval.Enabled {
			return attendance.Record{}, eval.Err
		}
		action = eval.Action
		return attendance.Apply(existing, eval.Action, actor.ID, day, now, reading.Position)
	})
	if err != nil {
		slog.Info("attendance action refused", "user_id", actor.ID, "state", state, "distance_meters", reading.DistanceMeters, "reason", err)
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("attendance recorded", "user_id", actor.ID, "action", action, "date", record.Key().Date, "distance_meters", reading.DistanceMeters)
	return attendance.NewAttendanceResponse(record, a.location), nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, actor user.User, query attendance.HistoryQuery) ([]attendance.AttendanceResponse, error) {
	filter, err := query.Filter(actor.ID)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r, a.location))
	}
	return responses, nil
}
