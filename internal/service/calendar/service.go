package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/calendar"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type CalendarServiceImpl struct {
	leave.LeaveRequestRepository

	location *time.Location
	now      func() time.Time
}

func NewCalendarService(leaveRequestRepository leave.LeaveRequestRepository, location *time.Location) calendar.CalendarService {
	return &CalendarServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		location:               location,
		now:                    time.Now,
	}
}

// Month implements calendar.CalendarService. Every approved request of any
// type is placed on each day it covers.
func (s *CalendarServiceImpl) Month(ctx context.Context, req calendar.MonthRequest) (calendar.MonthView, error) {
	if err := req.Validate(); err != nil {
		return calendar.MonthView{}, err
	}

	month := time.Month(req.Month)
	start, end := calendar.GridBounds(req.Year, month)

	approved := leave.LeaveRequestStatusApproved
	requests, err := s.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{
		Status: &approved,
		From:   &start,
		To:     &end,
	})
	if err != nil {
		return calendar.MonthView{}, fmt.Errorf("failed to list approved leave requests: %w", err)
	}

	// oldest first within a day
	for i, j := 0, len(requests)-1; i < j; i, j = i+1, j-1 {
		requests[i], requests[j] = requests[j], requests[i]
	}

	today := leave.DateOf(s.now().In(s.location))

	view := calendar.MonthView{
		Year:      req.Year,
		Month:     req.Month,
		MonthName: month.String(),
		Weekdays:  weekdays,
	}

	var week []calendar.Day
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		cell := calendar.Day{
			Date:    day.Format(validator.DateLayout),
			InMonth: day.Month() == month,
			IsToday: day.Equal(today),
			Entries: make([]calendar.Entry, 0),
		}
		for _, r := range requests {
			if r.Covers(day) {
				cell.Entries = append(cell.Entries, calendar.Entry{
					RequestID: r.ID,
					UserName:  r.UserName,
					ShortName: shortName(r.UserName),
					Type:      r.Type,
					TypeLabel: r.Type.Label(),
				})
			}
		}

		week = append(week, cell)
		if len(week) == len(weekdays) {
			view.Weeks = append(view.Weeks, week)
			week = nil
		}
	}

	return view, nil
}

func shortName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
