package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
)

type MonthRequest struct {
	Year  int
	Month int
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 1970 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 1970 and 9999, got %d", r.Year),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Entry struct {
	RequestID string          `json:"request_id"`
	UserName  string          `json:"user_name"`
	ShortName string          `json:"short_name"`
	Type      leave.LeaveType `json:"type"`
	TypeLabel string          `json:"type_label"`
}

type Day struct {
	Date    string  `json:"date"`
	InMonth bool    `json:"in_month"`
	IsToday bool    `json:"is_today"`
	Entries []Entry `json:"entries"`
}

type MonthView struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	MonthName string   `json:"month_name"`
	Weekdays  []string `json:"weekdays"`
	Weeks     [][]Day  `json:"weeks"`
}

// GridBounds returns the Sunday on or before the first of the month and the
// Saturday on or after its last day.
func GridBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	return start, end
}

type CalendarService interface {
	Month(ctx context.Context, req MonthRequest) (MonthView, error)
}
