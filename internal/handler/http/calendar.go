package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/calendar"
	"github.com/ghiras-nahda/hris-backend-go/internal/handler/http/response"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
)

type CalendarHandler interface {
	Month(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendarService calendar.CalendarService
	location        *time.Location
}

// Month implements CalendarHandler. Missing year or month default to the
// current one in the company timezone.
func (h *CalendarHandlerImpl) Month(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(h.location)
	req := calendar.MonthRequest{Year: now.Year(), Month: int(now.Month())}

	if year := r.URL.Query().Get("year"); year != "" {
		v, err := strconv.Atoi(year)
		if err != nil {
			response.HandleError(w, validator.Single("year", "year must be a number"))
			return
		}
		req.Year = v
	}
	if month := r.URL.Query().Get("month"); month != "" {
		v, err := strconv.Atoi(month)
		if err != nil {
			response.HandleError(w, validator.Single("month", "month must be a number"))
			return
		}
		req.Month = v
	}

	view, err := h.calendarService.Month(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

func NewCalendarHandler(calendarService calendar.CalendarService, location *time.Location) CalendarHandler {
	return &CalendarHandlerImpl{
		calendarService: calendarService,
		location:        location,
	}
}
