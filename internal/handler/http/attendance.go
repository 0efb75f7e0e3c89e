package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/attendance"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
	"github.com/ghiras-nahda/hris-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	Clock(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

// decodeClockRequest reads the reported position. An empty body is a request
// without a position, which the attendance rules treat as unavailable.
func decodeClockRequest(r *http.Request) (attendance.ClockRequest, error) {
	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

// Status implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	req, err := decodeClockRequest(r)
	if err != nil {
		slog.Error("AttendanceStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	status, err := h.attendanceService.Status(r.Context(), actor, req.Position)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Clock implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	req, err := decodeClockRequest(r)
	if err != nil {
		slog.Error("Clock decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.Clock(r.Context(), actor, req.Position)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Checked in successfully"
	if record.ClockOut != nil {
		message = "Checked out successfully"
	}
	response.SuccessWithMessage(w, message, record)
}

// GetMy implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	query := attendance.HistoryQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	records, err := h.attendanceService.ListMine(r.Context(), actor, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}
