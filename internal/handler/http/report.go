package http

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/report"
	"github.com/ghiras-nahda/hris-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	ExportLeaves(w http.ResponseWriter, r *http.Request)
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

// Get implements ReportHandler.
func (h *ReportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	rep, err := h.reportService.Generate(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rep)
}

// ExportLeaves implements ReportHandler.
func (h *ReportHandlerImpl) ExportLeaves(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	// Render into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.reportService.ExportLeavesCSV(r.Context(), actor, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := response.CSV(w, "leave-report.csv", copyFrom(&buf)); err != nil {
		slog.Error("ExportLeaves write error", "error", err)
	}
}

// ExportAttendance implements ReportHandler.
func (h *ReportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportAttendanceCSV(r.Context(), actor, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := response.CSV(w, "attendance-report.csv", copyFrom(&buf)); err != nil {
		slog.Error("ExportAttendance write error", "error", err)
	}
}

func copyFrom(src io.Reader) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	}
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{
		reportService: reportService,
	}
}
