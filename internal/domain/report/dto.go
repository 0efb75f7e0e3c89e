package report

import (
	"context"
	"io"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

// ========================================
// LEAVE AND ATTENDANCE REPORT
// ========================================

type LeaveRow struct {
	RequestID  string                   `json:"request_id"`
	UserName   string                   `json:"user_name"`
	Department string                   `json:"department"`
	Type       leave.LeaveType          `json:"type"`
	TypeLabel  string                   `json:"type_label"`
	StartDate  string                   `json:"start_date"`
	EndDate    string                   `json:"end_date"`
	Duration   int                      `json:"duration"`
	Status     leave.LeaveRequestStatus `json:"status"`
	Reason     string                   `json:"reason"`
}

type AttendanceRow struct {
	Date     string `json:"date"`
	UserName string `json:"user_name"`
	ClockIn  string `json:"clock_in"`
	ClockOut string `json:"clock_out"`
	Status   string `json:"status"`
}

type Summary struct {
	TotalRequests    int `json:"total_requests"`
	PendingRequests  int `json:"pending_requests"`
	ApprovedRequests int `json:"approved_requests"`
	RejectedRequests int `json:"rejected_requests"`
	ApprovedDays     int `json:"approved_days"`
	AttendanceDays   int `json:"attendance_days"`
}

type Report struct {
	GeneratedAt string          `json:"generated_at"`
	Scope       string          `json:"scope"`
	Summary     Summary         `json:"summary"`
	Leaves      []LeaveRow      `json:"leaves"`
	Attendance  []AttendanceRow `json:"attendance"`
}

type ReportService interface {
	// Generate builds the report visible to viewer: everything for managers and
	// admins, only the viewer's own rows otherwise.
	Generate(ctx context.Context, viewer user.User) (Report, error)
	ExportLeavesCSV(ctx context.Context, viewer user.User, w io.Writer) error
	ExportAttendanceCSV(ctx context.Context, viewer user.User, w io.Writer) error
}
