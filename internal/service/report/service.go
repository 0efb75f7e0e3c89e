package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/attendance"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/report"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	ScopeAll = "all"
	ScopeOwn = "own"
)

type ReportServiceImpl struct {
	leave.LeaveRequestRepository
	attendance.AttendanceRepository
	user.UserRepository

	location *time.Location
	now      func() time.Time
}

func NewReportService(
	leaveRequestRepository leave.LeaveRequestRepository,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	location *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		AttendanceRepository:   attendanceRepository,
		UserRepository:         userRepository,
		location:               location,
		now:                    time.Now,
	}
}

func scopeOf(viewer user.User) string {
	if user.HasPermission(viewer.Role, user.PermissionReportsViewAll) {
		return ScopeAll
	}
	return ScopeOwn
}

func (s *ReportServiceImpl) leaveRows(ctx context.Context, viewer user.User) ([]report.LeaveRow, error) {
	filter := leave.LeaveRequestFilter{}
	if scopeOf(viewer) == ScopeOwn {
		filter.UserID = &viewer.ID
	}

	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	rows := make([]report.LeaveRow, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, report.LeaveRow{
			RequestID:  r.ID,
			UserName:   r.UserName,
			Department: r.Department.Label(),
			Type:       r.Type,
			TypeLabel:  r.Type.Label(),
			StartDate:  r.StartDate.Format(validator.DateLayout),
			EndDate:    r.EndDate.Format(validator.DateLayout),
			Duration:   r.Duration,
			Status:     r.Status,
			Reason:     r.Reason,
		})
	}
	return rows, nil
}

func (s *ReportServiceImpl) attendanceRows(ctx context.Context, viewer user.User) ([]report.AttendanceRow, error) {
	filter := attendance.AttendanceFilter{}
	if scopeOf(viewer) == ScopeOwn {
		filter.UserID = &viewer.ID
	}

	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	users, err := s.UserRepository.List(ctx, user.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	rows := make([]report.AttendanceRow, 0, len(records))
	for _, r := range records {
		name, ok := names[r.UserID]
		if !ok {
			name = r.UserID
		}
		rows = append(rows, report.AttendanceRow{
			Date:     r.Date.Format(validator.DateLayout),
			UserName: name,
			ClockIn:  s.clock(r.ClockIn),
			ClockOut: s.clock(r.ClockOut),
			Status:   r.Status.Label(),
		})
	}
	return rows, nil
}

func (s *ReportServiceImpl) clock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(s.location).Format("15:04")
}

// Generate implements report.ReportService.
func (s *ReportServiceImpl) Generate(ctx context.Context, viewer user.User) (report.Report, error) {
	leaves, err := s.leaveRows(ctx, viewer)
	if err != nil {
		return report.Report{}, err
	}
	records, err := s.attendanceRows(ctx, viewer)
	if err != nil {
		return report.Report{}, err
	}

	summary := report.Summary{
		TotalRequests:  len(leaves),
		AttendanceDays: len(records),
	}
	for _, row := range leaves {
		switch row.Status {
		case leave.LeaveRequestStatusPending:
			summary.PendingRequests++
		case leave.LeaveRequestStatusApproved:
			summary.ApprovedRequests++
			summary.ApprovedDays += row.Duration
		case leave.LeaveRequestStatusRejected:
			summary.RejectedRequests++
		}
	}

	return report.Report{
		GeneratedAt: s.now().In(s.location).Format(time.RFC3339),
		Scope:       scopeOf(viewer),
		Summary:     summary,
		Leaves:      leaves,
		Attendance:  records,
	}, nil
}

// ExportLeavesCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportLeavesCSV(ctx context.Context, viewer user.User, w io.Writer) error {
	rows, err := s.leaveRows(ctx, viewer)
	if err != nil {
		return err
	}

	records := [][]string{{"Name", "Department", "Type", "Start Date", "End Date", "Days", "Status", "Reason"}}
	for _, r := range rows {
		records = append(records, []string{
			r.UserName, r.Department, r.TypeLabel, r.StartDate, r.EndDate,
			strconv.Itoa(r.Duration), string(r.Status), r.Reason,
		})
	}
	return writeCSV(w, records)
}

// ExportAttendanceCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendanceCSV(ctx context.Context, viewer user.User, w io.Writer) error {
	rows, err := s.attendanceRows(ctx, viewer)
	if err != nil {
		return err
	}

	records := [][]string{{"Date", "Name", "Clock In", "Clock Out", "Status"}}
	for _, r := range rows {
		records = append(records, []string{r.Date, r.UserName, r.ClockIn, r.ClockOut, r.Status})
	}
	return writeCSV(w, records)
}

// writeCSV emits UTF-8 with a byte order mark so spreadsheet tools render the
// Arabic labels correctly.
func writeCSV(w io.Writer, records [][]string) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return tw.Close()
}
