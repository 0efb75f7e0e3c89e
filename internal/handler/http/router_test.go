package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/config"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/fixtures"
	"github.com/ghiras-nahda/hris-backend-go/internal/handler/http/response"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/jwt"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/sse"
	"github.com/ghiras-nahda/hris-backend-go/internal/repository/memory"
	attendanceService "github.com/ghiras-nahda/hris-backend-go/internal/service/attendance"
	authService "github.com/ghiras-nahda/hris-backend-go/internal/service/auth"
	calendarService "github.com/ghiras-nahda/hris-backend-go/internal/service/calendar"
	dashboardService "github.com/ghiras-nahda/hris-backend-go/internal/service/dashboard"
	geofenceService "github.com/ghiras-nahda/hris-backend-go/internal/service/geofence"
	leaveService "github.com/ghiras-nahda/hris-backend-go/internal/service/leave"
	notificationService "github.com/ghiras-nahda/hris-backend-go/internal/service/notification"
	reportService "github.com/ghiras-nahda/hris-backend-go/internal/service/report"
	userService "github.com/ghiras-nahda/hris-backend-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var testOffice = geo.Coordinate{Latitude: 24.7136, Longitude: 46.6753}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: handlerTestSecret, AccessExpiration: time.Hour},
		App: config.AppConfig{
			Env:                "test",
			LogLevel:           "error",
			Timezone:           "UTC",
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Geofence: config.GeofenceConfig{
			OfficeLatitude:             testOffice.Latitude,
			OfficeLongitude:            testOffice.Longitude,
			AttendanceRadiusMeters:     150,
			LeaveExclusionRadiusMeters: 500,
		},
	}
	loc := cfg.Location()

	db := memory.NewDB()
	userRepo := memory.NewUserRepository(db)
	sessionRepo := memory.NewSessionRepository(db)
	attendanceRepo := memory.NewAttendanceRepository(db)
	leaveRepo := memory.NewLeaveRequestRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(userRepo, hub, notificationService.Config{})
	t.Cleanup(func() {
		notifSvc.Stop()
		hub.Close()
	})

	locator := geofenceService.NewGeolocator(cfg.Geofence.Policy())
	authSvc := authService.NewAuthService(userRepo, sessionRepo, jwtSvc)
	userSvc := userService.NewUserService(userRepo)

	require.NoError(t, fixtures.Seed(context.Background(), userSvc, userRepo, ""))

	return NewRouter(cfg, jwtSvc, authSvc, Handlers{
		Auth:         NewAuthHandler(jwtSvc, authSvc),
		User:         NewUserHandler(userSvc),
		Leave:        NewLeaveHandler(leaveService.NewLeaveService(leaveRepo, locator, notifSvc)),
		Attendance:   NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo, locator, loc)),
		Calendar:     NewCalendarHandler(calendarService.NewCalendarService(leaveRepo, loc), loc),
		Report:       NewReportHandler(reportService.NewReportService(leaveRepo, attendanceRepo, userRepo, loc)),
		Dashboard:    NewDashboardHandler(dashboardService.NewDashboardService(leaveRepo, attendanceRepo, loc)),
		Notification: NewNotificationHandler(notifSvc, jwtSvc),
	})
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
}

func call(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()

	rec, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func position(c geo.Coordinate) map[string]interface{} {
	return map[string]interface{}{"latitude": c.Latitude, "longitude": c.Longitude}
}

func TestRouter_LoginRejectsWrongPassword(t *testing.T) {
	h := newTestRouter(t)

	rec, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestRouter_RequiresToken(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := call(t, h, http.MethodGet, "/api/v1/users/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LeaveLifecycle(t *testing.T) {
	h := newTestRouter(t)
	adminToken := login(t, h, "admin", "123")

	rec, _ := call(t, h, http.MethodPost, "/api/v1/users", adminToken, map[string]interface{}{
		"name":          "Sara Ahmed",
		"username":      "sara",
		"password":      "secret",
		"email":         "sara@ghiras-nahda.org",
		"role":          "employee",
		"department":    "programs",
		"manager_email": fixtures.RootAdmin().Email,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	saraToken := login(t, h, "sara", "secret")

	// on the premises
	rec, env := call(t, h, http.MethodPost, "/api/v1/leave/requests", saraToken, map[string]interface{}{
		"type":       "daily",
		"start_date": "2026-10-04",
		"end_date":   "2026-10-08",
		"reason":     "family visit",
		"position":   position(geo.Destination(testOffice, 0, 200)),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.CodePolicyBlocked, env.Error.Code)

	rec, env = call(t, h, http.MethodPost, "/api/v1/leave/requests", saraToken, map[string]interface{}{
		"type":       "daily",
		"start_date": "2026-10-04",
		"end_date":   "2026-10-08",
		"reason":     "family visit",
		"position":   position(geo.Destination(testOffice, 90, 600)),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 5, created.Duration)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)

	rec, _ = call(t, h, http.MethodGet, "/api/v1/leave/requests/approvals", saraToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = call(t, h, http.MethodGet, "/api/v1/leave/requests/approvals", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	rec, _ = call(t, h, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = call(t, h, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/reject", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = call(t, h, http.MethodGet, "/api/v1/leave/balance", saraToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance leave.BalanceResponse
	require.NoError(t, json.Unmarshal(env.Data, &balance))
	assert.Equal(t, leave.BalanceResponse{Total: 21, Used: 5, Remaining: 16}, balance)

	rec, env = call(t, h, http.MethodGet, "/api/v1/leave/requests/my", saraToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, leave.LeaveRequestStatusApproved, mine[0].Status)

	rec, env = call(t, h, http.MethodGet, "/api/v1/leave/requests/my?status=pending", saraToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Empty(t, mine)

	rec, env = call(t, h, http.MethodGet, "/api/v1/leave/requests/my?status=cancelled", saraToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "status")
}

func TestRouter_AttendanceCycle(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "admin", "123")

	rec, env := call(t, h, http.MethodPost, "/api/v1/attendance/clock", token, map[string]interface{}{
		"position": map[string]string{"error": "permission denied"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.CodeLocationUnavailable, env.Error.Code)

	rec, env = call(t, h, http.MethodPost, "/api/v1/attendance/clock", token, map[string]interface{}{
		"position": position(geo.Destination(testOffice, 180, 400)),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.CodePolicyBlocked, env.Error.Code)

	inRange := map[string]interface{}{"position": position(geo.Destination(testOffice, 45, 50))}

	rec, _ = call(t, h, http.MethodPost, "/api/v1/attendance/status", token, inRange)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = call(t, h, http.MethodPost, "/api/v1/attendance/clock", token, inRange)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Checked in successfully", env.Message)

	rec, env = call(t, h, http.MethodPost, "/api/v1/attendance/clock", token, inRange)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Checked out successfully", env.Message)

	rec, _ = call(t, h, http.MethodPost, "/api/v1/attendance/clock", token, inRange)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = call(t, h, http.MethodGet, "/api/v1/attendance/my", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &records))
	assert.Len(t, records, 1)

	rec, _ = call(t, h, http.MethodGet, "/api/v1/attendance/my?from=yesterday", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_UserManagementIsAdminOnly(t *testing.T) {
	h := newTestRouter(t)
	adminToken := login(t, h, "admin", "123")

	rec, _ := call(t, h, http.MethodDelete, "/api/v1/users/"+fixtures.RootAdminID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = call(t, h, http.MethodPost, "/api/v1/users", adminToken, map[string]interface{}{
		"name":          "Omar Khalid",
		"username":      "omar",
		"password":      "secret",
		"email":         "omar@ghiras-nahda.org",
		"role":          "manager",
		"department":    "finance",
		"manager_email": "board@ghiras-nahda.org",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	managerToken := login(t, h, "omar", "secret")

	rec, env := call(t, h, http.MethodGet, "/api/v1/users", managerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "admin privilege required", env.Error.Message)

	rec, env = call(t, h, http.MethodGet, "/api/v1/users?search=OMAR", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "omar", found[0]["username"])
}

func TestRouter_ReportExportIsCSV(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "admin", "123")

	rec, _ := call(t, h, http.MethodGet, "/api/v1/reports/export/leaves.csv", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leave-report.csv")
	assert.NotEmpty(t, rec.Body.String())
}

func TestRouter_CalendarAndDashboard(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "admin", "123")

	rec, _ := call(t, h, http.MethodGet, "/api/v1/calendar?year=2026&month=10", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := call(t, h, http.MethodGet, "/api/v1/calendar?month=13", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, env.Success)

	rec, env = call(t, h, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.EqualValues(t, 30, dash["remaining_balance"])
}

func TestRouter_LogoutEndsSession(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "admin", "123")

	rec, _ := call(t, h, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = call(t, h, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = call(t, h, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_SSETokenRequiresSession(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "admin", "123")

	rec, env := call(t, h, http.MethodPost, "/api/v1/notifications/sse-token", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)

	rec, _ = call(t, h, http.MethodGet, "/api/v1/notifications/stream?token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LookupsAvailableToEveryRole(t *testing.T) {
	h := newTestRouter(t)
	token := login(t, h, "admin", "123")

	rec, _ := call(t, h, http.MethodGet, "/api/v1/users/lookups", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := call(t, h, http.MethodGet, "/api/v1/users/lookups", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var lookups user.LookupsResponse
	require.NoError(t, json.Unmarshal(env.Data, &lookups))
	require.Len(t, lookups.Roles, len(user.Roles))
	assert.Equal(t, user.Option{Code: "employee", Label: user.RoleEmployee.Label()}, lookups.Roles[0])
	require.Len(t, lookups.Departments, len(user.Departments))
	assert.Equal(t, "programs", lookups.Departments[3].Code)
}
