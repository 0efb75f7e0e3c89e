package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/config"
	"github.com/ghiras-nahda/hris-backend-go/internal/fixtures"
	appHTTP "github.com/ghiras-nahda/hris-backend-go/internal/handler/http"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/cron"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/jwt"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/sse"
	"github.com/ghiras-nahda/hris-backend-go/internal/repository/memory"
	attendanceService "github.com/ghiras-nahda/hris-backend-go/internal/service/attendance"
	serviceAuth "github.com/ghiras-nahda/hris-backend-go/internal/service/auth"
	calendarService "github.com/ghiras-nahda/hris-backend-go/internal/service/calendar"
	dashboardService "github.com/ghiras-nahda/hris-backend-go/internal/service/dashboard"
	geofenceService "github.com/ghiras-nahda/hris-backend-go/internal/service/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/service/leave"
	notificationService "github.com/ghiras-nahda/hris-backend-go/internal/service/notification"
	reportService "github.com/ghiras-nahda/hris-backend-go/internal/service/report"
	userService "github.com/ghiras-nahda/hris-backend-go/internal/service/user"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location := cfg.Location()

	db := memory.NewDB()
	userRepo := memory.NewUserRepository(db)
	sessionRepo := memory.NewSessionRepository(db)
	attendanceRepo := memory.NewAttendanceRepository(db)
	leaveRequestRepo := memory.NewLeaveRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	sseHub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(userRepo, sseHub, notificationService.Config{})
	locator := geofenceService.NewGeolocator(cfg.Geofence.Policy())

	authService := serviceAuth.NewAuthService(userRepo, sessionRepo, JWTService)
	userSvc := userService.NewUserService(userRepo)
	leaveService := leave.NewLeaveService(leaveRequestRepo, locator, notificationSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, locator, location)
	calendarSvc := calendarService.NewCalendarService(leaveRequestRepo, location)
	reportSvc := reportService.NewReportService(leaveRequestRepo, attendanceRepo, userRepo, location)
	dashboardSvc := dashboardService.NewDashboardService(leaveRequestRepo, attendanceRepo, location)

	if err := fixtures.Seed(ctx, userSvc, userRepo, cfg.App.SeedFile); err != nil {
		slog.Error("failed to seed accounts", "error", err)
		os.Exit(1)
	}

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(authService, cfg.Session.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(cfg, JWTService, authService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authService),
		User:         appHTTP.NewUserHandler(userSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveService),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Calendar:     appHTTP.NewCalendarHandler(calendarSvc, location),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, JWTService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("server started", "addr", server.Addr, "env", cfg.App.Env, "timezone", location.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	scheduler.Stop()
	notificationSvc.Stop()
	sseHub.Close()
}
