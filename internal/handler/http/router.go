package http

import (
	"log/slog"
	"os"

	"github.com/ghiras-nahda/hris-backend-go/internal/config"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/handler/http/middleware"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Leave        LeaveHandler
	Attendance   AttendanceHandler
	Calendar     CalendarHandler
	Report       ReportHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, authService auth.AuthService, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-ghiras-nahda"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// EventSource cannot send an Authorization header; the stream checks its own token
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(authService, JWTService))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.Me)
				r.Get("/lookups", h.User.Lookups)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Get("/{id}", h.User.Get)
					r.Put("/{id}", h.User.Update)
					r.Delete("/{id}", h.User.Delete)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", h.Leave.ListTypes)
				r.Get("/balance", h.Leave.GetBalance)

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", h.Leave.CreateRequest)
					r.Get("/my", h.Leave.GetMyRequests)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
						r.Get("/approvals", h.Leave.ListApprovals)
						r.Post("/{id}/approve", h.Leave.ApproveRequest)
						r.Post("/{id}/reject", h.Leave.RejectRequest)
					})

					r.Get("/{id}", h.Leave.GetRequest)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/status", h.Attendance.Status)
				r.Post("/clock", h.Attendance.Clock)
				r.Get("/my", h.Attendance.GetMy)
			})

			r.Get("/calendar", h.Calendar.Month)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", h.Report.Get)
				r.Get("/export/leaves.csv", h.Report.ExportLeaves)
				r.Get("/export/attendance.csv", h.Report.ExportAttendance)
			})

			r.Get("/dashboard", h.Dashboard.Get)

			r.Post("/notifications/sse-token", h.Notification.GetSSEToken)
		})
	})
	return r
}
