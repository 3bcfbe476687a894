package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/middleware"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Department DepartmentHandler
	Role       RoleHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Audit      AuditHandler
	Dashboard  DashboardHandler
	Report     ReportHandler
}

type RouterOptions struct {
	Logger      *slog.Logger
	LogLevel    slog.Level
	CORSOrigins []string
	// StaticDir, when set, serves a single page app for non-API paths.
	StaticDir string
}

func NewRouter(JWTService jwt.Service, users user.UserRepository, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(middleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(chiMiddleware.Heartbeat("/ping"))

	routeNotFound := func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	}

	r.Route("/api", func(r chi.Router) {
		r.NotFound(routeNotFound)
		r.MethodNotAllowed(routeNotFound)

		r.Get("/health", HealthCheck)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.Authenticate(JWTService, users))

				r.Get("/me", h.Auth.Me)
				r.Put("/change-password", h.Auth.ChangePassword)
				r.With(middleware.RequirePermission(user.PermissionUserResetPassword)).
					Put("/reset-password/{userId}", h.Auth.ResetPassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.Authenticate(JWTService, users))

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeView))
					r.Get("/", h.Employee.ListEmployees)
					r.Get("/stats/dashboard", h.Employee.GetDashboardStats)
					r.Get("/{id}", h.Employee.GetEmployee)
				})
				r.With(middleware.RequirePermission(user.PermissionEmployeeCreate)).Post("/", h.Employee.CreateEmployee)
				r.With(middleware.RequirePermission(user.PermissionEmployeeEdit)).Put("/{id}", h.Employee.UpdateEmployee)
				r.With(middleware.RequirePermission(user.PermissionEmployeeDelete)).Delete("/{id}", h.Employee.DeleteEmployee)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.List)
				r.Get("/{id}", h.Department.Get)
				r.With(middleware.RequirePermission(user.PermissionDepartmentCreate)).Post("/", h.Department.Create)
				r.With(middleware.RequirePermission(user.PermissionDepartmentEdit)).Put("/{id}", h.Department.Update)
				r.With(middleware.RequirePermission(user.PermissionDepartmentDelete)).Delete("/{id}", h.Department.Delete)
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.Role.List)
				r.Get("/{id}", h.Role.Get)

				// Super Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleKindSuperAdmin))
					r.With(middleware.RequirePermission(user.PermissionRoleCreate)).Post("/", h.Role.Create)
					r.With(middleware.RequirePermission(user.PermissionRoleEdit)).Put("/{id}", h.Role.Update)
					r.With(middleware.RequirePermission(user.PermissionRoleDelete)).Delete("/{id}", h.Role.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveView)).Get("/", h.Leave.List)
				r.Get("/my-leaves", h.Leave.MyLeaves)
				r.Get("/stats", h.Leave.Stats)
				r.Post("/", h.Leave.Apply)
				r.Get("/{id}", h.Leave.Get)
				r.Put("/{id}", h.Leave.Update)
				r.Delete("/{id}", h.Leave.Withdraw)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Put("/{id}/approve", h.Leave.Approve)
					r.Put("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/status", h.Attendance.Status)
				r.Post("/punch-in", h.Attendance.PunchIn)
				r.Post("/punch-out", h.Attendance.PunchOut)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
					r.Get("/", h.Attendance.List)
					r.Get("/stats", h.Attendance.Stats)
				})
			})

			r.Route("/audit-logs", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAuditView))
				r.Get("/", h.Audit.List)
				r.Get("/stats", h.Audit.Stats)
			})

			r.Get("/dashboard/stats", h.Dashboard.GetStats)

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportView))
				r.Get("/employees", h.Report.GetEmployeeReport)
				r.Get("/departments", h.Report.GetDepartmentReport)
				r.Get("/leaves", h.Report.GetLeaveReport)
			})
		})
	})

	if opts.StaticDir != "" {
		spa := SPAHandler(opts.StaticDir)
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			if (req.Method != http.MethodGet && req.Method != http.MethodHead) || strings.HasPrefix(req.URL.Path, "/api/") {
				routeNotFound(w, req)
				return
			}
			spa.ServeHTTP(w, req)
		})
	} else {
		r.NotFound(routeNotFound)
	}
	r.MethodNotAllowed(routeNotFound)

	return r
}
