package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/config"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	appHTTP "github.com/emporia-hr/emporia-backend-go/internal/handler/http"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/email"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/jwt"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/oauth"
	"github.com/emporia-hr/emporia-backend-go/internal/repository/mongodb"
	"github.com/emporia-hr/emporia-backend-go/internal/repository/postgresql"
	attendanceService "github.com/emporia-hr/emporia-backend-go/internal/service/attendance"
	auditService "github.com/emporia-hr/emporia-backend-go/internal/service/audit"
	serviceAuth "github.com/emporia-hr/emporia-backend-go/internal/service/auth"
	dashboardService "github.com/emporia-hr/emporia-backend-go/internal/service/dashboard"
	departmentService "github.com/emporia-hr/emporia-backend-go/internal/service/department"
	employeeService "github.com/emporia-hr/emporia-backend-go/internal/service/employee"
	leaveService "github.com/emporia-hr/emporia-backend-go/internal/service/leave"
	reportService "github.com/emporia-hr/emporia-backend-go/internal/service/report"
	roleService "github.com/emporia-hr/emporia-backend-go/internal/service/role"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "emporia"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)
	response.SetProduction(cfg.IsProduction())

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	var auditRepo audit.Repository
	switch cfg.Audit.Store {
	case config.AuditStoreMongo:
		mongoDB, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return fmt.Errorf("connecting to mongodb: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoDB.Close(closeCtx); err != nil {
				slog.Error("closing mongodb", "error", err)
			}
		}()
		auditRepo, err = mongodb.NewAuditRepository(ctx, mongoDB)
		if err != nil {
			return fmt.Errorf("preparing audit collection: %w", err)
		}
	default:
		auditRepo = postgresql.NewAuditRepository(db)
	}
	slog.Info("audit store selected", "store", cfg.Audit.Store)

	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google)
	}

	auditLogger := auditService.NewLogger(auditRepo)

	authService := serviceAuth.NewAuthService(userRepo, JWTService, auditLogger, emailService)
	employeeSvc := employeeService.NewEmployeeService(userRepo, roleRepo, departmentRepo, auditLogger, emailService, cfg.App.FrontendURL)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo, auditLogger)
	roleSvc := roleService.NewRoleService(roleRepo, auditLogger)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, auditLogger)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, auditLogger, loc)
	auditSvc := auditService.NewAuditService(auditRepo, userRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, loc)
	reportSvc := reportService.NewReportService(reportRepo)

	router := appHTTP.NewRouter(JWTService, userRepo, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService, googleService, cfg.App.FrontendURL),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Department: appHTTP.NewDepartmentHandler(departmentSvc),
		Role:       appHTTP.NewRoleHandler(roleSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Audit:      appHTTP.NewAuditHandler(auditSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	}, appHTTP.RouterOptions{
		Logger:      logger,
		LogLevel:    cfg.SlogLevel(),
		CORSOrigins: cfg.App.CORSOrigins,
		StaticDir:   cfg.App.StaticDir,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
