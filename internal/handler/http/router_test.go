package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/report"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/jwt"
	"github.com/emporia-hr/emporia-backend-go/internal/service/servicetest"
	attendanceService "github.com/emporia-hr/emporia-backend-go/internal/service/attendance"
	auditService "github.com/emporia-hr/emporia-backend-go/internal/service/audit"
	authService "github.com/emporia-hr/emporia-backend-go/internal/service/auth"
	dashboardService "github.com/emporia-hr/emporia-backend-go/internal/service/dashboard"
	departmentService "github.com/emporia-hr/emporia-backend-go/internal/service/department"
	employeeService "github.com/emporia-hr/emporia-backend-go/internal/service/employee"
	leaveService "github.com/emporia-hr/emporia-backend-go/internal/service/leave"
	roleService "github.com/emporia-hr/emporia-backend-go/internal/service/role"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type stubReportService struct {
	employees   func(ctx context.Context) ([]report.EmployeeReportRow, error)
	departments func(ctx context.Context) ([]report.DepartmentReportRow, error)
	leaves      func(ctx context.Context) ([]report.LeaveReportRow, error)
}

func (s stubReportService) EmployeeReport(ctx context.Context) ([]report.EmployeeReportRow, error) {
	return s.employees(ctx)
}

func (s stubReportService) DepartmentReport(ctx context.Context) ([]report.DepartmentReportRow, error) {
	return s.departments(ctx)
}

func (s stubReportService) LeaveReport(ctx context.Context) ([]report.LeaveReportRow, error) {
	return s.leaves(ctx)
}

type apiFixture struct {
	store  *servicetest.Store
	jwt    jwt.Service
	router *chi.Mux
	clock  time.Time

	superAdmin, hr, manager, alice, bob, carol user.User
}

func newAPIFixture(t *testing.T, reports report.ReportService) *apiFixture {
	t.Helper()

	store := servicetest.NewStore()
	superRole := store.AddRole(user.RoleKindSuperAdmin)
	hrRole := store.AddRole(user.RoleKindHRAdmin)
	managerRole := store.AddRole(user.RoleKindManager)
	staff := store.AddRole(user.RoleKindEmployee)
	eng := store.AddDepartment("Engineering")
	finance := store.AddDepartment("Finance")

	f := &apiFixture{
		store:      store,
		clock:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		superAdmin: store.AddUser("System Admin", "admin@emporia.com", &superRole, nil),
		hr:         store.AddUser("HR Manager", "hr@emporia.com", &hrRole, nil),
		manager:    store.AddUser("John Smith", "john.smith@emporia.com", &managerRole, &eng),
		alice:      store.AddUser("Alice Johnson", "alice.johnson@emporia.com", &staff, &eng),
		bob:        store.AddUser("Bob Williams", "bob.williams@emporia.com", &staff, &eng),
		carol:      store.AddUser("Carol Davis", "carol.davis@emporia.com", &staff, &finance),
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	store.SetPasswordHash(f.superAdmin.ID, string(hash))

	f.jwt, err = jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)

	if reports == nil {
		reports = stubReportService{
			employees: func(context.Context) ([]report.EmployeeReportRow, error) { return []report.EmployeeReportRow{}, nil },
		}
	}

	users := store.UserRepository()
	logger := store.AuditLogger()
	mail := &servicetest.EmailRecorder{}
	handlers := Handlers{
		Auth: NewAuthHandler(authService.NewAuthService(users, f.jwt, logger, mail), nil, "http://localhost:3000"),
		Employee: NewEmployeeHandler(employeeService.NewEmployeeService(
			users, store.RoleRepository(), store.DepartmentRepository(), logger, mail, "http://localhost:3000",
		)),
		Department: NewDepartmentHandler(departmentService.NewDepartmentService(store.DepartmentRepository(), logger)),
		Role:       NewRoleHandler(roleService.NewRoleService(store.RoleRepository(), logger)),
		Leave:      NewLeaveHandler(leaveService.NewLeaveService(store.LeaveRepository(), logger)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(
			store.AttendanceRepository(), logger, time.UTC,
			attendanceService.WithClock(func() time.Time { return f.clock }),
		)),
		Audit:     NewAuditHandler(auditService.NewAuditService(store.AuditRepository(), users)),
		Dashboard: NewDashboardHandler(dashboardService.NewDashboardService(store.DashboardRepository(), time.UTC)),
		Report:    NewReportHandler(reports),
	}
	f.router = NewRouter(f.jwt, users, handlers, RouterOptions{CORSOrigins: []string{"http://localhost:3000"}})
	return f
}

func (f *apiFixture) token(t *testing.T, u user.User) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(u.ID)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func leaveOwners(t *testing.T, body map[string]any) []string {
	t.Helper()
	items, ok := body["leaves"].([]any)
	require.True(t, ok, "leaves missing in %v", body)
	owners := make([]string, 0, len(items))
	for _, item := range items {
		employee := item.(map[string]any)["employee"].(map[string]any)
		owners = append(owners, employee["name"].(string))
	}
	return owners
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec, body := f.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Emporia API is running", body["message"])

	for _, path := range []string{"/api/nope", "/elsewhere"} {
		rec, body = f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Route not found", body["message"])
	}
}

func TestLogin(t *testing.T) {
	f := newAPIFixture(t, nil)

	t.Run("success", func(t *testing.T) {
		rec, body := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@emporia.com", "password": "admin123"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["token"])
		sessionUser := body["user"].(map[string]any)
		assert.Equal(t, "admin@emporia.com", sessionUser["email"])
		assert.NotContains(t, sessionUser, "passwordHash")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, body := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@emporia.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, map[string]any{"success": false, "message": "Invalid credentials"}, body)
	})

	t.Run("missing credentials", func(t *testing.T) {
		rec, body := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@emporia.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Please provide email and password", body["message"])
	})

	t.Run("malformed body", func(t *testing.T) {
		rec, body := f.do(t, http.MethodPost, "/api/auth/login", "", "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", body["message"])
	})
}

func TestAuthenticate(t *testing.T) {
	f := newAPIFixture(t, nil)
	users := f.store.UserRepository()

	rec, body := f.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized to access this route", body["message"])

	rec, body = f.do(t, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized to access this route", body["message"])

	rec, body = f.do(t, http.MethodGet, "/api/auth/me", f.token(t, f.alice), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice Johnson", body["user"].(map[string]any)["name"])

	ghost := user.User{ID: "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"}
	rec, body = f.do(t, http.MethodGet, "/api/auth/me", f.token(t, ghost), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not found", body["message"])

	inactive := f.bob
	inactive.Status = user.StatusInactive
	_, err := users.Update(context.Background(), inactive)
	require.NoError(t, err)
	rec, body = f.do(t, http.MethodGet, "/api/auth/me", f.token(t, f.bob), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User account is inactive", body["message"])

	require.NoError(t, users.SoftDelete(context.Background(), f.carol.ID))
	rec, body = f.do(t, http.MethodGet, "/api/auth/me", f.token(t, f.carol), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User account has been deleted", body["message"])
}

func TestEmployeeDeleteRequiresPermission(t *testing.T) {
	f := newAPIFixture(t, nil)
	path := "/api/employees/" + f.bob.ID

	rec, body := f.do(t, http.MethodDelete, path, f.token(t, f.alice), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to perform this action", body["message"])

	rec, _ = f.do(t, http.MethodDelete, path, f.token(t, f.hr), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = f.do(t, http.MethodGet, path, f.token(t, f.hr), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Employee not found", body["message"])

	stored, ok := f.store.User(f.bob.ID)
	require.True(t, ok)
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, user.StatusInactive, stored.Status)
}

func TestEmployeeCreate(t *testing.T) {
	f := newAPIFixture(t, nil)
	token := f.token(t, f.hr)

	rec, body := f.do(t, http.MethodPost, "/api/employees", token, map[string]any{"name": "Dana"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["errors"], "email")

	roleID := *f.alice.RoleID
	rec, body = f.do(t, http.MethodPost, "/api/employees", token, map[string]any{
		"name": "Dana White", "email": "dana@emporia.com", "password": "secret1", "role": roleID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Employee created successfully", body["message"])
	assert.Equal(t, "dana@emporia.com", body["employee"].(map[string]any)["email"])

	rec, body = f.do(t, http.MethodPost, "/api/employees", token, map[string]any{
		"name": "Alice Again", "email": "alice.johnson@emporia.com", "password": "secret1", "role": roleID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists", body["message"])

	rec, body = f.do(t, http.MethodGet, "/api/employees?limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, body["count"])
	assert.EqualValues(t, 4, body["totalPages"])
	assert.EqualValues(t, 1, body["currentPage"])
	assert.Len(t, body["employees"], 2)
}

func TestLeaveVisibilityIsRoleScoped(t *testing.T) {
	f := newAPIFixture(t, nil)
	apply := func(u user.User) string {
		rec, body := f.do(t, http.MethodPost, "/api/leaves", f.token(t, u), map[string]string{
			"leaveType": "Sick Leave", "startDate": "2025-03-10", "endDate": "2025-03-11", "reason": "flu",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "Leave application submitted successfully", body["message"])
		return body["leave"].(map[string]any)["id"].(string)
	}
	apply(f.alice)
	bobLeave := apply(f.bob)
	apply(f.carol)

	_, body := f.do(t, http.MethodGet, "/api/leaves", f.token(t, f.alice), nil)
	assert.Equal(t, []string{"Alice Johnson"}, leaveOwners(t, body))

	_, body = f.do(t, http.MethodGet, "/api/leaves", f.token(t, f.manager), nil)
	assert.ElementsMatch(t, []string{"Alice Johnson", "Bob Williams"}, leaveOwners(t, body))

	_, body = f.do(t, http.MethodGet, "/api/leaves", f.token(t, f.hr), nil)
	assert.EqualValues(t, 3, body["count"])

	rec, body := f.do(t, http.MethodGet, "/api/leaves/"+bobLeave, f.token(t, f.alice), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Leave not found", body["message"])
}

func TestLeaveInvalidRangeCreatesNothing(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec, body := f.do(t, http.MethodPost, "/api/leaves", f.token(t, f.alice), map[string]string{
		"leaveType": "Paid Leave", "startDate": "2025-03-14", "endDate": "2025-03-10", "reason": "trip",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "End date must be after start date", body["message"])

	_, body = f.do(t, http.MethodGet, "/api/leaves", f.token(t, f.hr), nil)
	assert.EqualValues(t, 0, body["count"])
}

func TestLeaveApproval(t *testing.T) {
	f := newAPIFixture(t, nil)
	apply := func(u user.User) string {
		rec, body := f.do(t, http.MethodPost, "/api/leaves", f.token(t, u), map[string]string{
			"leaveType": "Casual Leave", "startDate": "2025-03-12", "endDate": "2025-03-12", "reason": "errand",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return body["leave"].(map[string]any)["id"].(string)
	}
	aliceLeave := apply(f.alice)
	carolLeave := apply(f.carol)
	managerToken := f.token(t, f.manager)

	rec, body := f.do(t, http.MethodPut, "/api/leaves/"+carolLeave+"/approve", managerToken, map[string]string{"comments": "ok"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only approve leaves for your team members", body["message"])

	rec, body = f.do(t, http.MethodPut, "/api/leaves/"+aliceLeave+"/approve", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := body["leave"].(map[string]any)
	assert.Equal(t, "approved", approved["status"])
	assert.Equal(t, "John Smith", approved["approver"].(map[string]any)["name"])

	rec, body = f.do(t, http.MethodPut, "/api/leaves/"+aliceLeave+"/reject", f.token(t, f.hr), map[string]string{"comments": "late"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Leave has already been processed", body["message"])

	rec, _ = f.do(t, http.MethodPut, "/api/leaves/"+aliceLeave+"/approve", f.token(t, f.alice), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendancePunchFlow(t *testing.T) {
	f := newAPIFixture(t, nil)
	token := f.token(t, f.alice)

	rec, body := f.do(t, http.MethodGet, "/api/attendance/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "not_punched_in", body["status"])
	assert.NotContains(t, body, "data")

	rec, body = f.do(t, http.MethodPost, "/api/attendance/punch-in", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Scrum note is required for punch in.", body["message"])

	rec, body = f.do(t, http.MethodPost, "/api/attendance/punch-in", token, map[string]string{"scrumNote": "standup"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Punched in successfully", body["message"])

	rec, body = f.do(t, http.MethodPost, "/api/attendance/punch-in", token, map[string]string{"scrumNote": "again"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already punched in for today.", body["message"])

	f.clock = f.clock.Add(8*time.Hour + 30*time.Minute)
	rec, body = f.do(t, http.MethodPost, "/api/attendance/punch-out", token, map[string]string{"workReport": "done"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Punched out successfully", body["message"])
	assert.EqualValues(t, 510, body["attendance"].(map[string]any)["duration"])

	rec, body = f.do(t, http.MethodPost, "/api/attendance/punch-out", token, map[string]string{"workReport": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already punched out for today.", body["message"])

	_, body = f.do(t, http.MethodGet, "/api/attendance/status", token, nil)
	assert.Equal(t, "punched_out", body["status"])
	assert.Contains(t, body, "data")

	rec, _ = f.do(t, http.MethodGet, "/api/attendance", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body = f.do(t, http.MethodGet, "/api/attendance?date=2025-03-10", f.token(t, f.manager), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
	assert.Len(t, body["records"], 1)
}

func TestRoleMutationsRequireSuperAdmin(t *testing.T) {
	f := newAPIFixture(t, nil)
	payload := map[string]any{"name": "Auditor", "permissions": []string{"audit:view"}}

	rec, _ := f.do(t, http.MethodPost, "/api/roles", f.token(t, f.hr), payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := f.do(t, http.MethodPost, "/api/roles", f.token(t, f.superAdmin), payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	roleID := body["role"].(map[string]any)["id"].(string)

	rec, body = f.do(t, http.MethodPost, "/api/roles", f.token(t, f.superAdmin), payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Role with this name already exists", body["message"])

	rec, body = f.do(t, http.MethodGet, "/api/roles/"+roleID, f.token(t, f.alice), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Auditor", body["role"].(map[string]any)["name"])

	rec, _ = f.do(t, http.MethodDelete, "/api/roles/"+roleID, f.token(t, f.superAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = f.do(t, http.MethodGet, "/api/roles/"+roleID, f.token(t, f.alice), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Role not found", body["message"])
}

func TestSystemRolesSurviveMutations(t *testing.T) {
	f := newAPIFixture(t, nil)
	token := f.token(t, f.superAdmin)
	require.NotNil(t, f.superAdmin.RoleID)
	path := "/api/roles/" + *f.superAdmin.RoleID

	rec, body := f.do(t, http.MethodPut, path, token, map[string]string{"name": "Owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "System roles cannot be renamed or deleted", body["message"])

	rec, _ = f.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/roles", token, map[string]any{"name": "Auditor", "permissions": []string{"audit:view"}})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec, _ = f.do(t, http.MethodGet, "/api/audit-logs", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDepartmentsListUnpaginated(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec, body := f.do(t, http.MethodGet, "/api/departments", f.token(t, f.alice), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["count"])
	assert.EqualValues(t, 1, body["totalPages"])
	departments := body["departments"].([]any)
	require.Len(t, departments, 2)
	assert.Equal(t, "Engineering", departments[0].(map[string]any)["name"])

	rec, body = f.do(t, http.MethodPost, "/api/departments", f.token(t, f.hr), map[string]string{"name": "Engineering"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Department with this name already exists", body["message"])
}

func TestDashboardScopeFollowsRole(t *testing.T) {
	f := newAPIFixture(t, nil)

	cases := map[string]user.User{
		"organization": f.hr,
		"department":   f.manager,
		"personal":     f.alice,
	}
	for scope, u := range cases {
		rec, body := f.do(t, http.MethodGet, "/api/dashboard/stats", f.token(t, u), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, scope, body["scope"])
		assert.Contains(t, body, "stats")
	}
}

func TestAuditLogsRecordRequests(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec, _ := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@emporia.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/audit-logs", f.token(t, f.hr), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := f.do(t, http.MethodGet, "/api/audit-logs?action=LOGIN", f.token(t, f.superAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, body["count"])
	logs := body["auditLogs"].([]any)
	require.Len(t, logs, 1)
	assert.Equal(t, "user:login", logs[0].(map[string]any)["action"])
}

func TestAuditLogsOmitPasswords(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec, _ := f.do(t, http.MethodPut, "/api/employees/"+f.alice.ID, f.token(t, f.hr),
		map[string]string{"name": "Alice J", "password": "hunter2-plaintext"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, body := f.do(t, http.MethodGet, "/api/audit-logs?action=employee:update", f.token(t, f.superAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hunter2-plaintext")

	logs := body["auditLogs"].([]any)
	require.Len(t, logs, 1)
	assert.Equal(t, map[string]any{"name": "Alice J"}, logs[0].(map[string]any)["metadata"])
}

func TestServerErrorEnvelope(t *testing.T) {
	f := newAPIFixture(t, stubReportService{
		employees: func(context.Context) ([]report.EmployeeReportRow, error) {
			return nil, errors.New("connection refused")
		},
	})
	token := f.token(t, f.hr)

	rec, body := f.do(t, http.MethodGet, "/api/reports/employees", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", body["message"])
	assert.Equal(t, "connection refused", body["error"])

	response.SetProduction(true)
	t.Cleanup(func() { response.SetProduction(false) })

	rec, body = f.do(t, http.MethodGet, "/api/reports/employees", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "message": "Server error"}, body)
}
