package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/dashboard"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	superAdmin := store.AddRole(user.RoleKindSuperAdmin)
	managerRole := store.AddRole(user.RoleKindManager)
	staff := store.AddRole(user.RoleKindEmployee)
	contractor := store.AddRole(user.RoleKindCustom)
	eng := store.AddDepartment("Engineering")
	finance := store.AddDepartment("Finance")

	admin := store.AddUser("System Admin", "admin@emporia.com", &superAdmin, nil)
	manager := store.AddUser("John Smith", "john.smith@emporia.com", &managerRole, &eng)
	loneManager := store.AddUser("Pat Lee", "pat.lee@emporia.com", &managerRole, nil)
	alice := store.AddUser("Alice Johnson", "alice.johnson@emporia.com", &staff, &eng)
	carol := store.AddUser("Carol Davis", "carol.davis@emporia.com", &staff, &finance)
	temp := store.AddUser("Tom Temp", "tom@emporia.com", &contractor, nil)

	leaves := store.LeaveRepository()
	for _, employeeID := range []string{alice.ID, alice.ID, carol.ID} {
		_, err := leaves.Create(ctx, leave.Leave{EmployeeID: employeeID, LeaveType: leave.TypeSick, NumberOfDays: 1})
		require.NoError(t, err)
	}
	aliceLeaves, _, err := leaves.List(ctx, leave.ListFilter{Scope: user.Scope{UserID: alice.ID}})
	require.NoError(t, err)
	_, err = leaves.Resolve(ctx, aliceLeaves[0].ID, leave.StatusApproved, admin.ID, "", time.Now())
	require.NoError(t, err)

	records := store.AttendanceRepository()
	for _, day := range []int{6, 7} {
		_, err := records.Create(ctx, attendance.Attendance{
			UserID: alice.ID, Date: time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent,
		})
		require.NoError(t, err)
	}

	svc := NewDashboardService(store.DashboardRepository(), time.UTC).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC) }

	t.Run("admin gets organization stats", func(t *testing.T) {
		stats, err := svc.GetStats(user.WithActor(ctx, admin))
		require.NoError(t, err)
		assert.Equal(t, dashboard.OrganizationStats{
			TotalEmployees:      6,
			ActiveEmployees:     6,
			TotalDepartments:    2,
			PendingLeaves:       2,
			NewJoinersThisMonth: 6,
		}, stats)
		assert.Equal(t, dashboard.ScopeOrganization, dashboard.NewResponse(stats).Scope)
	})

	t.Run("manager gets department stats", func(t *testing.T) {
		stats, err := svc.GetStats(user.WithActor(ctx, manager))
		require.NoError(t, err)
		assert.Equal(t, dashboard.DepartmentStats{
			DepartmentName:  "Engineering",
			TotalEmployees:  2,
			ActiveEmployees: 2,
			PendingLeaves:   1,
		}, stats)
	})

	t.Run("employee gets personal stats", func(t *testing.T) {
		stats, err := svc.GetStats(user.WithActor(ctx, alice))
		require.NoError(t, err)
		assert.Equal(t, dashboard.PersonalStats{
			MyPendingLeaves:         1,
			MyTotalLeaves:           2,
			MyApprovedLeaves:        1,
			AttendanceDaysThisMonth: 2,
		}, stats)
	})

	t.Run("manager without department and custom role fall back to personal", func(t *testing.T) {
		for _, u := range []user.User{loneManager, temp} {
			stats, err := svc.GetStats(user.WithActor(ctx, u))
			require.NoError(t, err)
			assert.Equal(t, dashboard.ScopePersonal, stats.Scope())
		}
	})
}
