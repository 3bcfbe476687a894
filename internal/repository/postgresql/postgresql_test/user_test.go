package postgresql_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/fixtures"
	"github.com/emporia-hr/emporia-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// seed loads the demo dataset and returns the user repository over it.
func seed(t *testing.T, setup *TestDatabaseSetup) user.UserRepository {
	t.Helper()
	users := postgresql.NewUserRepository(setup.DB)
	_, err := fixtures.NewSeeder(
		postgresql.NewRoleRepository(setup.DB),
		postgresql.NewDepartmentRepository(setup.DB),
		users,
	).WithHashCost(bcrypt.MinCost).Seed(context.Background())
	require.NoError(t, err)
	return users
}

func TestUserRepository_GetActiveByEmail(t *testing.T) {
	setup := NewTestDatabase(t)
	users := seed(t, setup)
	ctx := context.Background()

	u, err := users.GetActiveByEmail(ctx, "Alice.Johnson@Emporia.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", u.Name)
	require.NotNil(t, u.Role)
	assert.Equal(t, string(user.RoleKindEmployee), u.Role.Name)
	require.NotNil(t, u.Department)
	assert.Equal(t, "Engineering", u.Department.Name)

	_, err = users.GetActiveByEmail(ctx, "nobody@emporia.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = users.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_SoftDeleteFreesEmail(t *testing.T) {
	setup := NewTestDatabase(t)
	users := seed(t, setup)
	ctx := context.Background()

	bob, err := users.GetActiveByEmail(ctx, "bob.williams@emporia.com")
	require.NoError(t, err)

	_, err = users.Create(ctx, user.User{
		Name: "Bob Clone", Email: "BOB.WILLIAMS@emporia.com", PasswordHash: "x", Status: user.StatusActive,
		DateOfJoining: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	require.NoError(t, users.SoftDelete(ctx, bob.ID))
	assert.ErrorIs(t, users.SoftDelete(ctx, bob.ID), user.ErrUserNotFound)

	deleted, err := users.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.Equal(t, user.StatusInactive, deleted.Status)

	_, err = users.Create(ctx, user.User{
		Name: "Bob Returns", Email: "bob.williams@emporia.com", PasswordHash: "x", Status: user.StatusActive,
		DateOfJoining: time.Now().UTC(),
	})
	assert.NoError(t, err)

	_, total, err := users.List(ctx, user.ListFilter{Search: "bob"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestLeaveRepository_DepartmentScope(t *testing.T) {
	setup := NewTestDatabase(t)
	users := seed(t, setup)
	leaves := postgresql.NewLeaveRepository(setup.DB)
	ctx := context.Background()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, email := range []string{"alice.johnson@emporia.com", "carol.davis@emporia.com"} {
		u, err := users.GetActiveByEmail(ctx, email)
		require.NoError(t, err)
		_, err = leaves.Create(ctx, leave.Leave{
			EmployeeID: u.ID, LeaveType: leave.TypeSick, StartDate: day, EndDate: day, NumberOfDays: 1, Reason: "flu",
		})
		require.NoError(t, err)
	}

	manager, err := users.GetActiveByEmail(ctx, "john.smith@emporia.com")
	require.NoError(t, err)

	scoped, total, err := leaves.List(ctx, leave.ListFilter{Scope: manager.DataScope()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Alice Johnson", scoped[0].Employee.Name)

	_, total, err = leaves.List(ctx, leave.ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, err = leaves.GetByID(ctx, "42")
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestAttendanceRepository_OnePerDay(t *testing.T) {
	setup := NewTestDatabase(t)
	users := seed(t, setup)
	records := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	alice, err := users.GetActiveByEmail(ctx, "alice.johnson@emporia.com")
	require.NoError(t, err)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	punchIn := day.Add(9 * time.Hour)
	_, err = records.Create(ctx, attendance.Attendance{
		UserID: alice.ID, Date: day, PunchIn: punchIn, ScrumNote: "standup", Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	_, err = records.Create(ctx, attendance.Attendance{
		UserID: alice.ID, Date: day, PunchIn: punchIn.Add(time.Hour), ScrumNote: "again", Status: attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)

	today, err := records.GetByUserAndDate(ctx, alice.ID, day)
	require.NoError(t, err)
	assert.Equal(t, "standup", today.ScrumNote)
	assert.True(t, punchIn.Equal(today.PunchIn))
}

func TestUserRepository_SearchMatchesWildcardsLiterally(t *testing.T) {
	setup := NewTestDatabase(t)
	users := seed(t, setup)
	ctx := context.Background()

	for _, name := range []string{"Lee_Ann Park", "LeeXAnn Park", "Ops 100% Lead"} {
		_, err := users.Create(ctx, user.User{
			Name: name, Email: strings.ToLower(strings.NewReplacer(" ", ".", "%", "", "_", "").Replace(name)) + "@emporia.com",
			PasswordHash: "x", Status: user.StatusActive, DateOfJoining: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	found, total, err := users.List(ctx, user.ListFilter{Search: "lee_ann"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, found, 1)
	assert.Equal(t, "Lee_Ann Park", found[0].Name)

	_, total, err = users.List(ctx, user.ListFilter{Search: "100%"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
