package fixtures

import (
	"context"
	"testing"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeed(t *testing.T) {
	store := servicetest.NewStore()
	seeder := NewSeeder(store.RoleRepository(), store.DepartmentRepository(), store.UserRepository()).
		WithHashCost(bcrypt.MinCost)
	ctx := context.Background()

	result, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Roles: 4, Departments: 5, Users: 7}, result)

	admin, err := store.UserRepository().GetActiveByEmail(ctx, "admin@emporia.com")
	require.NoError(t, err)
	require.NotNil(t, admin.Role)
	assert.Equal(t, string(user.RoleKindSuperAdmin), admin.Role.Name)
	assert.ElementsMatch(t, user.AllPermissions, admin.Role.Permissions)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	eng, err := store.DepartmentRepository().GetByName(ctx, "Engineering")
	require.NoError(t, err)
	require.NotNil(t, eng.Manager)
	assert.Equal(t, "john.smith@emporia.com", eng.Manager.Email)

	t.Run("second run inserts nothing", func(t *testing.T) {
		again, err := seeder.Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, SeedResult{}, again)

		_, total, err := store.DepartmentRepository().List(ctx, department.ListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)

		_, users, err := store.UserRepository().List(ctx, user.ListFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 7, users)
	})
}

func TestSeedKeepsEditedRows(t *testing.T) {
	store := servicetest.NewStore()
	ctx := context.Background()
	custom := store.AddRole(user.RoleKindManager)
	custom.Permissions = []user.Permission{user.PermissionLeaveView}
	_, err := store.RoleRepository().Update(ctx, custom)
	require.NoError(t, err)

	result, err := NewSeeder(store.RoleRepository(), store.DepartmentRepository(), store.UserRepository()).
		WithHashCost(bcrypt.MinCost).
		Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Roles)

	manager, err := store.RoleRepository().GetByName(ctx, string(user.RoleKindManager))
	require.NoError(t, err)
	assert.Equal(t, []user.Permission{user.PermissionLeaveView}, manager.Permissions)
}
