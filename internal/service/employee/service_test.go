package employee

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/employee"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/role"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type employeeFixture struct {
	store    *servicetest.Store
	recorder *servicetest.AuditRecorder
	mail     *servicetest.EmailRecorder
	svc      *EmployeeServiceImpl
	ctx      context.Context
	staff    role.Role
	eng      department.Department
	hr       user.User
}

func newEmployeeFixture(t *testing.T) employeeFixture {
	t.Helper()

	store := servicetest.NewStore()
	hrRole := store.AddRole(user.RoleKindHRAdmin)
	staff := store.AddRole(user.RoleKindEmployee)
	eng := store.AddDepartment("Engineering")
	hr := store.AddUser("HR Manager", "hr@emporia.com", &hrRole, nil)

	recorder := store.AuditLogger()
	mail := &servicetest.EmailRecorder{}
	svc := NewEmployeeService(store.UserRepository(), store.RoleRepository(), store.DepartmentRepository(), recorder, mail, "http://localhost:5173/").(*EmployeeServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC) }

	return employeeFixture{
		store:    store,
		recorder: recorder,
		mail:     mail,
		svc:      svc,
		ctx:      user.WithActor(context.Background(), hr),
		staff:    staff,
		eng:      eng,
		hr:       hr,
	}
}

func (f employeeFixture) create(t *testing.T, name, email string) user.UserResponse {
	t.Helper()
	created, err := f.svc.Create(f.ctx, employee.CreateEmployeeRequest{
		Name:       name,
		Email:      email,
		Password:   "employee123",
		Role:       f.staff.ID,
		Department: &f.eng.ID,
	})
	require.NoError(t, err)
	return created
}

func TestCreate(t *testing.T) {
	f := newEmployeeFixture(t)

	created := f.create(t, "Alice Johnson", "Alice.Johnson@emporia.com")
	assert.Equal(t, "alice.johnson@emporia.com", created.Email)
	assert.Equal(t, user.StatusActive, created.Status)
	assert.Equal(t, "2025-04-15", created.DateOfJoining)
	require.NotNil(t, created.Role)
	assert.Equal(t, "Employee", created.Role.Name)
	require.NotNil(t, created.Department)
	assert.Equal(t, "Engineering", created.Department.Name)

	stored, ok := f.store.User(created.ID)
	require.True(t, ok)
	assert.NotEqual(t, "employee123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	assert.Equal(t, []string{audit.ActionEmployeeCreate}, f.recorder.Actions())
	require.Eventually(t, func() bool { return len(f.mail.Sent()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "http://localhost:5173/login", f.mail.Sent()[0].Ref)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.svc.Create(f.ctx, employee.CreateEmployeeRequest{
			Name: "Alice Again", Email: "alice.johnson@emporia.com", Password: "employee123", Role: f.staff.ID,
		})
		assert.ErrorIs(t, err, user.ErrUserEmailExists)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := f.svc.Create(f.ctx, employee.CreateEmployeeRequest{
			Name: "Bob", Email: "bob@emporia.com", Password: "employee123", Role: "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b",
		})
		assert.ErrorIs(t, err, employee.ErrInvalidRole)
	})

	t.Run("failed welcome email does not fail creation", func(t *testing.T) {
		f.mail.Err = assert.AnError
		_, err := f.svc.Create(f.ctx, employee.CreateEmployeeRequest{
			Name: "Carol", Email: "carol@emporia.com", Password: "employee123", Role: f.staff.ID,
		})
		assert.NoError(t, err)
	})
}

func TestCreate_DoesNotWaitForMailer(t *testing.T) {
	f := newEmployeeFixture(t)
	f.mail.Err = assert.AnError
	f.mail.Block = make(chan struct{})
	t.Cleanup(func() { close(f.mail.Block) })

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Create(f.ctx, employee.CreateEmployeeRequest{
			Name: "Dana Lee", Email: "dana.lee@emporia.com", Password: "employee123", Role: f.staff.ID,
		})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Create blocked on the mailer")
	}
	assert.Empty(t, f.mail.Sent())
}

func TestUpdate(t *testing.T) {
	f := newEmployeeFixture(t)
	created := f.create(t, "Bob Williams", "bob.williams@emporia.com")

	body := []byte(`{"phone":"555-0102","department":null}`)
	var req employee.UpdateEmployeeRequest
	require.NoError(t, json.Unmarshal(body, &req))

	updated, err := f.svc.Update(f.ctx, created.ID, req, body)
	require.NoError(t, err)
	assert.Equal(t, "555-0102", updated.Phone)
	assert.Nil(t, updated.Department)
	assert.Equal(t, "Bob Williams", updated.Name)

	logs := f.store.AuditLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, audit.ActionEmployeeUpdate, logs[1].Action)
	assert.JSONEq(t, string(body), string(logs[1].Metadata))

	other := f.create(t, "Dave", "dave@emporia.com")
	email := "bob.williams@emporia.com"
	_, err = f.svc.Update(f.ctx, other.ID, employee.UpdateEmployeeRequest{Email: &email}, nil)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestDelete_IsSoft(t *testing.T) {
	f := newEmployeeFixture(t)
	created := f.create(t, "Carol Davis", "carol.davis@emporia.com")

	require.NoError(t, f.svc.Delete(f.ctx, created.ID))

	_, err := f.svc.Get(f.ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, f.svc.Delete(f.ctx, created.ID), employee.ErrEmployeeNotFound)

	stored, ok := f.store.User(created.ID)
	require.True(t, ok)
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, user.StatusInactive, stored.Status)

	list, err := f.svc.List(f.ctx, employee.ListQuery{})
	require.NoError(t, err)
	for _, e := range list.Employees {
		assert.NotEqual(t, created.ID, e.ID)
	}
}

func TestListAndStats(t *testing.T) {
	f := newEmployeeFixture(t)
	f.create(t, "Alice Johnson", "alice.johnson@emporia.com")
	f.create(t, "Bob Williams", "bob.williams@emporia.com")

	list, err := f.svc.List(f.ctx, employee.ListQuery{Search: "bob"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalCount)
	assert.Equal(t, "Bob Williams", list.Employees[0].Name)

	list, err = f.svc.List(f.ctx, employee.ListQuery{Department: f.eng.ID, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.TotalCount)
	assert.Len(t, list.Employees, 1)
	assert.Equal(t, "Bob Williams", list.Employees[0].Name)

	stats, err := f.svc.Stats(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalEmployees)
	assert.EqualValues(t, 3, stats.ActiveEmployees)
	require.Len(t, stats.DepartmentStats, 2)
	assert.Equal(t, "Engineering", stats.DepartmentStats[0].Department)
	assert.EqualValues(t, 2, stats.DepartmentStats[0].Count)
}
