package leave

import (
	"context"
	"testing"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
	"github.com/emporia-hr/emporia-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaveFixture struct {
	store    *servicetest.Store
	recorder *servicetest.AuditRecorder
	svc      *LeaveServiceImpl

	hr, manager, alice, bob, carol user.User
}

func newLeaveFixture(t *testing.T) leaveFixture {
	t.Helper()

	store := servicetest.NewStore()
	hrRole := store.AddRole(user.RoleKindHRAdmin)
	managerRole := store.AddRole(user.RoleKindManager)
	staff := store.AddRole(user.RoleKindEmployee)
	eng := store.AddDepartment("Engineering")
	finance := store.AddDepartment("Finance")

	recorder := store.AuditLogger()
	svc := NewLeaveService(store.LeaveRepository(), recorder).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	return leaveFixture{
		store:    store,
		recorder: recorder,
		svc:      svc,
		hr:       store.AddUser("HR Manager", "hr@emporia.com", &hrRole, nil),
		manager:  store.AddUser("John Smith", "john.smith@emporia.com", &managerRole, &eng),
		alice:    store.AddUser("Alice Johnson", "alice.johnson@emporia.com", &staff, &eng),
		bob:      store.AddUser("Bob Williams", "bob.williams@emporia.com", &staff, &eng),
		carol:    store.AddUser("Carol Davis", "carol.davis@emporia.com", &staff, &finance),
	}
}

func as(u user.User) context.Context {
	return user.WithActor(context.Background(), u)
}

func (f leaveFixture) apply(t *testing.T, u user.User, start, end string) leave.LeaveResponse {
	t.Helper()
	resp, err := f.svc.Apply(as(u), leave.ApplyLeaveRequest{LeaveType: "Paid Leave", StartDate: start, EndDate: end, Reason: "Family trip"})
	require.NoError(t, err)
	return resp
}

func TestApply(t *testing.T) {
	f := newLeaveFixture(t)

	resp := f.apply(t, f.alice, "2025-03-10", "2025-03-14")
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 5, resp.NumberOfDays)
	require.NotNil(t, resp.Employee)
	assert.Equal(t, "Alice Johnson", resp.Employee.Name)
	require.NotNil(t, resp.Employee.Department)
	assert.Equal(t, "Engineering", resp.Employee.Department.Name)
	assert.Equal(t, []string{audit.ActionLeaveApply}, f.recorder.Actions())

	_, err := f.svc.Apply(as(f.alice), leave.ApplyLeaveRequest{LeaveType: "Paid Leave", StartDate: "2025-03-14", EndDate: "2025-03-10", Reason: "Backwards"})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = f.svc.Apply(as(f.alice), leave.ApplyLeaveRequest{LeaveType: "Paid Leave"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestList_IsRoleScoped(t *testing.T) {
	f := newLeaveFixture(t)
	f.apply(t, f.alice, "2025-03-10", "2025-03-11")
	f.apply(t, f.bob, "2025-03-12", "2025-03-12")
	f.apply(t, f.carol, "2025-03-13", "2025-03-13")

	cases := []struct {
		name  string
		actor user.User
		want  int64
	}{
		{"employee sees own", f.alice, 1},
		{"manager sees department", f.manager, 2},
		{"hr sees all", f.hr, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := f.svc.List(as(tc.actor), leave.ListQuery{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.TotalCount)

			stats, err := f.svc.Stats(as(tc.actor))
			require.NoError(t, err)
			assert.Equal(t, tc.want, stats.TotalLeaves)
			assert.Equal(t, tc.want, stats.PendingLeaves)
		})
	}

	t.Run("filters narrow the scoped set", func(t *testing.T) {
		resp, err := f.svc.List(as(f.hr), leave.ListQuery{StartDate: "2025-03-12", EndDate: "2025-03-12"})
		require.NoError(t, err)
		require.Len(t, resp.Leaves, 1)
		assert.Equal(t, "Bob Williams", resp.Leaves[0].Employee.Name)
	})

	t.Run("deleted members drop out of the manager scope", func(t *testing.T) {
		require.NoError(t, f.store.UserRepository().SoftDelete(context.Background(), f.bob.ID))
		resp, err := f.svc.List(as(f.manager), leave.ListQuery{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, resp.TotalCount)
	})
}

func TestGet_OutsideScopeIsNotFound(t *testing.T) {
	f := newLeaveFixture(t)
	l := f.apply(t, f.carol, "2025-03-10", "2025-03-10")

	_, err := f.svc.Get(as(f.alice), l.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
	_, err = f.svc.Get(as(f.manager), l.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)

	got, err := f.svc.Get(as(f.hr), l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
}

func TestApproveAndReject(t *testing.T) {
	f := newLeaveFixture(t)

	t.Run("manager approves a team member once", func(t *testing.T) {
		l := f.apply(t, f.alice, "2025-03-10", "2025-03-11")

		approved, err := f.svc.Approve(as(f.manager), l.ID, leave.ReviewLeaveRequest{Comments: "Enjoy"})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, approved.Status)
		require.NotNil(t, approved.Approver)
		assert.Equal(t, f.manager.ID, approved.Approver.ID)
		assert.Equal(t, "Enjoy", approved.ApproverComments)
		require.NotNil(t, approved.ApprovedAt)
		assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), *approved.ApprovedAt)

		_, err = f.svc.Approve(as(f.manager), l.ID, leave.ReviewLeaveRequest{})
		assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
		_, err = f.svc.Reject(as(f.hr), l.ID, leave.ReviewLeaveRequest{})
		assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

		stored, ok := f.store.Leave(l.ID)
		require.True(t, ok)
		assert.Equal(t, leave.StatusApproved, stored.Status)
	})

	t.Run("manager outside the department is forbidden", func(t *testing.T) {
		l := f.apply(t, f.carol, "2025-03-10", "2025-03-10")

		_, err := f.svc.Approve(as(f.manager), l.ID, leave.ReviewLeaveRequest{})
		assert.ErrorIs(t, err, leave.ErrNotTeamMemberApprove)
		_, err = f.svc.Reject(as(f.manager), l.ID, leave.ReviewLeaveRequest{})
		assert.ErrorIs(t, err, leave.ErrNotTeamMemberReject)

		rejected, err := f.svc.Reject(as(f.hr), l.ID, leave.ReviewLeaveRequest{Comments: "Busy quarter"})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, rejected.Status)
	})

	t.Run("unknown leave", func(t *testing.T) {
		_, err := f.svc.Approve(as(f.hr), "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b", leave.ReviewLeaveRequest{})
		assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
	})

	assert.Contains(t, f.recorder.Actions(), audit.ActionLeaveApprove)
	assert.Contains(t, f.recorder.Actions(), audit.ActionLeaveReject)
}

func TestUpdateAndWithdraw(t *testing.T) {
	f := newLeaveFixture(t)
	l := f.apply(t, f.alice, "2025-03-10", "2025-03-10")

	end := "2025-03-12"
	updated, err := f.svc.Update(as(f.alice), l.ID, leave.UpdateLeaveRequest{EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.NumberOfDays)
	assert.Equal(t, "2025-03-12", updated.EndDate)

	_, err = f.svc.Update(as(f.bob), l.ID, leave.UpdateLeaveRequest{EndDate: &end})
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
	assert.ErrorIs(t, f.svc.Withdraw(as(f.manager), l.ID), leave.ErrNotLeaveOwner)

	require.NoError(t, f.svc.Withdraw(as(f.alice), l.ID))
	_, ok := f.store.Leave(l.ID)
	assert.False(t, ok)

	processed := f.apply(t, f.alice, "2025-04-01", "2025-04-01")
	_, err = f.svc.Approve(as(f.hr), processed.ID, leave.ReviewLeaveRequest{})
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.Withdraw(as(f.alice), processed.ID), leave.ErrLeaveAlreadyProcessed)

	mine, err := f.svc.MyLeaves(as(f.alice))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, processed.ID, mine[0].ID)
}
