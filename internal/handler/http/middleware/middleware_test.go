package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func actorWithRole(name string, perms ...user.Permission) user.User {
	return user.User{
		ID:     "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b",
		Name:   "Test Actor",
		Status: user.StatusActive,
		Role:   &user.RoleInfo{ID: "role-1", Name: name, Permissions: perms},
	}
}

func serve(t *testing.T, h http.Handler, actor *user.User) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if actor != nil {
		req = req.WithContext(user.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestRequirePermission(t *testing.T) {
	h := RequirePermission(user.PermissionLeaveApprove, user.PermissionLeaveView)(okHandler)

	rec, body := serve(t, h, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized to access this route", body["message"])

	viewer := actorWithRole("Auditor", user.PermissionLeaveView)
	rec, _ = serve(t, h, &viewer)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	stranger := actorWithRole("Auditor", user.PermissionAuditView)
	rec, body = serve(t, h, &stranger)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "You do not have permission to perform this action", body["message"])

	roleless := user.User{ID: "u1", Status: user.StatusActive}
	rec, _ = serve(t, h, &roleless)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(user.RoleKindSuperAdmin)(okHandler)

	rec, _ := serve(t, h, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	admin := actorWithRole(string(user.RoleKindSuperAdmin))
	rec, _ = serve(t, h, &admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// A custom role holding role:create is still not a Super Admin.
	custom := actorWithRole("Role Editor", user.PermissionRoleCreate)
	rec, body := serve(t, h, &custom)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to perform this action", body["message"])
}

func TestRecoverer(t *testing.T) {
	panicky := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec, body := serve(t, panicky, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Server error", body["message"])
	assert.Equal(t, "boom", body["error"])
	assert.NotEmpty(t, body["stack"])

	response.SetProduction(true)
	t.Cleanup(func() { response.SetProduction(false) })

	rec, body = serve(t, panicky, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"success": false, "message": "Server error"}, body)
}

func TestRecovererRepanicsAbort(t *testing.T) {
	aborting := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		aborting.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
