package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Action tags written by the mutating operations.
const (
	ActionUserLogin          = "user:login"
	ActionUserChangePassword = "user:change-password"
	ActionUserResetPassword  = "user:reset-password"
	ActionEmployeeCreate     = "employee:create"
	ActionEmployeeUpdate     = "employee:update"
	ActionEmployeeDelete     = "employee:delete"
	ActionDepartmentCreate   = "department:create"
	ActionDepartmentUpdate   = "department:update"
	ActionDepartmentDelete   = "department:delete"
	ActionRoleCreate         = "role:create"
	ActionRoleUpdate         = "role:update"
	ActionRoleDelete         = "role:delete"
	ActionLeaveApply         = "leave:apply"
	ActionLeaveUpdate        = "leave:update"
	ActionLeaveWithdraw      = "leave:withdraw"
	ActionLeaveApprove       = "leave:approve"
	ActionLeaveReject        = "leave:reject"
	ActionAttendancePunchIn  = "attendance:punch-in"
	ActionAttendancePunchOut = "attendance:punch-out"
)

// Target models referenced by TargetModel.
const (
	TargetUser       = "User"
	TargetDepartment = "Department"
	TargetRole       = "Role"
	TargetLeave      = "Leave"
	TargetAttendance = "Attendance"
)

// Entry is what callers hand to the Logger.
type Entry struct {
	Action      string
	PerformedBy string
	Description string
	TargetModel string
	TargetID    string
	Metadata    json.RawMessage
}

// AuditLog is one persisted, immutable record.
type AuditLog struct {
	ID          string
	Action      string
	PerformedBy *string
	Description string
	TargetModel string
	TargetID    string
	Metadata    json.RawMessage
	IPAddress   string
	CreatedAt   time.Time
}

type ipKey struct{}

// WithIP stores the requester address for entries logged during the request.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

func IPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey{}).(string)
	return ip
}

// RequestMetadata turns a request body into entry metadata. Invalid JSON is
// dropped and any key naming a password is removed from objects, at any depth.
func RequestMetadata(body json.RawMessage) json.RawMessage {
	if !json.Valid(body) {
		return nil
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil
	}
	out, err := json.Marshal(stripSecrets(doc))
	if err != nil {
		return nil
	}
	return out
}

func stripSecrets(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if strings.Contains(strings.ToLower(k), "password") {
				delete(t, k)
				continue
			}
			t[k] = stripSecrets(child)
		}
	case []any:
		for i, child := range t {
			t[i] = stripSecrets(child)
		}
	}
	return v
}
