package user

import (
	"context"
	"slices"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// RoleInfo is the resolved role reference carried on a User.
type RoleInfo struct {
	ID          string
	Name        string
	Permissions []Permission
}

// DepartmentInfo is the resolved department reference carried on a User.
type DepartmentInfo struct {
	ID   string
	Name string
}

type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	RoleID         *string
	DepartmentID   *string
	Status         Status
	Phone          string
	Address        string
	ProfilePicture string
	DateOfJoining  time.Time
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join
	Role       *RoleInfo
	Department *DepartmentInfo
}

// Summary is the {id, name, email} projection used when populating
// references such as approver or audit performer.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Kind returns the role variant. A user without a role is treated as custom.
func (u User) Kind() RoleKind {
	if u.Role == nil {
		return RoleKindCustom
	}
	return KindOf(u.Role.Name)
}

// HasAnyPermission reports whether the user's role grants at least one of perms.
// Super Admin holds every permission regardless of the stored list.
func (u User) HasAnyPermission(perms ...Permission) bool {
	if u.Role == nil {
		return false
	}
	if u.Kind() == RoleKindSuperAdmin {
		return len(perms) > 0
	}
	for _, p := range perms {
		if slices.Contains(u.Role.Permissions, p) {
			return true
		}
	}
	return false
}

func (u User) IsActive() bool {
	return u.Status == StatusActive && !u.IsDeleted
}

// Scope restricts whose records an actor may see. The zero value is
// unrestricted.
type Scope struct {
	UserID       string
	DepartmentID string
}

func (s Scope) Unrestricted() bool {
	return s.UserID == "" && s.DepartmentID == ""
}

// DataScope derives the visibility of leave and attendance data from the role
// variant: admins see everything, managers their department, everyone else
// (including custom roles and managers without a department) only themselves.
func (u User) DataScope() Scope {
	switch u.Kind() {
	case RoleKindSuperAdmin, RoleKindHRAdmin:
		return Scope{}
	case RoleKindManager:
		if u.DepartmentID != nil {
			return Scope{DepartmentID: *u.DepartmentID}
		}
	}
	return Scope{UserID: u.ID}
}

type actorKey struct{}

// WithActor stores the authenticated user on the context.
func WithActor(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, actorKey{}, u)
}

// ActorFromContext returns the authenticated user placed by the auth middleware.
func ActorFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(actorKey{}).(User)
	return u, ok
}
