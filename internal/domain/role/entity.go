package role

import (
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type Role struct {
	ID          string
	Name        string
	Permissions []user.Permission
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r Role) Kind() user.RoleKind {
	return user.KindOf(r.Name)
}
