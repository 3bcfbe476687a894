package department

import (
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type Department struct {
	ID          string
	Name        string
	ManagerID   *string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	Manager *user.Summary
}
