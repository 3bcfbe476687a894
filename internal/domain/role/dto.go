package role

import (
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Description string   `json:"description"`

	parsed []user.Permission
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Role name is required"})
	}
	perms, unknown := user.ParsePermissions(r.Permissions)
	if len(unknown) > 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "permissions",
			Message: "Unknown permissions: " + strings.Join(unknown, ", "),
		})
	}
	r.parsed = perms
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedPermissions returns the validated permission set. Only meaningful
// after Validate succeeded.
func (r *CreateRoleRequest) ParsedPermissions() []user.Permission {
	return r.parsed
}

type UpdateRoleRequest struct {
	Name        *string   `json:"name"`
	Permissions *[]string `json:"permissions"`
	Description *string   `json:"description"`

	parsed []user.Permission
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "Role name cannot be empty"})
		}
	}
	if r.Permissions != nil {
		perms, unknown := user.ParsePermissions(*r.Permissions)
		if len(unknown) > 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "permissions",
				Message: "Unknown permissions: " + strings.Join(unknown, ", "),
			})
		}
		r.parsed = perms
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedPermissions returns nil when the request leaves permissions untouched.
func (r *UpdateRoleRequest) ParsedPermissions() []user.Permission {
	if r.Permissions == nil {
		return nil
	}
	return r.parsed
}

type RoleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Permissions []user.Permission `json:"permissions"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func NewRoleResponse(r Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []user.Permission{}
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: perms,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
