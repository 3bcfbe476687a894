package department

import (
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/optional"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	Name        string  `json:"name"`
	Manager     *string `json:"manager"`
	Description string  `json:"description"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Department name is required"})
	}
	if r.Manager != nil {
		if *r.Manager == "" {
			r.Manager = nil
		} else if !validator.IsValidUUID(*r.Manager) {
			errs = append(errs, validator.ValidationError{Field: "manager", Message: "manager must be a valid user id"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateDepartmentRequest is a partial update. An explicit null manager or
// description clears it; an absent key leaves it unchanged.
type UpdateDepartmentRequest struct {
	Name        *string         `json:"name"`
	Manager     optional.String `json:"manager"`
	Description optional.String `json:"description"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "Department name cannot be empty"})
		}
	}
	if r.Manager.Valid && !validator.IsValidUUID(r.Manager.Value) {
		errs = append(errs, validator.ValidationError{Field: "manager", Message: "manager must be a valid user id"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListQuery struct {
	Search string
	Page   int
	Limit  int
}

func (q *ListQuery) Normalize() {
	q.Search = strings.TrimSpace(q.Search)
	if q.Limit < 0 {
		q.Limit = 0
	}
	if q.Page < 1 {
		q.Page = 1
	}
}

type DepartmentResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Manager     *user.Summary `json:"manager"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Manager:     d.Manager,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type ListResponse struct {
	Departments []DepartmentResponse
	TotalCount  int64
	Page        int
	Limit       int
}
