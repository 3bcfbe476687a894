package employee

import (
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/optional"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

const (
	DefaultPageLimit  = 10
	MinPasswordLength = 6
)

type CreateEmployeeRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Role          string  `json:"role"`
	Department    *string `json:"department"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Status        string  `json:"status"`
	DateOfJoining string  `json:"dateOfJoining"`

	joinedAt time.Time
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Please provide a valid email"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password is required"})
	} else if !validator.MinLength(r.Password, MinPasswordLength) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "Role is required"})
	} else if !validator.IsValidUUID(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be a valid role id"})
	}
	if r.Department != nil {
		if *r.Department == "" {
			r.Department = nil
		} else if !validator.IsValidUUID(*r.Department) {
			errs = append(errs, validator.ValidationError{Field: "department", Message: "department must be a valid department id"})
		}
	}
	if r.Status == "" {
		r.Status = string(user.StatusActive)
	} else if !user.Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be active or inactive"})
	}
	if r.DateOfJoining != "" {
		d, ok := validator.ParseDay(r.DateOfJoining)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "dateOfJoining", Message: "dateOfJoining must be a date (YYYY-MM-DD)"})
		}
		r.joinedAt = d
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// JoinedAt is the parsed join date, zero when none was submitted.
func (r *CreateEmployeeRequest) JoinedAt() time.Time {
	return r.joinedAt
}

// UpdateEmployeeRequest applies only the keys present in the body. An explicit
// null department detaches the employee from their department.
type UpdateEmployeeRequest struct {
	Name           *string         `json:"name"`
	Email          *string         `json:"email"`
	Role           *string         `json:"role"`
	Department     optional.String `json:"department"`
	Phone          *string         `json:"phone"`
	Address        *string         `json:"address"`
	Status         *string         `json:"status"`
	ProfilePicture *string         `json:"profilePicture"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "Name cannot be empty"})
		}
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs = append(errs, validator.ValidationError{Field: "email", Message: "Please provide a valid email"})
		}
	}
	if r.Role != nil && !validator.IsValidUUID(*r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be a valid role id"})
	}
	if r.Department.Valid && !validator.IsValidUUID(r.Department.Value) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department must be a valid department id"})
	}
	if r.Status != nil && !user.Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be active or inactive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListQuery struct {
	Search     string
	Department string
	Role       string
	Status     string
	Page       int
	Limit      int
}

func (q *ListQuery) Validate() error {
	var errs validator.ValidationErrors
	q.Search = strings.TrimSpace(q.Search)
	if q.Department != "" && !validator.IsValidUUID(q.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department must be a valid department id"})
	}
	if q.Role != "" && !validator.IsValidUUID(q.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be a valid role id"})
	}
	if q.Status != "" && !user.Status(q.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be active or inactive"})
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListResponse struct {
	Employees  []user.UserResponse
	TotalCount int64
	Page       int
	Limit      int
}

type DepartmentStat struct {
	DepartmentID *string `json:"departmentId"`
	Department   string  `json:"department"`
	Count        int64   `json:"count"`
}

type StatsResponse struct {
	TotalEmployees    int64            `json:"totalEmployees"`
	ActiveEmployees   int64            `json:"activeEmployees"`
	InactiveEmployees int64            `json:"inactiveEmployees"`
	DepartmentStats   []DepartmentStat `json:"departmentStats"`
}
