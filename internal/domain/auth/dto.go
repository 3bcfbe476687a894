package auth

import (
	"strings"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

const MinPasswordLength = 6

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || r.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.CurrentPassword == "" || r.NewPassword == "" {
		errs = append(errs, validator.ValidationError{Field: "newPassword", Message: "Please provide current and new password"})
	} else if !validator.MinLength(r.NewPassword, MinPasswordLength) {
		errs = append(errs, validator.ValidationError{Field: "newPassword", Message: "Password must be at least 6 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.NewPassword == "" {
		errs = append(errs, validator.ValidationError{Field: "newPassword", Message: "Please provide a new password"})
	} else if !validator.MinLength(r.NewPassword, MinPasswordLength) {
		errs = append(errs, validator.ValidationError{Field: "newPassword", Message: "Password must be at least 6 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SessionUser is the compact user view returned next to a fresh token.
type SessionUser struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Email          string                   `json:"email"`
	Role           *user.RoleResponse       `json:"role"`
	Department     *user.DepartmentResponse `json:"department"`
	ProfilePicture string                   `json:"profilePicture"`
}

func NewSessionUser(u user.User) SessionUser {
	full := user.NewUserResponse(u)
	return SessionUser{
		ID:             full.ID,
		Name:           full.Name,
		Email:          full.Email,
		Role:           full.Role,
		Department:     full.Department,
		ProfilePicture: full.ProfilePicture,
	}
}

type LoginResponse struct {
	Token     string
	ExpiresAt int64
	User      SessionUser
}
