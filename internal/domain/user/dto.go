package user

import "time"

type RoleResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserResponse is the client-facing view of a User. The password hash is
// never part of it.
type UserResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Role           *RoleResponse       `json:"role"`
	Department     *DepartmentResponse `json:"department"`
	Status         Status              `json:"status"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address"`
	ProfilePicture string              `json:"profilePicture"`
	DateOfJoining  string              `json:"dateOfJoining"`
	IsDeleted      bool                `json:"isDeleted"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Status:         u.Status,
		Phone:          u.Phone,
		Address:        u.Address,
		ProfilePicture: u.ProfilePicture,
		IsDeleted:      u.IsDeleted,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if !u.DateOfJoining.IsZero() {
		resp.DateOfJoining = u.DateOfJoining.Format("2006-01-02")
	}
	if u.Role != nil {
		perms := u.Role.Permissions
		if perms == nil {
			perms = []Permission{}
		}
		resp.Role = &RoleResponse{ID: u.Role.ID, Name: u.Role.Name, Permissions: perms}
	}
	if u.Department != nil {
		resp.Department = &DepartmentResponse{ID: u.Department.ID, Name: u.Department.Name}
	}
	return resp
}
