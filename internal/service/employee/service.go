package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/employee"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/role"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/email"
	authservice "github.com/emporia-hr/emporia-backend-go/internal/service/auth"
)

type EmployeeServiceImpl struct {
	userRepo       user.UserRepository
	roleRepo       role.RoleRepository
	departmentRepo department.DepartmentRepository
	auditLogger    audit.Logger
	emailService   email.EmailService
	loginURL       string
	now            func() time.Time
}

func NewEmployeeService(
	userRepo user.UserRepository,
	roleRepo role.RoleRepository,
	departmentRepo department.DepartmentRepository,
	auditLogger audit.Logger,
	emailService email.EmailService,
	frontendURL string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		departmentRepo: departmentRepo,
		auditLogger:    auditLogger,
		emailService:   emailService,
		loginURL:       strings.TrimRight(frontendURL, "/") + "/login",
		now:            time.Now,
	}
}

func actorID(ctx context.Context) string {
	actor, _ := user.ActorFromContext(ctx)
	return actor.ID
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, query employee.ListQuery) (employee.ListResponse, error) {
	if err := query.Validate(); err != nil {
		return employee.ListResponse{}, err
	}

	users, total, err := s.userRepo.List(ctx, user.ListFilter{
		Search:       query.Search,
		DepartmentID: query.Department,
		RoleID:       query.Role,
		Status:       user.Status(query.Status),
		Limit:        query.Limit,
		Offset:       (query.Page - 1) * query.Limit,
	})
	if err != nil {
		return employee.ListResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}

	return employee.ListResponse{
		Employees:  responses,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

func (s *EmployeeServiceImpl) get(ctx context.Context, id string) (user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, employee.ErrEmployeeNotFound
		}
		return user.User{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if u.IsDeleted {
		return user.User{}, employee.ErrEmployeeNotFound
	}
	return u, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.get(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

func (s *EmployeeServiceImpl) checkRole(ctx context.Context, roleID string) error {
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return employee.ErrInvalidRole
		}
		return fmt.Errorf("failed to get role: %w", err)
	}
	return nil
}

func (s *EmployeeServiceImpl) checkDepartment(ctx context.Context, departmentID string) error {
	if _, err := s.departmentRepo.GetByID(ctx, departmentID); err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return employee.ErrInvalidDepartment
		}
		return fmt.Errorf("failed to get department: %w", err)
	}
	return nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if err := s.checkRole(ctx, req.Role); err != nil {
		return user.UserResponse{}, err
	}
	if req.Department != nil {
		if err := s.checkDepartment(ctx, *req.Department); err != nil {
			return user.UserResponse{}, err
		}
	}

	hash, err := authservice.HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	joinedAt := req.JoinedAt()
	if joinedAt.IsZero() {
		now := s.now()
		joinedAt = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	roleID := req.Role
	created, err := s.userRepo.Create(ctx, user.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		RoleID:        &roleID,
		DepartmentID:  req.Department,
		Status:        user.Status(req.Status),
		Phone:         req.Phone,
		Address:       req.Address,
		DateOfJoining: joinedAt,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Entry{
		Action:      audit.ActionEmployeeCreate,
		PerformedBy: actorID(ctx),
		Description: "Created employee: " + created.Name,
		TargetModel: audit.TargetUser,
		TargetID:    created.ID,
	})

	email.Notify(ctx, "welcome", func(ctx context.Context) error {
		return s.emailService.SendWelcome(ctx, created.Email, created.Name, s.loginURL)
	})

	return user.NewUserResponse(created), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest, rawBody json.RawMessage) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.get(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		if err := s.checkRole(ctx, *req.Role); err != nil {
			return user.UserResponse{}, err
		}
		u.RoleID = req.Role
	}
	if req.Department.Set {
		if req.Department.Valid {
			if err := s.checkDepartment(ctx, req.Department.Value); err != nil {
				return user.UserResponse{}, err
			}
		}
		u.DepartmentID = req.Department.Ptr()
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		u.Address = strings.TrimSpace(*req.Address)
	}
	if req.Status != nil {
		u.Status = user.Status(*req.Status)
	}
	if req.ProfilePicture != nil {
		u.ProfilePicture = *req.ProfilePicture
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserEmailExists):
			return user.UserResponse{}, err
		case errors.Is(err, user.ErrUserNotFound):
			return user.UserResponse{}, employee.ErrEmployeeNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	entry := audit.Entry{
		Action:      audit.ActionEmployeeUpdate,
		PerformedBy: actorID(ctx),
		Description: "Updated employee: " + updated.Name,
		TargetModel: audit.TargetUser,
		TargetID:    updated.ID,
	}
	entry.Metadata = audit.RequestMetadata(rawBody)
	s.auditLogger.Log(ctx, entry)

	return user.NewUserResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	u, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.SoftDelete(ctx, u.ID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Entry{
		Action:      audit.ActionEmployeeDelete,
		PerformedBy: actorID(ctx),
		Description: "Deleted employee: " + u.Name,
		TargetModel: audit.TargetUser,
		TargetID:    u.ID,
	})
	return nil
}

// Stats implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Stats(ctx context.Context) (employee.StatsResponse, error) {
	counts, err := s.userRepo.Counts(ctx)
	if err != nil {
		return employee.StatsResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}

	departmentStats := make([]employee.DepartmentStat, 0, len(counts.ByDepartment))
	for _, c := range counts.ByDepartment {
		departmentStats = append(departmentStats, employee.DepartmentStat{
			DepartmentID: c.DepartmentID,
			Department:   c.DepartmentName,
			Count:        c.Count,
		})
	}

	return employee.StatsResponse{
		TotalEmployees:    counts.Total,
		ActiveEmployees:   counts.Active,
		InactiveEmployees: counts.Inactive,
		DepartmentStats:   departmentStats,
	}, nil
}
