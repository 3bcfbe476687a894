package role

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/role"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type RoleServiceImpl struct {
	role.RoleRepository
	audit.Logger
}

func NewRoleService(roleRepository role.RoleRepository, auditLogger audit.Logger) role.RoleService {
	return &RoleServiceImpl{
		RoleRepository: roleRepository,
		Logger:         auditLogger,
	}
}

func (s *RoleServiceImpl) log(ctx context.Context, entry audit.Entry) {
	actor, _ := user.ActorFromContext(ctx)
	entry.PerformedBy = actor.ID
	entry.TargetModel = audit.TargetRole
	s.Logger.Log(ctx, entry)
}

// List implements role.RoleService.
func (s *RoleServiceImpl) List(ctx context.Context) ([]role.RoleResponse, error) {
	roles, err := s.RoleRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	responses := make([]role.RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, role.NewRoleResponse(r))
	}
	return responses, nil
}

func (s *RoleServiceImpl) get(ctx context.Context, id string) (role.Role, error) {
	r, err := s.RoleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return role.Role{}, err
		}
		return role.Role{}, fmt.Errorf("failed to get role: %w", err)
	}
	return r, nil
}

// Get implements role.RoleService.
func (s *RoleServiceImpl) Get(ctx context.Context, id string) (role.RoleResponse, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.NewRoleResponse(r), nil
}

// Create implements role.RoleService.
func (s *RoleServiceImpl) Create(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	created, err := s.RoleRepository.Create(ctx, role.Role{
		Name:        req.Name,
		Permissions: req.ParsedPermissions(),
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, role.ErrRoleNameExists) {
			return role.RoleResponse{}, err
		}
		return role.RoleResponse{}, fmt.Errorf("failed to create role: %w", err)
	}

	s.log(ctx, audit.Entry{
		Action:      audit.ActionRoleCreate,
		Description: "Created role: " + created.Name,
		TargetID:    created.ID,
	})
	return role.NewRoleResponse(created), nil
}

// Update implements role.RoleService.
func (s *RoleServiceImpl) Update(ctx context.Context, id string, req role.UpdateRoleRequest, rawBody json.RawMessage) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	r, err := s.get(ctx, id)
	if err != nil {
		return role.RoleResponse{}, err
	}

	if req.Name != nil && *req.Name != r.Name {
		// Role kinds are derived from names, so a rename must not move a role
		// into or out of the system set.
		if user.KindOf(r.Name) != user.RoleKindCustom || user.KindOf(*req.Name) != user.RoleKindCustom {
			return role.RoleResponse{}, role.ErrSystemRole
		}
		r.Name = *req.Name
	}
	if perms := req.ParsedPermissions(); perms != nil {
		r.Permissions = perms
	}
	if req.Description != nil {
		r.Description = *req.Description
	}

	updated, err := s.RoleRepository.Update(ctx, r)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) || errors.Is(err, role.ErrRoleNameExists) {
			return role.RoleResponse{}, err
		}
		return role.RoleResponse{}, fmt.Errorf("failed to update role: %w", err)
	}

	entry := audit.Entry{
		Action:      audit.ActionRoleUpdate,
		Description: "Updated role: " + updated.Name,
		TargetID:    updated.ID,
	}
	entry.Metadata = audit.RequestMetadata(rawBody)
	s.log(ctx, entry)
	return role.NewRoleResponse(updated), nil
}

// Delete implements role.RoleService. Users holding the role are detached
// rather than blocking the delete.
func (s *RoleServiceImpl) Delete(ctx context.Context, id string) error {
	r, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if user.KindOf(r.Name) != user.RoleKindCustom {
		return role.ErrSystemRole
	}

	detached, err := s.RoleRepository.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}

	metadata, _ := json.Marshal(map[string]int64{"detachedUsers": detached})
	s.log(ctx, audit.Entry{
		Action:      audit.ActionRoleDelete,
		Description: "Deleted role: " + r.Name,
		TargetID:    r.ID,
		Metadata:    metadata,
	})
	return nil
}
