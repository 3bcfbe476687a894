package department

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
	audit.Logger
}

func NewDepartmentService(departmentRepository department.DepartmentRepository, auditLogger audit.Logger) department.DepartmentService {
	return &DepartmentServiceImpl{
		DepartmentRepository: departmentRepository,
		Logger:               auditLogger,
	}
}

func (s *DepartmentServiceImpl) log(ctx context.Context, entry audit.Entry) {
	actor, _ := user.ActorFromContext(ctx)
	entry.PerformedBy = actor.ID
	entry.TargetModel = audit.TargetDepartment
	s.Logger.Log(ctx, entry)
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context, query department.ListQuery) (department.ListResponse, error) {
	query.Normalize()

	filter := department.ListFilter{Search: query.Search}
	if query.Limit > 0 {
		filter.Limit = query.Limit
		filter.Offset = (query.Page - 1) * query.Limit
	}

	departments, total, err := s.DepartmentRepository.List(ctx, filter)
	if err != nil {
		return department.ListResponse{}, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.NewDepartmentResponse(d))
	}

	return department.ListResponse{
		Departments: responses,
		TotalCount:  total,
		Page:        query.Page,
		Limit:       query.Limit,
	}, nil
}

// Get implements department.DepartmentService.
func (s *DepartmentServiceImpl) Get(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.DepartmentResponse{}, err
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to get department: %w", err)
	}
	return department.NewDepartmentResponse(d), nil
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.DepartmentRepository.Create(ctx, department.Department{
		Name:        req.Name,
		ManagerID:   req.Manager,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNameExists) || errors.Is(err, department.ErrManagerNotFound) {
			return department.DepartmentResponse{}, err
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}

	s.log(ctx, audit.Entry{
		Action:      audit.ActionDepartmentCreate,
		Description: "Created department: " + created.Name,
		TargetID:    created.ID,
	})
	return department.NewDepartmentResponse(created), nil
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, id string, req department.UpdateDepartmentRequest, rawBody json.RawMessage) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.DepartmentResponse{}, err
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to get department: %w", err)
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Manager.Set {
		d.ManagerID = req.Manager.Ptr()
	}
	if req.Description.Set {
		d.Description = req.Description.Value
	}

	updated, err := s.DepartmentRepository.Update(ctx, d)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) ||
			errors.Is(err, department.ErrDepartmentNameExists) ||
			errors.Is(err, department.ErrManagerNotFound) {
			return department.DepartmentResponse{}, err
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to update department: %w", err)
	}

	entry := audit.Entry{
		Action:      audit.ActionDepartmentUpdate,
		Description: "Updated department: " + updated.Name,
		TargetID:    updated.ID,
	}
	entry.Metadata = audit.RequestMetadata(rawBody)
	s.log(ctx, entry)
	return department.NewDepartmentResponse(updated), nil
}

// Delete implements department.DepartmentService.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return err
		}
		return fmt.Errorf("failed to get department: %w", err)
	}

	detached, err := s.DepartmentRepository.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}

	metadata, _ := json.Marshal(map[string]int64{"detachedMembers": detached})
	s.log(ctx, audit.Entry{
		Action:      audit.ActionDepartmentDelete,
		Description: "Deleted department: " + d.Name,
		TargetID:    d.ID,
		Metadata:    metadata,
	})
	return nil
}
