package role

import "errors"

var (
	ErrRoleNotFound   = errors.New("role not found")
	ErrRoleNameExists = errors.New("role with this name already exists")
	ErrSystemRole     = errors.New("system roles cannot be renamed or deleted")
)
