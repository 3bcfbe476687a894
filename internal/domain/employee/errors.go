package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidRole       = errors.New("selected role does not exist")
	ErrInvalidDepartment = errors.New("selected department does not exist")
)
