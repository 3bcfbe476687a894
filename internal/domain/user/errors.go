package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("user with this email already exists")
	ErrUserInactive            = errors.New("user account is inactive")
	ErrUserDeleted             = errors.New("user account has been deleted")
	ErrUnauthenticated         = errors.New("not authorized to access this route")
	ErrInsufficientPermissions = errors.New("you do not have permission to perform this action")
)
