package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave not found")
	ErrLeaveAlreadyProcessed = errors.New("leave has already been processed")
	ErrInvalidDateRange      = errors.New("end date must be after start date")
	ErrNotTeamMemberApprove  = errors.New("you can only approve leaves for your team members")
	ErrNotTeamMemberReject   = errors.New("you can only reject leaves for your team members")
	ErrNotLeaveOwner         = errors.New("you can only modify your own leave requests")
)
