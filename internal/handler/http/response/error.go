package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/auth"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/employee"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/role"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, validationErrs.First(), validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrMissingCredentials):
		BadRequest(w, "Please provide email and password", nil)
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrAccountInactive):
		Unauthorized(w, "Your account is inactive. Please contact administrator.")
	case errors.Is(err, auth.ErrCurrentPasswordIncorrect):
		Unauthorized(w, "Current password is incorrect")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrStateMismatch):
		Unauthorized(w, "Not authorized to access this route")
	case errors.Is(err, auth.ErrGoogleEmailNotVerified):
		Unauthorized(w, "Google account email is not verified")
	case errors.Is(err, auth.ErrGoogleLoginDisabled):
		NotFound(w, "Google sign-in is not configured")

	// User domain errors
	case errors.Is(err, user.ErrUnauthenticated):
		Unauthorized(w, "Not authorized to access this route")
	case errors.Is(err, user.ErrUserInactive):
		Unauthorized(w, "User account is inactive")
	case errors.Is(err, user.ErrUserDeleted):
		Unauthorized(w, "User account has been deleted")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		BadRequest(w, "User with this email already exists", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Selected role does not exist", map[string]string{"role": "Selected role does not exist"})
	case errors.Is(err, employee.ErrInvalidDepartment):
		BadRequest(w, "Selected department does not exist", map[string]string{"department": "Selected department does not exist"})

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		BadRequest(w, "Department with this name already exists", nil)
	case errors.Is(err, department.ErrManagerNotFound):
		BadRequest(w, "Selected manager does not exist", map[string]string{"manager": "Selected manager does not exist"})

	// Role domain errors
	case errors.Is(err, role.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, role.ErrRoleNameExists):
		BadRequest(w, "Role with this name already exists", nil)
	case errors.Is(err, role.ErrSystemRole):
		BadRequest(w, "System roles cannot be renamed or deleted", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		BadRequest(w, "Leave has already been processed", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must be after start date", nil)
	case errors.Is(err, leave.ErrNotTeamMemberApprove):
		Forbidden(w, "You can only approve leaves for your team members")
	case errors.Is(err, leave.ErrNotTeamMemberReject):
		Forbidden(w, "You can only reject leaves for your team members")
	case errors.Is(err, leave.ErrNotLeaveOwner):
		Forbidden(w, "You can only modify your own leave requests")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrScrumNoteRequired):
		BadRequest(w, "Scrum note is required for punch in.", nil)
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		BadRequest(w, "You have already punched in for today.", nil)
	case errors.Is(err, attendance.ErrWorkReportRequired):
		BadRequest(w, "Work report is required for punch out.", nil)
	case errors.Is(err, attendance.ErrNoPunchInToday):
		BadRequest(w, "No punch-in record found for today.", nil)
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		BadRequest(w, "You have already punched out for today.", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		ServerError(w, err)
	}
}
