package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
)

const leaveSelect = `
	SELECT l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.number_of_days, l.reason,
		l.status, l.approver_id, l.approver_comments, l.approved_at, l.created_at, l.updated_at,
		e.name, e.email, e.department_id, d.name,
		a.id, a.name, a.email
	FROM leaves l
	JOIN users e ON e.id = l.employee_id
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN users a ON a.id = l.approver_id
`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeave(row rowScanner) (leave.Leave, error) {
	var (
		l             leave.Leave
		emp           leave.EmployeeInfo
		deptName      *string
		approverID    *string
		approverName  *string
		approverEmail *string
	)
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.NumberOfDays, &l.Reason,
		&l.Status, &l.ApproverID, &l.ApproverComments, &l.ApprovedAt, &l.CreatedAt, &l.UpdatedAt,
		&emp.Name, &emp.Email, &emp.DepartmentID, &deptName,
		&approverID, &approverName, &approverEmail,
	)
	if err != nil {
		return leave.Leave{}, err
	}
	emp.ID = l.EmployeeID
	emp.DepartmentName = deref(deptName)
	l.Employee = &emp
	if approverID != nil {
		l.Approver = &user.Summary{ID: *approverID, Name: deref(approverName), Email: deref(approverEmail)}
	}
	return l, nil
}

// scopeClause restricts rows to what the scope may see. Department scope only
// covers non-deleted members.
func scopeClause(scope user.Scope, employeeColumn, userAlias string, args []interface{}, argIdx int) (string, []interface{}, int) {
	switch {
	case scope.UserID != "":
		return fmt.Sprintf(" AND %s = $%d", employeeColumn, argIdx), append(args, scope.UserID), argIdx + 1
	case scope.DepartmentID != "":
		clause := fmt.Sprintf(" AND %s.department_id = $%d AND %s.is_deleted = FALSE", userAlias, argIdx, userAlias)
		return clause, append(args, scope.DepartmentID), argIdx + 1
	}
	return "", args, argIdx
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Leave{}, err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO leaves (id, employee_id, leave_type, start_date, end_date, number_of_days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.NumberOfDays, l.Reason, leave.StatusPending)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to insert leave: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	if !isUUID(id) {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, leaveSelect+" WHERE l.id = $1", id))
	if err != nil {
		if database.NoRows(err) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave by id: %w", err)
	}
	return l, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	var clause string
	clause, args, argIdx = scopeClause(filter.Scope, "l.employee_id", "e", args, argIdx)
	whereClause += clause

	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.LeaveType != "" {
		whereClause += fmt.Sprintf(" AND l.leave_type = $%d", argIdx)
		args = append(args, filter.LeaveType)
		argIdx++
	}
	if filter.StartFrom != nil {
		whereClause += fmt.Sprintf(" AND l.start_date >= $%d", argIdx)
		args = append(args, *filter.StartFrom)
		argIdx++
	}
	if filter.StartTo != nil {
		whereClause += fmt.Sprintf(" AND l.start_date <= $%d", argIdx)
		args = append(args, *filter.StartTo)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM leaves l JOIN users e ON e.id = l.employee_id " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	query := leaveSelect + whereClause + " ORDER BY l.created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	leaves := []leave.Leave{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return leaves, total, nil
}

// UpdatePending implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdatePending(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leaves
		SET leave_type = $1, start_date = $2, end_date = $3, number_of_days = $4, reason = $5, updated_at = NOW()
		WHERE id = $6 AND status = $7
	`, l.LeaveType, l.StartDate, l.EndDate, l.NumberOfDays, l.Reason, l.ID, leave.StatusPending)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.Leave{}, r.missingOrProcessed(ctx, l.ID)
	}
	return r.GetByID(ctx, l.ID)
}

// Resolve implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Resolve(ctx context.Context, id string, status leave.Status, approverID, comments string, at time.Time) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leaves
		SET status = $1, approver_id = $2, approver_comments = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`, status, approverID, comments, at, id, leave.StatusPending)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to resolve leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.Leave{}, r.missingOrProcessed(ctx, id)
	}
	return r.GetByID(ctx, id)
}

// DeletePending implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) DeletePending(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1 AND status = $2`, id, leave.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrProcessed(ctx, id)
	}
	return nil
}

// Counts implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Counts(ctx context.Context, scope user.Scope) (leave.Counts, error) {
	q := GetQuerier(ctx, r.db)

	clause, args, _ := scopeClause(scope, "l.employee_id", "e", []interface{}{}, 1)
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN l.status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.status = 'approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.status = 'rejected' THEN 1 ELSE 0 END), 0)
		FROM leaves l
		JOIN users e ON e.id = l.employee_id
		WHERE 1=1` + clause

	var counts leave.Counts
	if err := q.QueryRow(ctx, query, args...).Scan(&counts.Total, &counts.Pending, &counts.Approved, &counts.Rejected); err != nil {
		return leave.Counts{}, fmt.Errorf("failed to count leaves: %w", err)
	}
	return counts, nil
}

// missingOrProcessed explains why a conditional write on a pending leave hit no row.
func (r *leaveRepositoryImpl) missingOrProcessed(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return leave.ErrLeaveAlreadyProcessed
}
