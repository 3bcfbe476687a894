package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
)

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role_id, u.department_id, u.status,
		u.phone, u.address, u.profile_picture, u.date_of_joining, u.is_deleted, u.created_at, u.updated_at,
		r.id, r.name, r.permissions, d.id, d.name
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id
	LEFT JOIN departments d ON d.id = u.department_id
`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row rowScanner) (user.User, error) {
	var (
		u           user.User
		roleID      *string
		roleName    *string
		permissions []string
		deptID      *string
		deptName    *string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.DepartmentID, &u.Status,
		&u.Phone, &u.Address, &u.ProfilePicture, &u.DateOfJoining, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt,
		&roleID, &roleName, &permissions, &deptID, &deptName,
	)
	if err != nil {
		return user.User{}, err
	}
	if roleID != nil {
		perms, _ := user.ParsePermissions(permissions)
		u.Role = &user.RoleInfo{ID: *roleID, Name: deref(roleName), Permissions: perms}
	}
	if deptID != nil {
		u.Department = &user.DepartmentInfo{ID: *deptID, Name: deref(deptName)}
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	if !isUUID(id) {
		return user.User{}, user.ErrUserNotFound
	}
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, userSelect+" WHERE u.id = $1", id))
	if err != nil {
		if database.NoRows(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// GetActiveByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetActiveByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, userSelect+" WHERE LOWER(u.email) = LOWER($1) AND u.is_deleted = FALSE", email))
	if err != nil {
		if database.NoRows(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return user.User{}, err
	}

	query := `
		INSERT INTO users (
			id, name, email, password_hash, role_id, department_id, status,
			phone, address, profile_picture, date_of_joining
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = q.Exec(ctx, query,
		id, newUser.Name, strings.ToLower(newUser.Email), newUser.PasswordHash, newUser.RoleID, newUser.DepartmentID,
		newUser.Status, newUser.Phone, newUser.Address, newUser.ProfilePicture, newUser.DateOfJoining,
	)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update implements user.UserRepository. The password is left untouched.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = $1, email = $2, role_id = $3, department_id = $4, status = $5,
			phone = $6, address = $7, profile_picture = $8, updated_at = NOW()
		WHERE id = $9 AND is_deleted = FALSE
	`
	tag, err := q.Exec(ctx, query,
		u.Name, strings.ToLower(u.Email), u.RoleID, u.DepartmentID, u.Status,
		u.Phone, u.Address, u.ProfilePicture, u.ID,
	)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.User{}, user.ErrUserNotFound
	}

	return r.GetByID(ctx, u.ID)
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2 AND is_deleted = FALSE`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// SoftDelete implements user.UserRepository.
func (r *userRepositoryImpl) SoftDelete(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_deleted = TRUE, status = $1, updated_at = NOW()
		WHERE id = $2 AND is_deleted = FALSE
	`
	tag, err := q.Exec(ctx, query, user.StatusInactive, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE u.is_deleted = FALSE"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (u.name ILIKE $%d ESCAPE '\\' OR u.email ILIKE $%d ESCAPE '\\')", argIdx, argIdx)
		args = append(args, containsPattern(filter.Search))
		argIdx++
	}
	if filter.DepartmentID != "" {
		whereClause += fmt.Sprintf(" AND u.department_id = $%d", argIdx)
		args = append(args, filter.DepartmentID)
		argIdx++
	}
	if filter.RoleID != "" {
		whereClause += fmt.Sprintf(" AND u.role_id = $%d", argIdx)
		args = append(args, filter.RoleID)
		argIdx++
	}
	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND u.status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users u "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := userSelect + whereClause + " ORDER BY u.created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// IDsInDepartment implements user.UserRepository.
func (r *userRepositoryImpl) IDsInDepartment(ctx context.Context, departmentID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM users WHERE department_id = $1 AND is_deleted = FALSE`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list department members: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetSummaries implements user.UserRepository. Unknown ids are omitted.
func (r *userRepositoryImpl) GetSummaries(ctx context.Context, ids []string) (map[string]user.Summary, error) {
	summaries := make(map[string]user.Summary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, email FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get user summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s user.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, err
		}
		summaries[s.ID] = s
	}
	return summaries, rows.Err()
}

// Counts implements user.UserRepository.
func (r *userRepositoryImpl) Counts(ctx context.Context) (user.Counts, error) {
	q := GetQuerier(ctx, r.db)

	var counts user.Counts
	err := q.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'inactive' THEN 1 ELSE 0 END), 0)
		FROM users
		WHERE is_deleted = FALSE
	`).Scan(&counts.Total, &counts.Active, &counts.Inactive)
	if err != nil {
		return user.Counts{}, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT u.department_id, COALESCE(d.name, ''), COUNT(*)
		FROM users u
		LEFT JOIN departments d ON d.id = u.department_id
		WHERE u.is_deleted = FALSE
		GROUP BY u.department_id, d.name
		ORDER BY COUNT(*) DESC, d.name
	`)
	if err != nil {
		return user.Counts{}, fmt.Errorf("failed to count users by department: %w", err)
	}
	defer rows.Close()

	counts.ByDepartment = []user.DepartmentCount{}
	for rows.Next() {
		var dc user.DepartmentCount
		if err := rows.Scan(&dc.DepartmentID, &dc.DepartmentName, &dc.Count); err != nil {
			return user.Counts{}, err
		}
		counts.ByDepartment = append(counts.ByDepartment, dc)
	}
	return counts, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
