package postgresql

import (
	"context"
	"fmt"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/role"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const roleColumns = `id, name, permissions, description, created_at, updated_at`

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

func scanRole(row rowScanner) (role.Role, error) {
	var (
		r     role.Role
		perms []string
	)
	if err := row.Scan(&r.ID, &r.Name, &perms, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return role.Role{}, err
	}
	r.Permissions, _ = user.ParsePermissions(perms)
	return r, nil
}

func permissionStrings(perms []user.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

// Create implements role.RoleRepository.
func (r *roleRepositoryImpl) Create(ctx context.Context, newRole role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return role.Role{}, err
	}

	query := `
		INSERT INTO roles (id, name, permissions, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + roleColumns

	created, err := scanRole(q.QueryRow(ctx, query, id, newRole.Name, permissionStrings(newRole.Permissions), newRole.Description))
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("failed to insert role: %w", err)
	}
	return created, nil
}

// GetByID implements role.RoleRepository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (role.Role, error) {
	if !isUUID(id) {
		return role.Role{}, role.ErrRoleNotFound
	}
	q := GetQuerier(ctx, r.db)

	found, err := scanRole(q.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		if database.NoRows(err) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role by id: %w", err)
	}
	return found, nil
}

// GetByName implements role.RoleRepository.
func (r *roleRepositoryImpl) GetByName(ctx context.Context, name string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanRole(q.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name))
	if err != nil {
		if database.NoRows(err) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}
	return found, nil
}

// List implements role.RoleRepository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []role.Role{}
	for rows.Next() {
		found, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, found)
	}
	return roles, rows.Err()
}

// Update implements role.RoleRepository.
func (r *roleRepositoryImpl) Update(ctx context.Context, updated role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE roles
		SET name = $1, permissions = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + roleColumns

	saved, err := scanRole(q.QueryRow(ctx, query, updated.Name, permissionStrings(updated.Permissions), updated.Description, updated.ID))
	if err != nil {
		if database.NoRows(err) {
			return role.Role{}, role.ErrRoleNotFound
		}
		if _, ok := database.UniqueViolation(err); ok {
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("failed to update role: %w", err)
	}
	return saved, nil
}

// Delete implements role.RoleRepository.
func (r *roleRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
	var detached int64
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE users SET role_id = NULL, updated_at = NOW() WHERE role_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to detach role from users: %w", err)
		}
		detached = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return role.ErrRoleNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return detached, nil
}
