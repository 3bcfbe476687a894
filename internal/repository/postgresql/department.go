package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const departmentSelect = `
	SELECT d.id, d.name, d.manager_id, d.description, d.created_at, d.updated_at,
		m.id, m.name, m.email
	FROM departments d
	LEFT JOIN users m ON m.id = d.manager_id
`

const foreignKeyViolation = "23503"

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func scanDepartment(row rowScanner) (department.Department, error) {
	var (
		d            department.Department
		managerID    *string
		managerName  *string
		managerEmail *string
	)
	err := row.Scan(&d.ID, &d.Name, &d.ManagerID, &d.Description, &d.CreatedAt, &d.UpdatedAt,
		&managerID, &managerName, &managerEmail)
	if err != nil {
		return department.Department{}, err
	}
	if managerID != nil {
		d.Manager = &user.Summary{ID: *managerID, Name: deref(managerName), Email: deref(managerEmail)}
	}
	return d, nil
}

func mapDepartmentWriteError(err error) error {
	if _, ok := database.UniqueViolation(err); ok {
		return department.ErrDepartmentNameExists
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return department.ErrManagerNotFound
	}
	return err
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return department.Department{}, err
	}

	_, err = q.Exec(ctx, `INSERT INTO departments (id, name, manager_id, description) VALUES ($1, $2, $3, $4)`,
		id, d.Name, d.ManagerID, d.Description)
	if err != nil {
		if mapped := mapDepartmentWriteError(err); mapped != err {
			return department.Department{}, mapped
		}
		return department.Department{}, fmt.Errorf("failed to insert department: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	if !isUUID(id) {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, departmentSelect+" WHERE d.id = $1", id))
	if err != nil {
		if database.NoRows(err) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department by id: %w", err)
	}
	return d, nil
}

// GetByName implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, departmentSelect+" WHERE d.name = $1", name))
	if err != nil {
		if database.NoRows(err) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department by name: %w", err)
	}
	return d, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, filter department.ListFilter) ([]department.Department, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := ""
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		whereClause = fmt.Sprintf(" WHERE d.name ILIKE $%d ESCAPE '\\'", argIdx)
		args = append(args, containsPattern(filter.Search))
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM departments d"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	query := departmentSelect + whereClause + " ORDER BY d.name ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := []department.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE departments
		SET name = $1, manager_id = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`, d.Name, d.ManagerID, d.Description, d.ID)
	if err != nil {
		if mapped := mapDepartmentWriteError(err); mapped != err {
			return department.Department{}, mapped
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return r.GetByID(ctx, d.ID)
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
	var detached int64
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE users SET department_id = NULL, updated_at = NOW() WHERE department_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to detach department members: %w", err)
		}
		detached = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete department: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return department.ErrDepartmentNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return detached, nil
}
