package postgresql

import (
	"context"
	"fmt"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
)

const auditColumns = `id, action, performed_by, description, target_model, target_id, metadata, ip_address, created_at`

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

func scanAuditLog(row rowScanner) (audit.AuditLog, error) {
	var (
		l        audit.AuditLog
		metadata []byte
	)
	err := row.Scan(&l.ID, &l.Action, &l.PerformedBy, &l.Description, &l.TargetModel, &l.TargetID,
		&metadata, &l.IPAddress, &l.CreatedAt)
	if err != nil {
		return audit.AuditLog{}, err
	}
	if len(metadata) > 0 {
		l.Metadata = metadata
	}
	return l, nil
}

// Create implements audit.Repository.
func (r *auditRepositoryImpl) Create(ctx context.Context, log audit.AuditLog) error {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		id, err := newID()
		if err != nil {
			return err
		}
		log.ID = id
	}

	var metadata []byte
	if len(log.Metadata) > 0 {
		metadata = log.Metadata
	}

	_, err := q.Exec(ctx, `
		INSERT INTO audit_logs (id, action, performed_by, description, target_model, target_id, metadata, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, log.ID, log.Action, log.PerformedBy, log.Description, log.TargetModel, log.TargetID, metadata, log.IPAddress, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

// List implements audit.Repository.
func (r *auditRepositoryImpl) List(ctx context.Context, filter audit.ListFilter) ([]audit.AuditLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Action != "" {
		whereClause += fmt.Sprintf(" AND action ILIKE $%d ESCAPE '\\'", argIdx)
		args = append(args, containsPattern(filter.Action))
		argIdx++
	}
	if filter.PerformedBy != "" {
		whereClause += fmt.Sprintf(" AND performed_by = $%d", argIdx)
		args = append(args, filter.PerformedBy)
		argIdx++
	}
	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM audit_logs %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		auditColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	logs, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Count implements audit.Repository.
func (r *auditRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}
	return total, nil
}

// TopActions implements audit.Repository.
func (r *auditRepositoryImpl) TopActions(ctx context.Context, limit int) ([]audit.ActionCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT action, COUNT(*) AS count
		FROM audit_logs
		GROUP BY action
		ORDER BY count DESC, action ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate audit actions: %w", err)
	}
	defer rows.Close()

	counts := []audit.ActionCount{}
	for rows.Next() {
		var c audit.ActionCount
		if err := rows.Scan(&c.Action, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Recent implements audit.Repository.
func (r *auditRepositoryImpl) Recent(ctx context.Context, limit int) ([]audit.AuditLog, error) {
	return r.query(ctx, `SELECT `+auditColumns+` FROM audit_logs ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *auditRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]audit.AuditLog, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs := []audit.AuditLog{}
	for rows.Next() {
		l, err := scanAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
