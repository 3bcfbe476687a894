package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
)

const attendanceColumns = `a.id, a.user_id, a.date, a.punch_in, a.punch_out, a.scrum_note, a.work_report,
	a.duration, a.status, a.created_at, a.updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row rowScanner, extra ...any) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := append([]any{
		&a.ID, &a.UserID, &a.Date, &a.PunchIn, &a.PunchOut, &a.ScrumNote, &a.WorkReport,
		&a.Duration, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendances AS a (id, user_id, date, punch_in, scrum_note, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query, id, a.UserID, a.Date, a.PunchIn, a.ScrumNote, a.Status))
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return created, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.user_id = $1 AND a.date = $2`

	found, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if database.NoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return found, nil
}

// PunchOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) PunchOut(ctx context.Context, id string, at time.Time, workReport string, duration int) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances AS a
		SET punch_out = $1, work_report = $2, duration = $3, updated_at = NOW()
		WHERE a.id = $4 AND a.punch_out IS NULL
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, at, workReport, duration, id))
	if err != nil {
		if database.NoRows(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to punch out: %w", err)
	}
	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	var clause string
	clause, args, argIdx = scopeClause(filter.Scope, "a.user_id", "u", args, argIdx)
	whereClause += clause

	if filter.Date != nil {
		whereClause += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances a JOIN users u ON u.id = a.user_id " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, u.name, u.email, COALESCE(r.name, ''), COALESCE(d.name, '')
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN roles r ON r.id = u.role_id
		LEFT JOIN departments d ON d.id = u.department_id
		%s
		ORDER BY a.date DESC, a.punch_in DESC
	`, attendanceColumns, whereClause)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		var info attendance.UserInfo
		a, err := scanAttendance(rows, &info.Name, &info.Email, &info.RoleName, &info.DepartmentName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		info.ID = a.UserID
		a.User = &info
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func statsWhere(filter attendance.StatsFilter) (string, []interface{}) {
	whereClause := "WHERE a.date >= $1 AND a.date < $2"
	args := []interface{}{filter.From, filter.To}
	argIdx := 3

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
	if filter.UserID != "" {
		whereClause += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, filter.UserID)
	}
	return whereClause, args
}

// DailyTrend implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DailyTrend(ctx context.Context, filter attendance.StatsFilter) ([]attendance.DayTrend, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args := statsWhere(filter)
	query := fmt.Sprintf(`
		SELECT
			EXTRACT(DAY FROM a.date)::int AS day,
			COUNT(*) FILTER (WHERE a.status <> 'Absent'),
			COUNT(*) FILTER (WHERE a.status = 'Absent'),
			COUNT(*) FILTER (WHERE a.status = 'Half Day')
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		%s
		GROUP BY day
		ORDER BY day
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily attendance: %w", err)
	}
	defer rows.Close()

	trend := []attendance.DayTrend{}
	for rows.Next() {
		var d attendance.DayTrend
		if err := rows.Scan(&d.Day, &d.Present, &d.Absent, &d.HalfDay); err != nil {
			return nil, err
		}
		trend = append(trend, d)
	}
	return trend, rows.Err()
}

// EmployeeRollups implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) EmployeeRollups(ctx context.Context, filter attendance.StatsFilter) ([]attendance.EmployeeRollup, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args := statsWhere(filter)
	query := fmt.Sprintf(`
		SELECT
			u.id, u.name, u.email,
			COUNT(*) AS total_days,
			COUNT(*) FILTER (WHERE a.status <> 'Absent') AS days_present,
			COALESCE(SUM(a.duration), 0),
			COALESCE(AVG(a.duration), 0)::float8
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		%s
		GROUP BY u.id, u.name, u.email
		ORDER BY days_present DESC, u.name ASC
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate employee attendance: %w", err)
	}
	defer rows.Close()

	rollups := []attendance.EmployeeRollup{}
	for rows.Next() {
		var e attendance.EmployeeRollup
		if err := rows.Scan(&e.UserID, &e.Name, &e.Email, &e.TotalDays, &e.DaysPresent, &e.TotalDuration, &e.AvgDuration); err != nil {
			return nil, err
		}
		rollups = append(rollups, e)
	}
	return rollups, rows.Err()
}
