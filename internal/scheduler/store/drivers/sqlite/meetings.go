package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/store"
)

type meetingsRepo struct {
	q querier
}

const meetingColumns = `id, title, description, location, start_time, end_time, status, owner_id, created_at, updated_at`

func (r *meetingsRepo) CreateMeeting(ctx context.Context, m domain.Meeting) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO meetings (`+meetingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Title,
		m.Description,
		m.Location,
		m.StartTime.UTC(),
		m.EndTime.UTC(),
		string(m.Status),
		m.OwnerID,
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *meetingsRepo) GetMeetingByID(ctx context.Context, id string) (domain.Meeting, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)
	return scanMeeting(row)
}

func (r *meetingsRepo) ListMeetings(ctx context.Context, f store.MeetingFilter) ([]domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE 1=1`
	var args []any

	if f.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, f.OwnerID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.From != nil {
		query += ` AND start_time >= ?`
		args = append(args, f.From.UTC())
	}
	if f.Until != nil {
		query += ` AND end_time <= ?`
		args = append(args, f.Until.UTC())
	}
	if f.Query != "" {
		query += ` AND (title LIKE ? OR description LIKE ? OR location LIKE ?)`
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY start_time`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMeetings(rows)
}

func (r *meetingsRepo) UpdateMeeting(ctx context.Context, m domain.Meeting) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE meetings
		SET title = ?, description = ?, location = ?, start_time = ?, end_time = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		m.Title,
		m.Description,
		m.Location,
		m.StartTime.UTC(),
		m.EndTime.UTC(),
		string(m.Status),
		m.UpdatedAt.UTC(),
		m.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *meetingsRepo) DeleteMeeting(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *meetingsRepo) ListOverlapping(
	ctx context.Context,
	email string,
	start, end time.Time,
	excludeMeetingID string,
) ([]domain.Meeting, error) {
	// Open-interval overlap: a meeting ending exactly when the proposed one
	// starts (or vice versa) does not count.
	rows, err := r.q.QueryContext(ctx, `
		SELECT DISTINCT m.id, m.title, m.description, m.location, m.start_time, m.end_time,
		       m.status, m.owner_id, m.created_at, m.updated_at
		FROM meetings m
		JOIN participants p ON p.meeting_id = m.id
		WHERE p.email = ?
		  AND m.status = 'scheduled'
		  AND m.start_time < ?
		  AND m.end_time > ?
		  AND (? = '' OR m.id <> ?)
		ORDER BY m.start_time`,
		email,
		end.UTC(),
		start.UTC(),
		excludeMeetingID,
		excludeMeetingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMeetings(rows)
}

func (r *meetingsRepo) ListUpcomingByEmail(ctx context.Context, email string, from time.Time) ([]domain.Meeting, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT DISTINCT m.id, m.title, m.description, m.location, m.start_time, m.end_time,
		       m.status, m.owner_id, m.created_at, m.updated_at
		FROM meetings m
		JOIN participants p ON p.meeting_id = m.id
		WHERE p.email = ?
		  AND m.status = 'scheduled'
		  AND m.end_time > ?
		ORDER BY m.start_time`,
		email,
		from.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMeetings(rows)
}

func (r *meetingsRepo) ListDueForReminder(ctx context.Context, from, until time.Time) ([]domain.Meeting, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings m
		WHERE m.status = 'scheduled'
		  AND m.start_time > ?
		  AND m.start_time <= ?
		  AND NOT EXISTS (
		      SELECT 1 FROM notifications n
		      WHERE n.meeting_id = m.id AND n.kind = 'reminder'
		  )
		ORDER BY m.start_time`,
		from.UTC(),
		until.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMeetings(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeetingFrom(s rowScanner) (domain.Meeting, error) {
	var m domain.Meeting
	var status string
	err := s.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Location,
		&m.StartTime,
		&m.EndTime,
		&status,
		&m.OwnerID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.Meeting{}, err
	}
	m.Status = domain.MeetingStatus(status)
	return m, nil
}

func scanMeeting(row *sql.Row) (domain.Meeting, error) {
	m, err := scanMeetingFrom(row)
	if err != nil {
		return domain.Meeting{}, mapNotFound(err)
	}
	return m, nil
}

func scanMeetings(rows *sql.Rows) ([]domain.Meeting, error) {
	var out []domain.Meeting
	for rows.Next() {
		m, err := scanMeetingFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
