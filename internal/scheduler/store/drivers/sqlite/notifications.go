package sqlite

import (
	"context"
	"database/sql"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
)

type notificationsRepo struct {
	q querier
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO notifications (id, meeting_id, participant_id, email, kind, message, sent, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID,
		n.MeetingID,
		mapStringNull(n.ParticipantID),
		n.Email,
		string(n.Kind),
		n.Message,
		n.Sent,
		n.Error,
		n.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) MarkNotificationSent(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE notifications SET sent = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *notificationsRepo) MarkNotificationFailed(ctx context.Context, id string, deliveryErr string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE notifications SET error = ? WHERE id = ?`, deliveryErr, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *notificationsRepo) ListNotificationsByMeeting(ctx context.Context, meetingID string) ([]domain.Notification, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, meeting_id, participant_id, email, kind, message, sent, error, created_at
		FROM notifications
		WHERE meeting_id = ?
		ORDER BY created_at DESC, id DESC`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNotification(s rowScanner) (domain.Notification, error) {
	var n domain.Notification
	var kind string
	var participantID sql.NullString
	err := s.Scan(
		&n.ID,
		&n.MeetingID,
		&participantID,
		&n.Email,
		&kind,
		&n.Message,
		&n.Sent,
		&n.Error,
		&n.CreatedAt,
	)
	if err != nil {
		return domain.Notification{}, err
	}
	n.ParticipantID = mapNullString(participantID)
	n.Kind = domain.NotificationKind(kind)
	return n, nil
}
