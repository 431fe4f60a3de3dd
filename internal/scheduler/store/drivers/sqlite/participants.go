package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
)

type participantsRepo struct {
	q querier
}

const participantColumns = `id, meeting_id, user_id, email, name, status, invited_at, responded_at`

func (r *participantsRepo) CreateParticipant(ctx context.Context, p domain.Participant) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO participants (`+participantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.MeetingID,
		mapStringNull(p.UserID),
		p.Email,
		p.Name,
		string(p.Status),
		p.InvitedAt.UTC(),
		mapOptionalTime(p.RespondedAt),
	)
	return mapConstraint(err)
}

func (r *participantsRepo) GetParticipantByID(ctx context.Context, id string) (domain.Participant, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+participantColumns+` FROM participants WHERE id = ?`, id)
	return scanParticipant(row)
}

func (r *participantsRepo) GetParticipantByEmail(ctx context.Context, meetingID, email string) (domain.Participant, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+participantColumns+` FROM participants
		WHERE meeting_id = ? AND email = ?`, meetingID, email)
	return scanParticipant(row)
}

func (r *participantsRepo) ListParticipantsByMeeting(ctx context.Context, meetingID string) ([]domain.Participant, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+participantColumns+` FROM participants
		WHERE meeting_id = ?
		ORDER BY invited_at, id`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		p, err := scanParticipantFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *participantsRepo) UpdateParticipantStatus(
	ctx context.Context,
	id string,
	status domain.ParticipantStatus,
	respondedAt time.Time,
) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE participants SET status = ?, responded_at = ? WHERE id = ?`,
		string(status),
		respondedAt.UTC(),
		id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *participantsRepo) DeleteParticipant(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanParticipantFrom(s rowScanner) (domain.Participant, error) {
	var p domain.Participant
	var status string
	var userID sql.NullString
	var respondedAt sql.NullTime
	err := s.Scan(
		&p.ID,
		&p.MeetingID,
		&userID,
		&p.Email,
		&p.Name,
		&status,
		&p.InvitedAt,
		&respondedAt,
	)
	if err != nil {
		return domain.Participant{}, err
	}
	p.UserID = mapNullString(userID)
	p.Status = domain.ParticipantStatus(status)
	p.RespondedAt = mapNullTimePtr(respondedAt)
	return p, nil
}

func scanParticipant(row *sql.Row) (domain.Participant, error) {
	p, err := scanParticipantFrom(row)
	if err != nil {
		return domain.Participant{}, mapNotFound(err)
	}
	return p, nil
}
