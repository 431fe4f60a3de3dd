package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/pkg/idx"
	"github.com/huddlehq/huddle/pkg/slogx"
)

var (
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrDuplicateParticipant = errors.New("participant already added to this meeting")
	ErrInvalidEmail         = errors.New("participant email is required")
	ErrInvalidStatus        = errors.New("invalid participant status")
)

// ParticipantService owns the RSVP state machine. Invited is the initial
// state; participants then move freely among Accepted, Declined and
// Tentative but never back to Invited.
type ParticipantService struct {
	Store  store.Store
	Clock  Clock
	Notify *NotifyService
	Locks  *MeetingLocks
}

// Add invites email to the meeting. The email is normalized first and the
// (meeting, email) pair must be unique; the duplicate check runs under the
// per-meeting lock inside a transaction, with the UNIQUE constraint catching
// anything that still slips through. The invitation is dispatched to this one
// participant after commit.
func (s *ParticipantService) Add(
	ctx context.Context,
	meetingID string,
	email, name, userID string,
) (domain.Participant, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Participant{}, ErrInvalidEmail
	}

	unlock := s.Locks.Lock(meetingID)
	defer unlock()

	var (
		meeting     domain.Meeting
		participant domain.Participant
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		meeting, err = tx.Meetings().GetMeetingByID(ctx, meetingID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}

		_, err = tx.Participants().GetParticipantByEmail(ctx, meetingID, email)
		if err == nil {
			return ErrDuplicateParticipant
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		participant = domain.Participant{
			ID:        idx.New().String(),
			MeetingID: meetingID,
			UserID:    userID,
			Email:     email,
			Name:      name,
			Status:    domain.ParticipantInvited,
			InvitedAt: s.Clock.Now(),
		}
		if err := tx.Participants().CreateParticipant(ctx, participant); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateParticipant
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Participant{}, err
	}

	s.Notify.Dispatch(ctx, meeting, []domain.Participant{participant}, domain.NotificationInvitation)

	slogx.FromContext(ctx).Info("participant added",
		slog.String("meeting_id", meetingID),
		slog.String("participant_id", participant.ID),
	)
	return participant, nil
}

// Remove deletes a participant from a meeting. Removal is silent: no
// notification goes out, and the participant's notification history stays in
// the log with a null participant reference.
func (s *ParticipantService) Remove(ctx context.Context, meetingID, participantID string) error {
	p, err := s.get(ctx, meetingID, participantID)
	if err != nil {
		return err
	}

	if err := s.Store.Participants().DeleteParticipant(ctx, p.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("participant removed",
		slog.String("meeting_id", meetingID),
		slog.String("participant_id", participantID),
	)
	return nil
}

// SetStatus records an RSVP answer and stamps respondedAt. Only the three
// response states are accepted; Invited cannot be re-entered. RSVP changes
// are not broadcast.
func (s *ParticipantService) SetStatus(
	ctx context.Context,
	meetingID, participantID string,
	status domain.ParticipantStatus,
) (domain.Participant, error) {
	if !status.Response() {
		return domain.Participant{}, ErrInvalidStatus
	}

	p, err := s.get(ctx, meetingID, participantID)
	if err != nil {
		return domain.Participant{}, err
	}

	respondedAt := s.Clock.Now()
	if err := s.Store.Participants().UpdateParticipantStatus(ctx, p.ID, status, respondedAt); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}
		return domain.Participant{}, err
	}

	p.Status = status
	p.RespondedAt = &respondedAt
	return p, nil
}

// List returns a meeting's participants in invite order.
func (s *ParticipantService) List(ctx context.Context, meetingID string) ([]domain.Participant, error) {
	return s.Store.Participants().ListParticipantsByMeeting(ctx, meetingID)
}

// get loads a participant and verifies it belongs to the given meeting.
func (s *ParticipantService) get(ctx context.Context, meetingID, participantID string) (domain.Participant, error) {
	p, err := s.Store.Participants().GetParticipantByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}
		return domain.Participant{}, err
	}
	if p.MeetingID != meetingID {
		return domain.Participant{}, ErrParticipantNotFound
	}
	return p, nil
}
