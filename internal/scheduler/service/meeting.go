package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/pkg/idx"
	"github.com/huddlehq/huddle/pkg/slogx"
)

var (
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrAlreadyCancelled    = errors.New("meeting is already cancelled")
	ErrMeetingNotScheduled = errors.New("meeting is no longer scheduled")
)

// MeetingService owns the meeting state machine: Scheduled is the only live
// state, Cancelled and Completed are terminal. All mutations go through here;
// notifications are dispatched after the transaction commits, never inside
// it.
type MeetingService struct {
	Store  store.Store
	Clock  Clock
	Notify *NotifyService
	Locks  *MeetingLocks
}

// MeetingChanges carries an edit. Nil fields are left untouched.
type MeetingChanges struct {
	Title       *string
	Description *string
	Location    *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// Create validates the time window and persists a new scheduled meeting.
// It does NOT run conflict detection: double-booking is advisory policy
// enforced by callers, not an invariant of meeting creation.
func (s *MeetingService) Create(ctx context.Context, m domain.Meeting) (domain.Meeting, error) {
	if !m.StartTime.Before(m.EndTime) {
		return domain.Meeting{}, ErrInvalidTimeRange
	}

	now := s.Clock.Now()
	m.ID = idx.New().String()
	m.Status = domain.MeetingScheduled
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.Store.Meetings().CreateMeeting(ctx, m); err != nil {
		return domain.Meeting{}, err
	}

	slogx.FromContext(ctx).Info("meeting created",
		slog.String("meeting_id", m.ID),
		slog.String("owner_id", m.OwnerID),
		slog.Time("start_time", m.StartTime),
	)
	return m, nil
}

// Get returns one meeting.
func (s *MeetingService) Get(ctx context.Context, id string) (domain.Meeting, error) {
	m, err := s.Store.Meetings().GetMeetingByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Meeting{}, ErrMeetingNotFound
		}
		return domain.Meeting{}, err
	}
	return m, nil
}

// List returns meetings matching the filter.
func (s *MeetingService) List(ctx context.Context, f store.MeetingFilter) ([]domain.Meeting, error) {
	return s.Store.Meetings().ListMeetings(ctx, f)
}

// Update edits a scheduled meeting. The previous persisted values are read,
// diffed against the changes and rewritten inside one transaction, with the
// per-meeting lock held, so concurrent edits cannot produce spurious or
// missed Update notifications. When title, location or the time window
// changed, every participant is notified after commit.
func (s *MeetingService) Update(ctx context.Context, id string, changes MeetingChanges) (domain.Meeting, error) {
	unlock := s.Locks.Lock(id)
	defer unlock()

	var (
		updated      domain.Meeting
		participants []domain.Participant
		notify       bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		prev, err := tx.Meetings().GetMeetingByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}
		if prev.Status.Terminal() {
			return ErrMeetingNotScheduled
		}

		updated = prev
		if changes.Title != nil {
			updated.Title = *changes.Title
		}
		if changes.Description != nil {
			updated.Description = *changes.Description
		}
		if changes.Location != nil {
			updated.Location = *changes.Location
		}
		if changes.StartTime != nil {
			updated.StartTime = *changes.StartTime
		}
		if changes.EndTime != nil {
			updated.EndTime = *changes.EndTime
		}
		if !updated.StartTime.Before(updated.EndTime) {
			return ErrInvalidTimeRange
		}

		// Description edits are saved but not broadcast, matching the
		// notification rules for meeting updates.
		notify = prev.Title != updated.Title ||
			prev.Location != updated.Location ||
			!prev.StartTime.Equal(updated.StartTime) ||
			!prev.EndTime.Equal(updated.EndTime)

		updated.UpdatedAt = s.Clock.Now()
		if err := tx.Meetings().UpdateMeeting(ctx, updated); err != nil {
			return err
		}

		if notify {
			participants, err = tx.Participants().ListParticipantsByMeeting(ctx, id)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Meeting{}, err
	}

	if notify && len(participants) > 0 {
		// Outside the transaction: delivery may be slow and its outcome
		// never affects the committed edit.
		s.Notify.Dispatch(ctx, updated, participants, domain.NotificationUpdate)
	}

	slogx.FromContext(ctx).Info("meeting updated",
		slog.String("meeting_id", id),
		slog.Bool("participants_notified", notify),
	)
	return updated, nil
}

// Cancel moves a scheduled meeting to the terminal Cancelled state and
// notifies every participant. A second cancel returns ErrAlreadyCancelled so
// callers can tell "cancelled now" from "nothing happened".
func (s *MeetingService) Cancel(ctx context.Context, id string) (domain.Meeting, error) {
	return s.transition(ctx, id, domain.MeetingCancelled)
}

// Complete moves a scheduled meeting to the terminal Completed state. No
// notifications are sent; completion is bookkeeping, not news.
func (s *MeetingService) Complete(ctx context.Context, id string) (domain.Meeting, error) {
	return s.transition(ctx, id, domain.MeetingCompleted)
}

func (s *MeetingService) transition(ctx context.Context, id string, target domain.MeetingStatus) (domain.Meeting, error) {
	unlock := s.Locks.Lock(id)
	defer unlock()

	var (
		meeting      domain.Meeting
		participants []domain.Participant
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		prev, err := tx.Meetings().GetMeetingByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}
		if prev.Status == domain.MeetingCancelled {
			return ErrAlreadyCancelled
		}
		if prev.Status.Terminal() {
			return ErrMeetingNotScheduled
		}

		meeting = prev
		meeting.Status = target
		meeting.UpdatedAt = s.Clock.Now()
		if err := tx.Meetings().UpdateMeeting(ctx, meeting); err != nil {
			return err
		}

		if target == domain.MeetingCancelled {
			participants, err = tx.Participants().ListParticipantsByMeeting(ctx, id)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Meeting{}, err
	}

	if target == domain.MeetingCancelled && len(participants) > 0 {
		// The meeting is cancelled regardless of how many deliveries fail.
		s.Notify.Dispatch(ctx, meeting, participants, domain.NotificationCancellation)
	}

	slogx.FromContext(ctx).Info("meeting transitioned",
		slog.String("meeting_id", id),
		slog.String("status", string(target)),
	)
	return meeting, nil
}

// Delete removes a meeting outright. Participants cascade; notification
// history keeps null participant references.
func (s *MeetingService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Meetings().DeleteMeeting(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMeetingNotFound
		}
		return err
	}
	slogx.FromContext(ctx).Info("meeting deleted", slog.String("meeting_id", id))
	return nil
}
