package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/pkg/idx"
	"github.com/huddlehq/huddle/pkg/slogx"
)

// NotifyService fans notifications out to meeting participants and keeps the
// append-only delivery audit log. Delivery is best-effort: one independent
// attempt per recipient, no retries, and a failed delivery never aborts the
// lifecycle mutation that triggered it.
type NotifyService struct {
	Store    store.Store
	Notifier Notifier
	Clock    Clock

	// Timeout bounds each per-recipient delivery attempt. Zero means no
	// bound beyond the caller's context.
	Timeout time.Duration
}

// Dispatch attempts delivery to every given participant and reports
// per-recipient success. Attempts run in parallel but Dispatch returns only
// once all of them have been resolved; the caller does not retry, so nothing
// may be left in flight.
func (s *NotifyService) Dispatch(
	ctx context.Context,
	meeting domain.Meeting,
	participants []domain.Participant,
	kind domain.NotificationKind,
) map[string]bool {
	results := make(map[string]bool, len(participants))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, p := range participants {
		wg.Add(1)
		go func(p domain.Participant) {
			defer wg.Done()
			ok := s.deliver(ctx, meeting, p, kind)
			mu.Lock()
			results[p.Email] = ok
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	return results
}

// NotifyMeeting loads a meeting and its participants and dispatches kind to
// all of them. Used by the manual notify endpoint and the reminder worker.
func (s *NotifyService) NotifyMeeting(
	ctx context.Context,
	meetingID string,
	kind domain.NotificationKind,
) (map[string]bool, error) {
	meeting, err := s.Store.Meetings().GetMeetingByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}

	participants, err := s.Store.Participants().ListParticipantsByMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	return s.Dispatch(ctx, meeting, participants, kind), nil
}

// deliver handles one recipient: render, record, attempt, record outcome.
// The audit record is written with sent=false BEFORE the attempt so it exists
// even when delivery blows up.
func (s *NotifyService) deliver(
	ctx context.Context,
	meeting domain.Meeting,
	p domain.Participant,
	kind domain.NotificationKind,
) bool {
	log := slogx.FromContext(ctx)

	subject, body := renderMessage(kind, meeting, p)

	rec := domain.Notification{
		ID:            idx.New().String(),
		MeetingID:     meeting.ID,
		ParticipantID: p.ID,
		Email:         p.Email,
		Kind:          kind,
		Message:       body,
		Sent:          false,
		CreatedAt:     s.Clock.Now(),
	}
	if err := s.Store.Notifications().CreateNotification(ctx, rec); err != nil {
		log.Error("failed to record notification",
			slog.String("meeting_id", meeting.ID),
			slog.String("email", p.Email),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
		return false
	}

	sendCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	if err := s.Notifier.Send(sendCtx, p.Email, subject, body); err != nil {
		if recErr := s.Store.Notifications().MarkNotificationFailed(ctx, rec.ID, err.Error()); recErr != nil {
			log.Error("failed to record delivery error",
				slog.String("notification_id", rec.ID),
				slog.Any("error", recErr),
			)
		}
		log.Warn("notification delivery failed",
			slog.String("meeting_id", meeting.ID),
			slog.String("email", p.Email),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
		return false
	}

	if err := s.Store.Notifications().MarkNotificationSent(ctx, rec.ID); err != nil {
		// The message went out; only the bookkeeping is stale.
		log.Error("failed to mark notification sent",
			slog.String("notification_id", rec.ID),
			slog.Any("error", err),
		)
	}

	log.Debug("notification sent",
		slog.String("meeting_id", meeting.ID),
		slog.String("email", p.Email),
		slog.String("kind", string(kind)),
	)
	return true
}
