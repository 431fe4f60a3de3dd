package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/store"
)

// ReminderService is the periodic trigger for reminder notifications. Every
// interval it looks for scheduled meetings starting within the lead window
// that have no reminder recorded yet and dispatches one. At most one
// reminder per meeting; recipients that fail simply miss it, consistent with
// the no-retry delivery model.
type ReminderService struct {
	Store    store.Store
	Notify   *NotifyService
	Clock    Clock
	Logger   *slog.Logger
	Interval time.Duration
	Lead     time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewReminderService(
	st store.Store,
	notify *NotifyService,
	clock Clock,
	logger *slog.Logger,
	interval, lead time.Duration,
) *ReminderService {
	if lead <= 0 {
		lead = time.Hour
	}
	return &ReminderService{
		Store:    st,
		Notify:   notify,
		Clock:    clock,
		Logger:   logger,
		Interval: interval,
		Lead:     lead,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Non-blocking; a non-positive
// interval disables reminders entirely.
func (s *ReminderService) Start() {
	if s.Interval <= 0 {
		close(s.doneCh)
		s.Logger.Info("reminder service disabled")
		return
	}
	go s.run()
	s.Logger.Info("reminder service started",
		"interval", s.Interval,
		"lead", s.Lead,
	)
}

// Stop shuts the worker down and waits for any in-progress sweep.
func (s *ReminderService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("reminder service stopped")
}

func (s *ReminderService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one reminder pass. Exported so tests and operators can trigger
// it directly.
func (s *ReminderService) Sweep(ctx context.Context) {
	now := s.Clock.Now()
	due, err := s.Store.Meetings().ListDueForReminder(ctx, now, now.Add(s.Lead))
	if err != nil {
		s.Logger.Error("reminder sweep failed", "error", err)
		return
	}

	for _, meeting := range due {
		participants, err := s.Store.Participants().ListParticipantsByMeeting(ctx, meeting.ID)
		if err != nil {
			s.Logger.Error("failed to list participants for reminder",
				"meeting_id", meeting.ID,
				"error", err,
			)
			continue
		}
		if len(participants) == 0 {
			continue
		}

		results := s.Notify.Dispatch(ctx, meeting, participants, domain.NotificationReminder)

		sent := 0
		for _, ok := range results {
			if ok {
				sent++
			}
		}
		s.Logger.Info("reminders dispatched",
			"meeting_id", meeting.ID,
			"recipients", len(results),
			"delivered", sent,
		)
	}
}
