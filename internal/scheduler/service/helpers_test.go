package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/internal/scheduler/store/drivers/sqlite"
	"github.com/huddlehq/huddle/pkg/idx"
)

// baseTime is the fixed "now" used across service tests.
var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// fakeNotifier records every delivery and can be told to fail for specific
// recipients.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]bool
}

type sentMessage struct {
	Recipient string
	Subject   string
	Body      string
}

func (f *fakeNotifier) Send(_ context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[recipient] {
		return errors.New("delivery refused")
	}
	f.sent = append(f.sent, sentMessage{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

func (f *fakeNotifier) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

// newServices wires the full service graph over one store with a fixed clock.
func newServices(st store.Store, notifier Notifier) (*MeetingService, *ParticipantService, *NotifyService) {
	clock := FixedClock{T: baseTime}
	locks := NewMeetingLocks()

	notify := &NotifyService{
		Store:    st,
		Notifier: notifier,
		Clock:    clock,
	}
	meetings := &MeetingService{
		Store:  st,
		Clock:  clock,
		Notify: notify,
		Locks:  locks,
	}
	participants := &ParticipantService{
		Store:  st,
		Clock:  clock,
		Notify: notify,
		Locks:  locks,
	}
	return meetings, participants, notify
}

// seedMeeting inserts a scheduled meeting directly into the store.
func seedMeeting(t *testing.T, st store.Store, title string, start, end time.Time) domain.Meeting {
	t.Helper()

	m := domain.Meeting{
		ID:        idx.New().String(),
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Status:    domain.MeetingScheduled,
		OwnerID:   "usr_owner",
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
	require.NoError(t, st.Meetings().CreateMeeting(context.Background(), m))
	return m
}

// seedParticipant invites email into a meeting directly via the store.
func seedParticipant(t *testing.T, st store.Store, meetingID, email, name string) domain.Participant {
	t.Helper()

	p := domain.Participant{
		ID:        idx.New().String(),
		MeetingID: meetingID,
		Email:     email,
		Name:      name,
		Status:    domain.ParticipantInvited,
		InvitedAt: baseTime,
	}
	require.NoError(t, st.Participants().CreateParticipant(context.Background(), p))
	return p
}
