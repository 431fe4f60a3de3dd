package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
)

func TestDispatchRecordsBeforeDelivery(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &fakeNotifier{failFor: map[string]bool{"sam@example.com": true}}
	_, _, notify := newServices(st, notifier)

	m := seedMeeting(t, st, "Launch", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	dana := seedParticipant(t, st, m.ID, "dana@example.com", "Dana")
	sam := seedParticipant(t, st, m.ID, "sam@example.com", "Sam")

	results := notify.Dispatch(ctx, m, []domain.Participant{dana, sam}, domain.NotificationReminder)

	require.Equal(t, map[string]bool{
		"dana@example.com": true,
		"sam@example.com":  false,
	}, results)

	// Both attempts are in the log: one sent, one with the error captured.
	records, err := st.Notifications().ListNotificationsByMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byEmail := map[string]domain.Notification{}
	for _, rec := range records {
		byEmail[rec.Email] = rec
	}

	require.True(t, byEmail["dana@example.com"].Sent)
	require.Empty(t, byEmail["dana@example.com"].Error)

	require.False(t, byEmail["sam@example.com"].Sent)
	require.Contains(t, byEmail["sam@example.com"].Error, "delivery refused")

	for _, rec := range records {
		require.Equal(t, domain.NotificationReminder, rec.Kind)
		require.NotEmpty(t, rec.Message)
	}
}

func TestDispatchRendersTemplates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &fakeNotifier{}
	_, _, notify := newServices(st, notifier)

	m := seedMeeting(t, st, "Design review", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	m.Location = "Room 4"
	require.NoError(t, st.Meetings().UpdateMeeting(ctx, m))

	dana := seedParticipant(t, st, m.ID, "dana@example.com", "Dana")

	notify.Dispatch(ctx, m, []domain.Participant{dana}, domain.NotificationUpdate)

	msgs := notifier.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "Meeting updated: Design review", msgs[0].Subject)
	require.Contains(t, msgs[0].Body, "Hi Dana,")
	require.Contains(t, msgs[0].Body, "Room 4")
	require.Contains(t, msgs[0].Body, "2026-03-10 10:00 UTC")
}

func TestDispatchFallsBackToName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &fakeNotifier{}
	_, _, notify := newServices(st, notifier)

	m := seedMeeting(t, st, "Sync", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	anon := seedParticipant(t, st, m.ID, "anon@example.com", "")

	notify.Dispatch(ctx, m, []domain.Participant{anon}, domain.NotificationInvitation)

	msgs := notifier.messages()
	require.Len(t, msgs, 1)
	// Nameless participants are greeted by email address.
	require.Contains(t, msgs[0].Body, "Hi anon@example.com,")
}

func TestDispatchUnknownKindFallsBack(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &fakeNotifier{}
	_, _, notify := newServices(st, notifier)

	m := seedMeeting(t, st, "Sync", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	dana := seedParticipant(t, st, m.ID, "dana@example.com", "Dana")

	results := notify.Dispatch(ctx, m, []domain.Participant{dana}, domain.NotificationKind("ping"))
	require.Equal(t, map[string]bool{"dana@example.com": true}, results)

	// Unknown kinds render the invitation template but keep the raw kind in
	// the audit record.
	msgs := notifier.messages()
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0].Subject, "You have been invited")

	records, err := st.Notifications().ListNotificationsByMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, domain.NotificationKind("ping"), records[0].Kind)
}

func TestNotifyMeeting(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &fakeNotifier{}
	_, _, notify := newServices(st, notifier)

	m := seedMeeting(t, st, "Sync", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	seedParticipant(t, st, m.ID, "dana@example.com", "Dana")
	seedParticipant(t, st, m.ID, "sam@example.com", "Sam")

	results, err := notify.NotifyMeeting(ctx, m.ID, domain.NotificationReminder)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Len(t, notifier.messages(), 2)

	_, err = notify.NotifyMeeting(ctx, "mtg_missing", domain.NotificationReminder)
	require.ErrorIs(t, err, ErrMeetingNotFound)

	// No participants, no deliveries, no error.
	empty := seedMeeting(t, st, "Solo", baseTime.Add(3*time.Hour), baseTime.Add(4*time.Hour))
	results, err = notify.NotifyMeeting(ctx, empty.ID, domain.NotificationReminder)
	require.NoError(t, err)
	require.Empty(t, results)
}
