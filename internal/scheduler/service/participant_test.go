package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
)

func TestAddParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("invites with normalized email and dispatches invitation", func(t *testing.T) {
		st := newTestStore(t)
		notifier := &fakeNotifier{}
		_, participants, _ := newServices(st, notifier)

		m := seedMeeting(t, st, "Kickoff", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))

		p, err := participants.Add(ctx, m.ID, "  Dana@Example.COM ", "Dana", "usr_dana")
		require.NoError(t, err)
		require.Equal(t, "dana@example.com", p.Email)
		require.Equal(t, domain.ParticipantInvited, p.Status)
		require.Equal(t, baseTime, p.InvitedAt)
		require.Nil(t, p.RespondedAt)

		msgs := notifier.messages()
		require.Len(t, msgs, 1)
		require.Equal(t, "dana@example.com", msgs[0].Recipient)
		require.Contains(t, msgs[0].Subject, "You have been invited")
	})

	t.Run("rejects duplicates case-insensitively", func(t *testing.T) {
		st := newTestStore(t)
		_, participants, _ := newServices(st, &fakeNotifier{})

		m := seedMeeting(t, st, "Kickoff", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))

		_, err := participants.Add(ctx, m.ID, "dana@example.com", "Dana", "")
		require.NoError(t, err)

		_, err = participants.Add(ctx, m.ID, "DANA@example.com", "Dana again", "")
		require.ErrorIs(t, err, ErrDuplicateParticipant)
	})

	t.Run("same email on different meetings is fine", func(t *testing.T) {
		st := newTestStore(t)
		_, participants, _ := newServices(st, &fakeNotifier{})

		m1 := seedMeeting(t, st, "One", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
		m2 := seedMeeting(t, st, "Two", baseTime.Add(3*time.Hour), baseTime.Add(4*time.Hour))

		_, err := participants.Add(ctx, m1.ID, "dana@example.com", "Dana", "")
		require.NoError(t, err)
		_, err = participants.Add(ctx, m2.ID, "dana@example.com", "Dana", "")
		require.NoError(t, err)
	})

	t.Run("blank email and unknown meeting", func(t *testing.T) {
		st := newTestStore(t)
		_, participants, _ := newServices(st, &fakeNotifier{})

		m := seedMeeting(t, st, "Kickoff", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))

		_, err := participants.Add(ctx, m.ID, "   ", "Nobody", "")
		require.ErrorIs(t, err, ErrInvalidEmail)

		_, err = participants.Add(ctx, "mtg_missing", "dana@example.com", "Dana", "")
		require.ErrorIs(t, err, ErrMeetingNotFound)
	})
}

func TestSetParticipantStatus(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, participants, _ := newServices(st, &fakeNotifier{})

	m := seedMeeting(t, st, "Kickoff", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	p := seedParticipant(t, st, m.ID, "dana@example.com", "Dana")

	t.Run("accepts a response and stamps responded_at", func(t *testing.T) {
		updated, err := participants.SetStatus(ctx, m.ID, p.ID, domain.ParticipantAccepted)
		require.NoError(t, err)
		require.Equal(t, domain.ParticipantAccepted, updated.Status)
		require.NotNil(t, updated.RespondedAt)
		require.Equal(t, baseTime, updated.RespondedAt.UTC())
	})

	t.Run("responses can change freely", func(t *testing.T) {
		updated, err := participants.SetStatus(ctx, m.ID, p.ID, domain.ParticipantDeclined)
		require.NoError(t, err)
		require.Equal(t, domain.ParticipantDeclined, updated.Status)

		updated, err = participants.SetStatus(ctx, m.ID, p.ID, domain.ParticipantTentative)
		require.NoError(t, err)
		require.Equal(t, domain.ParticipantTentative, updated.Status)
	})

	t.Run("invited cannot be re-entered", func(t *testing.T) {
		_, err := participants.SetStatus(ctx, m.ID, p.ID, domain.ParticipantInvited)
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("garbage status rejected", func(t *testing.T) {
		_, err := participants.SetStatus(ctx, m.ID, p.ID, domain.ParticipantStatus("maybe"))
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("participant must belong to the meeting", func(t *testing.T) {
		other := seedMeeting(t, st, "Other", baseTime.Add(3*time.Hour), baseTime.Add(4*time.Hour))
		_, err := participants.SetStatus(ctx, other.ID, p.ID, domain.ParticipantAccepted)
		require.ErrorIs(t, err, ErrParticipantNotFound)
	})
}

func TestRemoveParticipant(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	notifier := &fakeNotifier{}
	_, participants, notify := newServices(st, notifier)

	m := seedMeeting(t, st, "Kickoff", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	p := seedParticipant(t, st, m.ID, "dana@example.com", "Dana")

	// Produce a notification record first so we can check it survives removal.
	notify.Dispatch(ctx, m, []domain.Participant{p}, domain.NotificationInvitation)

	require.NoError(t, participants.Remove(ctx, m.ID, p.ID))

	// Removal is silent: only the original invitation was delivered.
	require.Len(t, notifier.messages(), 1)

	list, err := participants.List(ctx, m.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	// The audit log keeps the record, detached from the participant.
	records, err := st.Notifications().ListNotificationsByMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Empty(t, records[0].ParticipantID)

	require.ErrorIs(t, participants.Remove(ctx, m.ID, p.ID), ErrParticipantNotFound)
}

func TestListParticipantsOrder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, participants, _ := newServices(st, &fakeNotifier{})

	m := seedMeeting(t, st, "Kickoff", baseTime.Add(time.Hour), baseTime.Add(2*time.Hour))
	seedParticipant(t, st, m.ID, "first@example.com", "First")
	seedParticipant(t, st, m.ID, "second@example.com", "Second")
	seedParticipant(t, st, m.ID, "third@example.com", "Third")

	list, err := participants.List(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "first@example.com", list[0].Email)
	require.Equal(t, "second@example.com", list[1].Email)
	require.Equal(t, "third@example.com", list[2].Email)
}
