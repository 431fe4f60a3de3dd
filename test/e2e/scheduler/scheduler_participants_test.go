package scheduler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/pkg/schedsdk"
)

func TestParticipantRSVP(t *testing.T) {
	baseURL, cleanup := setupSchedulerContainer(t)
	defer cleanup()

	client := schedsdk.NewSDKClient(baseURL)

	start := tomorrowAt(13)
	meeting := createMeeting(t, client, "Planning", start, start.Add(time.Hour))
	participant := invite(t, client, meeting.ID, "Dana@Example.COM")

	// Email is normalized on the way in.
	require.Equal(t, "dana@example.com", participant.Email)

	// Accept stamps responded_at.
	accepted, err := client.SetParticipantStatus(t.Context(), meeting.ID, participant.ID,
		schedsdk.ParticipantStatusRequest{Status: "accepted"})
	require.NoError(t, err)
	require.Equal(t, "accepted", accepted.Status)
	require.NotNil(t, accepted.RespondedAt)

	// Minds change.
	tentative, err := client.SetParticipantStatus(t.Context(), meeting.ID, participant.ID,
		schedsdk.ParticipantStatusRequest{Status: "tentative"})
	require.NoError(t, err)
	require.Equal(t, "tentative", tentative.Status)

	// Inviting the same address twice is rejected, case-insensitively.
	_, err = client.AddParticipant(t.Context(), meeting.ID, schedsdk.ParticipantRequest{
		Email: "DANA@example.com",
	})
	assertAPIError(t, err, http.StatusConflict, schedsdk.ErrorCodeConflict)

	// Removal frees the slot for a re-invite.
	require.NoError(t, client.RemoveParticipant(t.Context(), meeting.ID, participant.ID))

	list, err := client.ListParticipants(t.Context(), meeting.ID)
	require.NoError(t, err)
	require.Empty(t, list.Participants)

	reinvited := invite(t, client, meeting.ID, "dana@example.com")
	require.Equal(t, "invited", reinvited.Status)
}

// TestParticipantDoubleBooking verifies the conflict guard on invites: adding
// someone to a meeting that overlaps one they are already in returns 409 with
// the colliding meetings listed.
func TestParticipantDoubleBooking(t *testing.T) {
	baseURL, cleanup := setupSchedulerContainer(t)
	defer cleanup()

	client := schedsdk.NewSDKClient(baseURL)

	start := tomorrowAt(10)
	first := createMeeting(t, client, "Design sync", start, start.Add(time.Hour))
	invite(t, client, first.ID, "sam@example.com")

	// Overlapping slot: invite is blocked.
	overlapping := createMeeting(t, client, "Vendor call", start.Add(30*time.Minute), start.Add(90*time.Minute))
	_, err := client.AddParticipant(t.Context(), overlapping.ID, schedsdk.ParticipantRequest{
		Email: "sam@example.com",
	})

	var conflictErr *schedsdk.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts["sam@example.com"], 1)
	require.Equal(t, first.ID, conflictErr.Conflicts["sam@example.com"][0].ID)

	// Back-to-back slot: boundaries touch, no conflict.
	adjacent := createMeeting(t, client, "Follow-up", start.Add(time.Hour), start.Add(2*time.Hour))
	invite(t, client, adjacent.ID, "sam@example.com")
}

func TestConflictProbe(t *testing.T) {
	baseURL, cleanup := setupSchedulerContainer(t)
	defer cleanup()

	client := schedsdk.NewSDKClient(baseURL)

	start := tomorrowAt(14)
	meeting := createMeeting(t, client, "All hands", start, start.Add(time.Hour))
	invite(t, client, meeting.ID, "dana@example.com")
	invite(t, client, meeting.ID, "sam@example.com")

	// Both collide with the proposed slot.
	result, err := client.CheckConflicts(t.Context(), schedsdk.ConflictCheckRequest{
		ParticipantEmails: []string{"dana@example.com", "sam@example.com", "free@example.com"},
		StartTime:         start.Add(30 * time.Minute),
		EndTime:           start.Add(90 * time.Minute),
	})
	require.NoError(t, err)
	require.True(t, result.HasConflicts)
	require.Len(t, result.Conflicts, 2)
	require.NotContains(t, result.Conflicts, "free@example.com")

	// Excluding the meeting itself clears the probe, which is how reschedule
	// checks work.
	result, err = client.CheckConflicts(t.Context(), schedsdk.ConflictCheckRequest{
		ParticipantEmails: []string{"dana@example.com"},
		StartTime:         start.Add(30 * time.Minute),
		EndTime:           start.Add(90 * time.Minute),
		ExcludeMeetingID:  meeting.ID,
	})
	require.NoError(t, err)
	require.False(t, result.HasConflicts)

	// A probe never returns a ConflictError; collisions are data here.
	var conflictErr *schedsdk.ConflictError
	require.False(t, errors.As(err, &conflictErr))
}
