package scheduler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/pkg/schedsdk"
)

// TestMeetingLifecycle walks a meeting from creation through edit and
// cancellation against a real service instance.
func TestMeetingLifecycle(t *testing.T) {
	baseURL, cleanup := setupSchedulerContainer(t)
	defer cleanup()

	client := schedsdk.NewSDKClient(baseURL)

	start := tomorrowAt(10)
	meeting := createMeeting(t, client, "Quarterly review", start, start.Add(time.Hour))

	// Read it back.
	got, err := client.GetMeeting(t.Context(), meeting.ID)
	require.NoError(t, err)
	require.Equal(t, "Quarterly review", got.Title)
	require.True(t, got.StartTime.Equal(start))

	// Move the room.
	location := "Boardroom"
	updated, err := client.UpdateMeeting(t.Context(), meeting.ID, schedsdk.MeetingUpdateRequest{
		Location: &location,
	})
	require.NoError(t, err)
	require.Equal(t, "Boardroom", updated.Location)
	require.Equal(t, "Quarterly review", updated.Title)

	// Cancel, then verify a second cancel is rejected.
	cancelled, err := client.CancelMeeting(t.Context(), meeting.ID)
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelled.Status)

	_, err = client.CancelMeeting(t.Context(), meeting.ID)
	assertAPIError(t, err, http.StatusConflict, schedsdk.ErrorCodeConflict)

	// Cancelled meetings cannot be edited either.
	title := "Renamed"
	_, err = client.UpdateMeeting(t.Context(), meeting.ID, schedsdk.MeetingUpdateRequest{Title: &title})
	assertAPIError(t, err, http.StatusConflict, schedsdk.ErrorCodeConflict)
}

func TestMeetingListFilters(t *testing.T) {
	baseURL, cleanup := setupSchedulerContainer(t)
	defer cleanup()

	client := schedsdk.NewSDKClient(baseURL)

	morning := createMeeting(t, client, "Morning standup", tomorrowAt(9), tomorrowAt(9).Add(15*time.Minute))
	afternoon := createMeeting(t, client, "Afternoon retro", tomorrowAt(15), tomorrowAt(16))

	_, err := client.CancelMeeting(t.Context(), afternoon.ID)
	require.NoError(t, err)

	// Status filter.
	scheduled, err := client.ListMeetings(t.Context(), schedsdk.MeetingFilter{Status: "scheduled"})
	require.NoError(t, err)
	require.Len(t, scheduled.Meetings, 1)
	require.Equal(t, morning.ID, scheduled.Meetings[0].ID)

	// Time window filter catches only the afternoon slot.
	from := tomorrowAt(12)
	inWindow, err := client.ListMeetings(t.Context(), schedsdk.MeetingFilter{From: from})
	require.NoError(t, err)
	require.Len(t, inWindow.Meetings, 1)
	require.Equal(t, afternoon.ID, inWindow.Meetings[0].ID)

	// Title search.
	found, err := client.ListMeetings(t.Context(), schedsdk.MeetingFilter{Query: "standup"})
	require.NoError(t, err)
	require.Len(t, found.Meetings, 1)
	require.Equal(t, morning.ID, found.Meetings[0].ID)
}

func TestMeetingDelete(t *testing.T) {
	baseURL, cleanup := setupSchedulerContainer(t)
	defer cleanup()

	client := schedsdk.NewSDKClient(baseURL)

	start := tomorrowAt(11)
	meeting := createMeeting(t, client, "Disposable", start, start.Add(30*time.Minute))
	invite(t, client, meeting.ID, "dana@example.com")

	require.NoError(t, client.DeleteMeeting(t.Context(), meeting.ID))

	_, err := client.GetMeeting(t.Context(), meeting.ID)
	assertAPIError(t, err, http.StatusNotFound, schedsdk.ErrorCodeNotFound)

	err = client.DeleteMeeting(t.Context(), meeting.ID)
	assertAPIError(t, err, http.StatusNotFound, schedsdk.ErrorCodeNotFound)
}
