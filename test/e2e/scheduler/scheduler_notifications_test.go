package scheduler_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/pkg/schedsdk"
)

// TestNotificationAudit verifies every lifecycle event leaves a record in the
// meeting's notification log.
func TestNotificationAudit(t *testing.T) {
	baseURL, cleanup := setupSchedulerContainer(t)
	defer cleanup()

	client := schedsdk.NewSDKClient(baseURL)

	start := tomorrowAt(9)
	meeting := createMeeting(t, client, "Kickoff", start, start.Add(time.Hour))
	invite(t, client, meeting.ID, "dana@example.com")
	invite(t, client, meeting.ID, "sam@example.com")

	// Reschedule notifies both.
	newStart := start.Add(2 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	_, err := client.UpdateMeeting(t.Context(), meeting.ID, schedsdk.MeetingUpdateRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	require.NoError(t, err)

	// Explicit reminder blast.
	notify, err := client.NotifyMeeting(t.Context(), meeting.ID, schedsdk.NotifyRequest{})
	require.NoError(t, err)
	require.Len(t, notify.Results, 2)
	for email, ok := range notify.Results {
		require.True(t, ok, "delivery to %s should succeed with the log backend", email)
	}

	log, err := client.ListNotifications(t.Context(), meeting.ID)
	require.NoError(t, err)

	// 2 invitations + 2 updates + 2 reminders.
	require.Len(t, log.Notifications, 6)

	kinds := map[string]int{}
	for _, n := range log.Notifications {
		kinds[n.Kind]++
		require.True(t, n.Sent)
		require.NotEmpty(t, n.Message)
	}
	require.Equal(t, 2, kinds["invitation"])
	require.Equal(t, 2, kinds["update"])
	require.Equal(t, 2, kinds["reminder"])
}

func TestCalendarDownload(t *testing.T) {
	baseURL, cleanup := setupSchedulerContainer(t)
	defer cleanup()

	client := schedsdk.NewSDKClient(baseURL)

	start := tomorrowAt(10)
	meeting := createMeeting(t, client, "Architecture review", start, start.Add(time.Hour))
	invite(t, client, meeting.ID, "dana@example.com")

	ics, err := client.DownloadMeetingICS(t.Context(), meeting.ID)
	require.NoError(t, err)

	body := string(ics)
	require.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	require.Contains(t, body, "SUMMARY:Architecture review")
	require.Contains(t, body, "mailto:dana@example.com")
	require.Contains(t, body, "UID:"+meeting.ID)

	// The per-user feed includes the same event.
	feed, err := client.DownloadCalendarICS(t.Context(), "dana@example.com")
	require.NoError(t, err)
	require.Contains(t, string(feed), "SUMMARY:Architecture review")
}
