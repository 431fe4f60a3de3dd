package schedsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DownloadMeetingICS fetches a single meeting as an iCalendar file suitable
// for importing into a calendar application.
func (c *SDKClient) DownloadMeetingICS(ctx context.Context, meetingID string) ([]byte, error) {
	path := fmt.Sprintf("/v1/meetings/%s/calendar.ics", url.PathEscape(meetingID))

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	return readBytes(resp, http.StatusOK)
}

// DownloadCalendarICS fetches a user's upcoming scheduled meetings as a
// combined iCalendar file.
func (c *SDKClient) DownloadCalendarICS(ctx context.Context, email string) ([]byte, error) {
	path := "/v1/calendar.ics?email=" + url.QueryEscape(email)

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	return readBytes(resp, http.StatusOK)
}
