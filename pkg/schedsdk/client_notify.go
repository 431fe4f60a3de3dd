package schedsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// NotifyMeeting triggers a manual notification dispatch for a meeting. When
// req.Type is empty the server sends a reminder.
func (c *SDKClient) NotifyMeeting(ctx context.Context, meetingID string, req NotifyRequest) (*NotifyResponse, error) {
	path := fmt.Sprintf("/v1/meetings/%s/notify", url.PathEscape(meetingID))

	resp, err := c.doJSON(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var result NotifyResponse
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListNotifications fetches a meeting's notification log, most recent first.
// Every dispatch attempt is recorded, including failed deliveries.
func (c *SDKClient) ListNotifications(ctx context.Context, meetingID string) (*ListNotificationsResponse, error) {
	path := fmt.Sprintf("/v1/meetings/%s/notifications", url.PathEscape(meetingID))

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var list ListNotificationsResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}
