package schedsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MeetingFilter narrows ListMeetings results. Zero-value fields are ignored.
type MeetingFilter struct {
	OwnerID string
	Status  string
	From    time.Time
	Until   time.Time
	Query   string
}

// CreateMeeting schedules a new meeting.
func (c *SDKClient) CreateMeeting(ctx context.Context, req MeetingRequest) (*MeetingResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/meetings", req)
	if err != nil {
		return nil, err
	}

	var meeting MeetingResponse
	if err := decodeJSON(resp, &meeting, http.StatusCreated); err != nil {
		return nil, err
	}

	return &meeting, nil
}

// GetMeeting fetches a single meeting by id.
func (c *SDKClient) GetMeeting(ctx context.Context, meetingID string) (*MeetingResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/meetings/"+url.PathEscape(meetingID), nil, nil)
	if err != nil {
		return nil, err
	}

	var meeting MeetingResponse
	if err := decodeJSON(resp, &meeting, http.StatusOK); err != nil {
		return nil, err
	}

	return &meeting, nil
}

// ListMeetings fetches meetings matching the filter.
func (c *SDKClient) ListMeetings(ctx context.Context, filter MeetingFilter) (*ListMeetingsResponse, error) {
	q := url.Values{}
	if filter.OwnerID != "" {
		q.Set("owner_id", filter.OwnerID)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if !filter.From.IsZero() {
		q.Set("from", filter.From.Format(time.RFC3339))
	}
	if !filter.Until.IsZero() {
		q.Set("until", filter.Until.Format(time.RFC3339))
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}

	path := "/v1/meetings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var list ListMeetingsResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}

// UpdateMeeting applies a partial update to a scheduled meeting. Participants
// are notified when a visible field (title, location or times) changes.
func (c *SDKClient) UpdateMeeting(
	ctx context.Context,
	meetingID string,
	req MeetingUpdateRequest,
) (*MeetingResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/v1/meetings/"+url.PathEscape(meetingID), req)
	if err != nil {
		return nil, err
	}

	var meeting MeetingResponse
	if err := decodeJSON(resp, &meeting, http.StatusOK); err != nil {
		return nil, err
	}

	return &meeting, nil
}

// DeleteMeeting permanently removes a meeting and its participants.
// Cancelling is usually the better option; deletion leaves no audit trail.
func (c *SDKClient) DeleteMeeting(ctx context.Context, meetingID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/meetings/"+url.PathEscape(meetingID), nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// CancelMeeting cancels a scheduled meeting and notifies its participants.
// Cancelling an already-cancelled meeting returns a conflict error.
func (c *SDKClient) CancelMeeting(ctx context.Context, meetingID string) (*MeetingResponse, error) {
	return c.transition(ctx, meetingID, "cancel")
}

// CompleteMeeting marks a scheduled meeting as completed.
func (c *SDKClient) CompleteMeeting(ctx context.Context, meetingID string) (*MeetingResponse, error) {
	return c.transition(ctx, meetingID, "complete")
}

func (c *SDKClient) transition(ctx context.Context, meetingID, action string) (*MeetingResponse, error) {
	path := fmt.Sprintf("/v1/meetings/%s/%s", url.PathEscape(meetingID), action)

	resp, err := c.doJSON(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}

	var meeting MeetingResponse
	if err := decodeJSON(resp, &meeting, http.StatusOK); err != nil {
		return nil, err
	}

	return &meeting, nil
}
