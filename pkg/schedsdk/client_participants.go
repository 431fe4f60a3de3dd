package schedsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AddParticipant invites a participant to a meeting. The server checks the
// participant's schedule first and returns a ConflictError if the meeting
// overlaps something they already have.
func (c *SDKClient) AddParticipant(
	ctx context.Context,
	meetingID string,
	req ParticipantRequest,
) (*ParticipantResponse, error) {
	path := fmt.Sprintf("/v1/meetings/%s/participants", url.PathEscape(meetingID))

	resp, err := c.doJSON(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var participant ParticipantResponse
	if err := decodeJSON(resp, &participant, http.StatusCreated); err != nil {
		return nil, err
	}

	return &participant, nil
}

// ListParticipants fetches all participants of a meeting in invitation order.
func (c *SDKClient) ListParticipants(ctx context.Context, meetingID string) (*ListParticipantsResponse, error) {
	path := fmt.Sprintf("/v1/meetings/%s/participants", url.PathEscape(meetingID))

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var list ListParticipantsResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}

// RemoveParticipant removes a participant from a meeting. The removed
// participant is not notified.
func (c *SDKClient) RemoveParticipant(ctx context.Context, meetingID, participantID string) error {
	path := fmt.Sprintf(
		"/v1/meetings/%s/participants/%s",
		url.PathEscape(meetingID),
		url.PathEscape(participantID),
	)

	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// SetParticipantStatus records a participant's RSVP response.
func (c *SDKClient) SetParticipantStatus(
	ctx context.Context,
	meetingID, participantID string,
	req ParticipantStatusRequest,
) (*ParticipantResponse, error) {
	path := fmt.Sprintf(
		"/v1/meetings/%s/participants/%s/status",
		url.PathEscape(meetingID),
		url.PathEscape(participantID),
	)

	resp, err := c.doJSON(ctx, http.MethodPut, path, req)
	if err != nil {
		return nil, err
	}

	var participant ParticipantResponse
	if err := decodeJSON(resp, &participant, http.StatusOK); err != nil {
		return nil, err
	}

	return &participant, nil
}
