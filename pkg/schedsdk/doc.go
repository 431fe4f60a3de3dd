/*
Package schedsdk provides a client SDK for interacting with the Huddle
scheduling service.

# Overview

The schedsdk package implements a typed HTTP client for the scheduler API.
It carries the request and response types shared with the server, so the
same structs are used on both sides of the wire.

Create an SDKClient and call the operation methods directly:

	client := schedsdk.NewSDKClient("https://huddle.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Schedule a meeting
	meeting, err := client.CreateMeeting(ctx, schedsdk.MeetingRequest{
		Title:     "Sprint planning",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		OwnerID:   "usr_01...",
	})

	// Invite a participant
	p, err := client.AddParticipant(ctx, meeting.ID, schedsdk.ParticipantRequest{
		Email: "dana@example.com",
		Name:  "Dana",
	})

# Error Handling

Non-2xx responses are parsed into *APIError, which exposes the HTTP status
code and the machine-readable error code returned by the server:

	_, err := client.CancelMeeting(ctx, id)
	var apiErr *schedsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == schedsdk.ErrorCodeConflict {
		// already cancelled
	}

# Conflict Checking

CheckConflicts reports scheduling collisions without creating anything:

	result, err := client.CheckConflicts(ctx, schedsdk.ConflictCheckRequest{
		ParticipantEmails: []string{"dana@example.com"},
		StartTime:         start,
		EndTime:           end,
	})
	if result.HasConflicts {
		// result.Conflicts maps email -> overlapping meetings
	}
*/
package schedsdk
