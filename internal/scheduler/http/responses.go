package http

import (
	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/pkg/schedsdk"
)

func meetingResponse(m domain.Meeting) schedsdk.MeetingResponse {
	return schedsdk.MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Status:      string(m.Status),
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func participantResponse(p domain.Participant) schedsdk.ParticipantResponse {
	return schedsdk.ParticipantResponse{
		ID:          p.ID,
		MeetingID:   p.MeetingID,
		UserID:      p.UserID,
		Email:       p.Email,
		Name:        p.Name,
		Status:      string(p.Status),
		InvitedAt:   p.InvitedAt,
		RespondedAt: p.RespondedAt,
	}
}

func notificationResponse(n domain.Notification) schedsdk.NotificationResponse {
	return schedsdk.NotificationResponse{
		ID:            n.ID,
		MeetingID:     n.MeetingID,
		ParticipantID: n.ParticipantID,
		Email:         n.Email,
		Kind:          string(n.Kind),
		Message:       n.Message,
		Sent:          n.Sent,
		Error:         n.Error,
		CreatedAt:     n.CreatedAt,
	}
}

// conflictMap converts the service's collision map to the compact wire form.
func conflictMap(in map[string][]domain.Meeting) map[string][]schedsdk.ConflictingMeeting {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]schedsdk.ConflictingMeeting, len(in))
	for email, meetings := range in {
		entries := make([]schedsdk.ConflictingMeeting, 0, len(meetings))
		for _, m := range meetings {
			entries = append(entries, schedsdk.ConflictingMeeting{
				ID:        m.ID,
				Title:     m.Title,
				StartTime: m.StartTime,
				EndTime:   m.EndTime,
			})
		}
		out[email] = entries
	}
	return out
}
