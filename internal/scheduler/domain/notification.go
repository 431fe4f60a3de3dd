package domain

import "time"

type NotificationKind string

const (
	NotificationInvitation   NotificationKind = "invitation"
	NotificationUpdate       NotificationKind = "update"
	NotificationCancellation NotificationKind = "cancellation"
	NotificationReminder     NotificationKind = "reminder"
)

// Valid reports whether k is a known notification kind.
func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationInvitation, NotificationUpdate, NotificationCancellation, NotificationReminder:
		return true
	}
	return false
}

// Notification is one row of the append-only delivery audit log. A record is
// written before every delivery attempt and only ever mutated to flip Sent or
// record the delivery error. ParticipantID may be empty: history outlives
// removed participants.
type Notification struct {
	ID            string
	MeetingID     string
	ParticipantID string
	Email         string
	Kind          NotificationKind
	Message       string
	Sent          bool
	Error         string
	CreatedAt     time.Time
}
