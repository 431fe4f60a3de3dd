package domain

import "time"

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCancelled MeetingStatus = "cancelled"
	MeetingCompleted MeetingStatus = "completed"
)

// Valid reports whether s is a known meeting status.
func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingScheduled, MeetingCancelled, MeetingCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s MeetingStatus) Terminal() bool {
	return s == MeetingCancelled || s == MeetingCompleted
}

// Meeting is a scheduled event owned by a single user. The time window
// invariant (StartTime before EndTime) is enforced by the meeting service on
// every create and update.
type Meeting struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Status      MeetingStatus
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overlaps reports whether the meeting's window overlaps [start, end) using
// open-interval semantics: windows that merely touch at a boundary instant do
// not overlap. Back-to-back meetings are deliberately not conflicts.
func (m Meeting) Overlaps(start, end time.Time) bool {
	return m.StartTime.Before(end) && m.EndTime.After(start)
}
