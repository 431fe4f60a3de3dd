package domain

import (
	"strings"
	"time"
)

type ParticipantStatus string

const (
	ParticipantInvited   ParticipantStatus = "invited"
	ParticipantAccepted  ParticipantStatus = "accepted"
	ParticipantDeclined  ParticipantStatus = "declined"
	ParticipantTentative ParticipantStatus = "tentative"
)

// Response reports whether s is an RSVP answer. Invited is the initial state
// only and can never be re-entered.
func (s ParticipantStatus) Response() bool {
	return s == ParticipantAccepted || s == ParticipantDeclined || s == ParticipantTentative
}

// Participant is a person invited to a meeting. The normalized email is the
// natural key together with the meeting id.
type Participant struct {
	ID          string
	MeetingID   string
	UserID      string // linked account, empty when the invitee has none
	Email       string
	Name        string
	Status      ParticipantStatus
	InvitedAt   time.Time
	RespondedAt *time.Time
}

// DisplayName returns the participant's name, falling back to the email.
func (p Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// NormalizeEmail lower-cases and trims an address. Every email must pass
// through here before it is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
