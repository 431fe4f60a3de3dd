package store

import (
	"context"
	"errors"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep the surface tidy; services that need a
// read-modify-write cycle on one meeting wrap it in WithTx.
type Store interface {
	Meetings() Meetings
	Participants() Participants
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A non-nil error from fn rolls
	// the transaction back, nil commits it.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store with Commit/Rollback added.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// MeetingFilter narrows ListMeetings. Zero values mean "no constraint".
type MeetingFilter struct {
	OwnerID string
	Status  domain.MeetingStatus
	// From keeps meetings starting at or after this instant.
	From *time.Time
	// Until keeps meetings ending at or before this instant.
	Until *time.Time
	// Query is a case-insensitive substring match over title, description
	// and location.
	Query string
}

type Meetings interface {
	// CreateMeeting inserts a new meeting (id assigned by the caller).
	CreateMeeting(ctx context.Context, m domain.Meeting) error

	// GetMeetingByID returns a meeting by id.
	GetMeetingByID(ctx context.Context, id string) (domain.Meeting, error)

	// ListMeetings returns meetings matching f, ordered by start time.
	ListMeetings(ctx context.Context, f MeetingFilter) ([]domain.Meeting, error)

	// UpdateMeeting rewrites the mutable fields (title, description,
	// location, window, status, updated_at) of an existing meeting.
	UpdateMeeting(ctx context.Context, m domain.Meeting) error

	// DeleteMeeting removes a meeting; participants and notifications
	// cascade per schema.
	DeleteMeeting(ctx context.Context, id string) error

	// ListOverlapping returns scheduled meetings in which email participates
	// whose window overlaps (start, end) open-interval. excludeMeetingID,
	// when non-empty, is skipped to support update-in-place checks.
	ListOverlapping(ctx context.Context, email string, start, end time.Time, excludeMeetingID string) ([]domain.Meeting, error)

	// ListUpcomingByEmail returns scheduled meetings in which email
	// participates that have not yet ended at from, soonest first.
	ListUpcomingByEmail(ctx context.Context, email string, from time.Time) ([]domain.Meeting, error)

	// ListDueForReminder returns scheduled meetings starting inside
	// (from, until] that have no reminder notification recorded yet.
	ListDueForReminder(ctx context.Context, from, until time.Time) ([]domain.Meeting, error)
}

type Participants interface {
	// CreateParticipant inserts a participant. Returns ErrAlreadyExists when
	// the (meeting, email) pair is already taken; the UNIQUE constraint is
	// the backstop for concurrent adds.
	CreateParticipant(ctx context.Context, p domain.Participant) error

	// GetParticipantByID returns a participant by id.
	GetParticipantByID(ctx context.Context, id string) (domain.Participant, error)

	// GetParticipantByEmail returns the participant with the given
	// normalized email on a meeting.
	GetParticipantByEmail(ctx context.Context, meetingID, email string) (domain.Participant, error)

	// ListParticipantsByMeeting returns a meeting's participants in invite
	// order.
	ListParticipantsByMeeting(ctx context.Context, meetingID string) ([]domain.Participant, error)

	// UpdateParticipantStatus records an RSVP answer.
	UpdateParticipantStatus(ctx context.Context, id string, status domain.ParticipantStatus, respondedAt time.Time) error

	// DeleteParticipant removes a participant. Notification history keeps a
	// null participant reference per schema.
	DeleteParticipant(ctx context.Context, id string) error
}

type Notifications interface {
	// CreateNotification appends one audit record, normally with Sent=false
	// before the delivery attempt is made.
	CreateNotification(ctx context.Context, n domain.Notification) error

	// MarkNotificationSent flips sent=true after a successful delivery.
	MarkNotificationSent(ctx context.Context, id string) error

	// MarkNotificationFailed records the delivery error.
	MarkNotificationFailed(ctx context.Context, id string, deliveryErr string) error

	// ListNotificationsByMeeting returns a meeting's audit log, newest first.
	ListNotificationsByMeeting(ctx context.Context, meetingID string) ([]domain.Notification, error)
}
