package schedsdk

import "time"

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse represents a standard error response from the scheduler API.
// This is used internally for parsing HTTP error responses.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "not_found", "conflict")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Meeting Types
// ============================================================================

// MeetingRequest contains the data needed to schedule a new meeting.
type MeetingRequest struct {
	// Title is the meeting subject line
	Title string `json:"title" validate:"required,max=200"`

	// Description is an optional longer body for the invitation
	Description string `json:"description,omitempty" validate:"max=2000"`

	// Location is an optional free-form place or meeting link
	Location string `json:"location,omitempty" validate:"max=200"`

	// StartTime is when the meeting begins (must be before EndTime)
	StartTime time.Time `json:"start_time" validate:"required"`

	// EndTime is when the meeting ends
	EndTime time.Time `json:"end_time" validate:"required,gtfield=StartTime"`

	// OwnerID identifies the user scheduling the meeting
	OwnerID string `json:"owner_id" validate:"required"`
}

// MeetingUpdateRequest carries a partial update to a scheduled meeting.
// Only non-nil fields are applied.
type MeetingUpdateRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}

// MeetingResponse represents a meeting as returned by the API.
type MeetingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`

	// Status is one of "scheduled", "cancelled" or "completed"
	Status string `json:"status"`

	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListMeetingsResponse contains a page of meetings.
type ListMeetingsResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

// ============================================================================
// Participant Types
// ============================================================================

// ParticipantRequest contains the data needed to invite a participant.
type ParticipantRequest struct {
	// Email is the participant's address; it is normalised to lower case
	// server-side and must be unique within the meeting
	Email string `json:"email" validate:"required,email"`

	// Name is an optional display name used in notifications
	Name string `json:"name,omitempty" validate:"max=100"`

	// UserID optionally links the participant to a known user account
	UserID string `json:"user_id,omitempty"`
}

// ParticipantStatusRequest updates a participant's RSVP.
type ParticipantStatusRequest struct {
	// Status is one of "accepted", "declined" or "tentative"
	Status string `json:"status" validate:"required,oneof=accepted declined tentative"`
}

// ParticipantResponse represents a participant as returned by the API.
type ParticipantResponse struct {
	ID        string `json:"id"`
	MeetingID string `json:"meeting_id"`
	UserID    string `json:"user_id,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`

	// Status is one of "invited", "accepted", "declined" or "tentative"
	Status string `json:"status"`

	InvitedAt   time.Time  `json:"invited_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// ListParticipantsResponse contains all participants of a meeting.
type ListParticipantsResponse struct {
	Participants []ParticipantResponse `json:"participants"`
}

// ============================================================================
// Conflict Types
// ============================================================================

// ConflictCheckRequest asks whether a proposed time slot collides with the
// existing schedules of a set of participants.
type ConflictCheckRequest struct {
	// ParticipantEmails lists the people to check
	ParticipantEmails []string `json:"participant_emails" validate:"required,min=1,dive,email"`

	// StartTime / EndTime bound the proposed slot
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`

	// ExcludeMeetingID optionally ignores one meeting, used when
	// rescheduling so a meeting does not conflict with itself
	ExcludeMeetingID string `json:"exclude_meeting_id,omitempty"`
}

// ConflictingMeeting is a compact view of a meeting that overlaps the
// proposed slot.
type ConflictingMeeting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ConflictCheckResponse reports per-participant collisions. Participants
// with a clear schedule are omitted from Conflicts.
type ConflictCheckResponse struct {
	HasConflicts bool                            `json:"has_conflicts"`
	Conflicts    map[string][]ConflictingMeeting `json:"conflicts,omitempty"`
}

// ============================================================================
// Notification Types
// ============================================================================

// NotifyRequest triggers a manual notification dispatch for a meeting.
type NotifyRequest struct {
	// Type is one of "invitation", "update", "cancellation" or "reminder".
	// Defaults to "reminder" when omitted.
	Type string `json:"type,omitempty" validate:"omitempty,oneof=invitation update cancellation reminder"`
}

// NotifyResponse reports the per-recipient outcome of a dispatch.
type NotifyResponse struct {
	// Results maps participant email to delivery success
	Results map[string]bool `json:"results"`
}

// NotificationResponse is one entry from a meeting's notification log.
type NotificationResponse struct {
	ID            string    `json:"id"`
	MeetingID     string    `json:"meeting_id"`
	ParticipantID string    `json:"participant_id,omitempty"`
	Email         string    `json:"email"`
	Kind          string    `json:"kind"`
	Message       string    `json:"message"`
	Sent          bool      `json:"sent"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListNotificationsResponse contains a meeting's notification log, most
// recent first.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status is "ok" when the service is healthy, "degraded" otherwise
	Status string `json:"status"`

	// Version is the running service version
	Version string `json:"version,omitempty"`

	// Uptime is the human-readable time since the service started
	Uptime string `json:"uptime,omitempty"`

	// Checks reports per-dependency health (readyz only)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database is "ok" when the store responds to a ping
	Database string `json:"database"`
}
