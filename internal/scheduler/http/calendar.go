package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/ics"
	"github.com/huddlehq/huddle/internal/scheduler/service"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/pkg/schedsdk"
	"github.com/huddlehq/huddle/pkg/slogx"
)

// CalendarHandler serves iCalendar exports.
type CalendarHandler struct {
	MeetingService     *service.MeetingService
	ParticipantService *service.ParticipantService
	Store              store.Store
}

// HandleMeetingICS handles GET /v1/meetings/{id}/calendar.ics, a single
// meeting as a calendar invitation with full attendee detail.
func (h *CalendarHandler) HandleMeetingICS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	meetingID := r.PathValue("id")

	meeting, err := h.MeetingService.Get(ctx, meetingID)
	if err != nil {
		if errors.Is(err, service.ErrMeetingNotFound) {
			schedsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to load meeting", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}

	participants, err := h.ParticipantService.List(ctx, meetingID)
	if err != nil {
		log.Error("failed to list participants", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}

	// ORGANIZER needs a mailto URI; only emit it when the owner id is an
	// email address.
	organizer := ""
	if strings.Contains(meeting.OwnerID, "@") {
		organizer = meeting.OwnerID
	}

	data, err := ics.ForMeeting(meeting, participants, organizer, time.Now().UTC())
	if err != nil {
		log.Error("failed to render calendar", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}

	writeCalendar(w, "meeting-"+meetingID+".ics", data)
}

// HandleUserCalendar handles GET /v1/calendar.ics?email=..., a combined feed
// of the participant's upcoming scheduled meetings.
func (h *CalendarHandler) HandleUserCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := domain.NormalizeEmail(r.URL.Query().Get("email"))
	if email == "" {
		schedsdk.NewAPIError(
			http.StatusBadRequest,
			schedsdk.ErrorCodeInvalidRequest,
			"email query parameter is required",
		).WriteError(w)
		return
	}

	meetings, err := h.Store.Meetings().ListUpcomingByEmail(ctx, email, time.Now().UTC())
	if err != nil {
		log.Error("failed to list upcoming meetings", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}

	data, err := ics.ForMeetings(meetings, time.Now().UTC())
	if err != nil {
		log.Error("failed to render calendar", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}

	writeCalendar(w, "calendar.ics", data)
}

func writeCalendar(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
