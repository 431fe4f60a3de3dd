package http

import (
	"errors"
	"net/http"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/service"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/schedsdk"
	"github.com/huddlehq/huddle/pkg/slogx"
)

// ParticipantsHandler handles the participant endpoints of a meeting.
type ParticipantsHandler struct {
	MeetingService     *service.MeetingService
	ParticipantService *service.ParticipantService
	ConflictService    *service.ConflictService
}

// HandleAdd handles POST /v1/meetings/{id}/participants. The participant's
// schedule is checked first: inviting someone into a slot they already have
// booked returns 409 with the collision details. The check excludes the
// target meeting itself so re-inviting after an edit is not self-blocking.
func (h *ParticipantsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	meetingID := r.PathValue("id")

	var req schedsdk.ParticipantRequest
	if apiErr := decodeValid(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

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

	conflicts, err := h.ConflictService.FindConflicts(
		ctx,
		[]string{req.Email},
		meeting.StartTime,
		meeting.EndTime,
		meetingID,
	)
	if err != nil && !errors.Is(err, service.ErrNoCandidates) {
		log.Error("conflict check failed", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}
	if len(conflicts) > 0 {
		conflictErr := &schedsdk.ConflictError{Conflicts: conflictMap(conflicts)}
		conflictErr.WriteError(w)
		return
	}

	participant, err := h.ParticipantService.Add(ctx, meetingID, req.Email, req.Name, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMeetingNotFound):
			schedsdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeInvalidRequest,
				"email must be a valid email address",
			).WriteError(w)
		case errors.Is(err, service.ErrDuplicateParticipant):
			schedsdk.NewAPIError(
				http.StatusConflict,
				schedsdk.ErrorCodeConflict,
				"participant is already invited to this meeting",
			).WriteError(w)
		default:
			log.Error("failed to add participant", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, participantResponse(participant))
}

// HandleList handles GET /v1/meetings/{id}/participants.
func (h *ParticipantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	meetingID := r.PathValue("id")

	// Listing an unknown meeting is a 404, not an empty list
	if _, err := h.MeetingService.Get(ctx, meetingID); err != nil {
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

	resp := schedsdk.ListParticipantsResponse{
		Participants: make([]schedsdk.ParticipantResponse, 0, len(participants)),
	}
	for _, p := range participants {
		resp.Participants = append(resp.Participants, participantResponse(p))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRemove handles DELETE /v1/meetings/{id}/participants/{participantID}.
func (h *ParticipantsHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.ParticipantService.Remove(ctx, r.PathValue("id"), r.PathValue("participantID"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParticipantNotFound):
			schedsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to remove participant", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleStatus handles PUT /v1/meetings/{id}/participants/{participantID}/status.
func (h *ParticipantsHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req schedsdk.ParticipantStatusRequest
	if apiErr := decodeValid(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	participant, err := h.ParticipantService.SetStatus(
		ctx,
		r.PathValue("id"),
		r.PathValue("participantID"),
		domain.ParticipantStatus(req.Status),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParticipantNotFound):
			schedsdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrInvalidStatus):
			schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeInvalidRequest,
				"status must be one of: accepted, declined, tentative",
			).WriteError(w)
		default:
			log.Error("failed to update participant status", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, participantResponse(participant))
}
