package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/service"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/schedsdk"
	"github.com/huddlehq/huddle/pkg/slogx"
)

// MeetingsHandler handles the meeting CRUD and lifecycle endpoints.
type MeetingsHandler struct {
	MeetingService *service.MeetingService
}

// HandleCreate handles POST /v1/meetings.
func (h *MeetingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req schedsdk.MeetingRequest
	if apiErr := decodeValid(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	meeting, err := h.MeetingService.Create(ctx, domain.Meeting{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeRange):
			schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeInvalidRequest,
				"start_time must be before end_time",
			).WriteError(w)
		default:
			log.Error("failed to create meeting", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, meetingResponse(meeting))
}

// HandleList handles GET /v1/meetings. Supported query parameters:
// owner_id, status, from, until (RFC3339) and q (substring search).
func (h *MeetingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	q := r.URL.Query()

	filter := store.MeetingFilter{
		OwnerID: q.Get("owner_id"),
		Query:   q.Get("q"),
	}

	if raw := q.Get("status"); raw != "" {
		status := domain.MeetingStatus(raw)
		if !status.Valid() {
			schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeInvalidRequest,
				"status must be one of: scheduled, cancelled, completed",
			).WriteError(w)
			return
		}
		filter.Status = status
	}

	for name, dst := range map[string]**time.Time{"from": &filter.From, "until": &filter.Until} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeInvalidRequest,
				name+" must be an RFC3339 timestamp",
			).WriteError(w)
			return
		}
		*dst = &t
	}

	meetings, err := h.MeetingService.List(ctx, filter)
	if err != nil {
		log.Error("failed to list meetings", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}

	resp := schedsdk.ListMeetingsResponse{
		Meetings: make([]schedsdk.MeetingResponse, 0, len(meetings)),
	}
	for _, m := range meetings {
		resp.Meetings = append(resp.Meetings, meetingResponse(m))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/meetings/{id}.
func (h *MeetingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	meeting, err := h.MeetingService.Get(ctx, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMeetingNotFound):
			schedsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to get meeting", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meetingResponse(meeting))
}

// HandleUpdate handles PATCH /v1/meetings/{id}.
func (h *MeetingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req schedsdk.MeetingUpdateRequest
	if apiErr := decodeValid(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	meeting, err := h.MeetingService.Update(ctx, r.PathValue("id"), service.MeetingChanges{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMeetingNotFound):
			schedsdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrMeetingNotScheduled):
			schedsdk.NewAPIError(
				http.StatusConflict,
				schedsdk.ErrorCodeConflict,
				"only scheduled meetings can be edited",
			).WriteError(w)
		case errors.Is(err, service.ErrInvalidTimeRange):
			schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeInvalidRequest,
				"start_time must be before end_time",
			).WriteError(w)
		default:
			log.Error("failed to update meeting", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meetingResponse(meeting))
}

// HandleDelete handles DELETE /v1/meetings/{id}.
func (h *MeetingsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.MeetingService.Delete(ctx, r.PathValue("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrMeetingNotFound):
			schedsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to delete meeting", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCancel handles POST /v1/meetings/{id}/cancel.
func (h *MeetingsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.MeetingService.Cancel)
}

// HandleComplete handles POST /v1/meetings/{id}/complete.
func (h *MeetingsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.MeetingService.Complete)
}

func (h *MeetingsHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id string) (domain.Meeting, error),
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	meeting, err := fn(ctx, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMeetingNotFound):
			schedsdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrAlreadyCancelled):
			schedsdk.NewAPIError(
				http.StatusConflict,
				schedsdk.ErrorCodeConflict,
				"meeting is already cancelled",
			).WriteError(w)
		case errors.Is(err, service.ErrMeetingNotScheduled):
			schedsdk.NewAPIError(
				http.StatusConflict,
				schedsdk.ErrorCodeConflict,
				"meeting is no longer scheduled",
			).WriteError(w)
		default:
			log.Error("failed to transition meeting", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meetingResponse(meeting))
}
