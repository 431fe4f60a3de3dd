package http

import (
	"errors"
	"net/http"

	"github.com/huddlehq/huddle/internal/scheduler/service"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/schedsdk"
	"github.com/huddlehq/huddle/pkg/slogx"
)

// ConflictsHandler handles POST /v1/meetings/check-conflicts, the read-only
// availability probe. It never creates or modifies anything; a 200 response
// with has_conflicts=true is not an error.
type ConflictsHandler struct {
	ConflictService *service.ConflictService
}

func (h *ConflictsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req schedsdk.ConflictCheckRequest
	if apiErr := decodeValid(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	conflicts, err := h.ConflictService.FindConflicts(
		ctx,
		req.ParticipantEmails,
		req.StartTime,
		req.EndTime,
		req.ExcludeMeetingID,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeRange):
			schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeInvalidRequest,
				"start_time must be before end_time",
			).WriteError(w)
		case errors.Is(err, service.ErrNoCandidates):
			schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeInvalidRequest,
				"at least one valid participant email is required",
			).WriteError(w)
		default:
			log.Error("conflict check failed", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, schedsdk.ConflictCheckResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflictMap(conflicts),
	})
}
