package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/huddlehq/huddle/internal/scheduler/domain"
	"github.com/huddlehq/huddle/internal/scheduler/service"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/schedsdk"
	"github.com/huddlehq/huddle/pkg/slogx"
)

// NotificationsHandler handles manual dispatch and the notification log.
type NotificationsHandler struct {
	NotifyService *service.NotifyService
	Store         store.Store
}

// HandleNotify handles POST /v1/meetings/{id}/notify. An empty or omitted
// type defaults to a reminder.
func (h *NotificationsHandler) HandleNotify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// An empty body is fine here; it means "send a reminder".
	var req schedsdk.NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		schedsdk.NewAPIError(
			http.StatusBadRequest,
			schedsdk.ErrorCodeInvalidRequest,
			"Invalid JSON body",
		).WriteError(w)
		return
	}
	if apiErr := validateStruct(&req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	kind := domain.NotificationReminder
	if req.Type != "" {
		kind = domain.NotificationKind(req.Type)
	}

	results, err := h.NotifyService.NotifyMeeting(ctx, r.PathValue("id"), kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMeetingNotFound):
			schedsdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to dispatch notifications", "err", err)
			schedsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, schedsdk.NotifyResponse{Results: results})
}

// HandleList handles GET /v1/meetings/{id}/notifications, the append-only
// audit log in reverse chronological order.
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	meetingID := r.PathValue("id")

	if _, err := h.Store.Meetings().GetMeetingByID(ctx, meetingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			schedsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to load meeting", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}

	notifications, err := h.Store.Notifications().ListNotificationsByMeeting(ctx, meetingID)
	if err != nil {
		log.Error("failed to list notifications", "err", err)
		schedsdk.ErrServerError.WriteError(w)
		return
	}

	resp := schedsdk.ListNotificationsResponse{
		Notifications: make([]schedsdk.NotificationResponse, 0, len(notifications)),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, notificationResponse(n))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
