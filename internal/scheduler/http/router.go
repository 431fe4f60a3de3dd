package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/huddlehq/huddle/internal/scheduler/service"
	"github.com/huddlehq/huddle/internal/scheduler/store"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	MeetingService     *service.MeetingService
	ParticipantService *service.ParticipantService
	ConflictService    *service.ConflictService
	NotifyService      *service.NotifyService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerMeetings()
	r.registerParticipants()
	r.registerNotifications()
	r.registerCalendar()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerMeetings() {
	h := &MeetingsHandler{MeetingService: r.MeetingService}

	// POST /meetings - moderate rate limit (write operation)
	r.Mux.Handle("POST /v1/meetings",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /meetings - lenient rate limit (read-heavy listing)
	r.Mux.Handle("GET /v1/meetings",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /meetings/check-conflicts - dry-run availability probe, lenient.
	// Registered on the literal segment so it wins over the {id} patterns.
	conflicts := &ConflictsHandler{ConflictService: r.ConflictService}
	r.Mux.Handle("POST /v1/meetings/check-conflicts",
		httpx.Chain(conflicts,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/meetings/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("PATCH /v1/meetings/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/meetings/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Lifecycle transitions fan notifications out, so keep them moderate
	r.Mux.Handle("POST /v1/meetings/{id}/cancel",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/meetings/{id}/complete",
		httpx.Chain(http.HandlerFunc(h.HandleComplete),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerParticipants() {
	h := &ParticipantsHandler{
		MeetingService:     r.MeetingService,
		ParticipantService: r.ParticipantService,
		ConflictService:    r.ConflictService,
	}

	r.Mux.Handle("POST /v1/meetings/{id}/participants",
		httpx.Chain(http.HandlerFunc(h.HandleAdd),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/meetings/{id}/participants",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/meetings/{id}/participants/{participantID}",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("PUT /v1/meetings/{id}/participants/{participantID}/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{
		NotifyService: r.NotifyService,
		Store:         r.store,
	}

	// POST /notify triggers real deliveries - strict rate limit
	r.Mux.Handle("POST /v1/meetings/{id}/notify",
		httpx.Chain(http.HandlerFunc(h.HandleNotify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/meetings/{id}/notifications",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerCalendar() {
	h := &CalendarHandler{
		MeetingService:     r.MeetingService,
		ParticipantService: r.ParticipantService,
		Store:              r.store,
	}

	r.Mux.Handle("GET /v1/meetings/{id}/calendar.ics",
		httpx.Chain(http.HandlerFunc(h.HandleMeetingICS),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/calendar.ics",
		httpx.Chain(http.HandlerFunc(h.HandleUserCalendar),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
