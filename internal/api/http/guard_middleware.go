package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/tiffin-service/internal/auth"
	"github.com/spec-kit/tiffin-service/internal/guard"
	"github.com/spec-kit/tiffin-service/internal/observability"
	"github.com/spec-kit/tiffin-service/internal/service"
	"github.com/spec-kit/tiffin-service/internal/session"
)

// GuardMiddleware runs the route guard on every guarded navigation:
// resolve the session, authorize the path, and either pass through or
// issue a redirect. All failure modes end in a redirect, never an error
// surfaced to the user.
type GuardMiddleware struct {
	guard      *guard.Guard
	sessions   session.Store
	tracker    service.SessionTracker
	metrics    *observability.Metrics
	logger     *zap.Logger
	cookieName string
}

// NewGuardMiddleware constructs the middleware.
func NewGuardMiddleware(g *guard.Guard, sessions session.Store, tracker service.SessionTracker, metrics *observability.Metrics, logger *zap.Logger, cookieName string) *GuardMiddleware {
	return &GuardMiddleware{
		guard:      g,
		sessions:   sessions,
		tracker:    tracker,
		metrics:    metrics,
		logger:     logger,
		cookieName: cookieName,
	}
}

// Handle authorizes the request path against the stored session.
func (m *GuardMiddleware) Handle(c *fiber.Ctx) error {
	path := c.Path()

	sessionID := c.Cookies(m.cookieName)
	if sessionID == "" {
		sessionID = c.Get("X-Session-ID")
	}

	var sess *session.Session
	if sessionID != "" {
		loaded, err := m.sessions.Get(c.Context(), sessionID)
		if err != nil {
			// A broken session backend must not lock users out of
			// public pages; treat as no session.
			m.logger.Warn("guard: session lookup failed", zap.Error(err))
		} else {
			sess = loaded
		}
	}
	if sess == nil {
		if header := c.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			sess = auth.PeekSession(strings.TrimPrefix(header, "Bearer "))
		}
	}

	decision := m.guard.Authorize(sess, path)

	if decision.ClearSession && sessionID != "" {
		if err := m.sessions.Clear(c.Context(), sessionID); err != nil {
			m.logger.Warn("guard: session clear failed", zap.Error(err))
		}
		if m.tracker != nil {
			m.tracker.Untrack(sessionID)
		}
		c.ClearCookie(m.cookieName)
	}

	if !decision.Allowed {
		m.metrics.RecordGuardDecision(path, outcome(decision))
		return c.Redirect(decision.Location, fiber.StatusFound)
	}

	m.metrics.RecordGuardDecision(path, "allow")
	if sess != nil {
		auth.StashToken(c, sess.Token)
		if m.tracker != nil && sessionID != "" {
			m.tracker.Track(sessionID, path)
		}
	}
	return c.Next()
}

func outcome(d guard.Decision) string {
	if strings.HasPrefix(d.Location, guard.LoginPath) {
		return "redirect_login"
	}
	return "redirect_home"
}
