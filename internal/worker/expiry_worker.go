package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tiffin-service/internal/events"
	"github.com/spec-kit/tiffin-service/internal/guard"
	"github.com/spec-kit/tiffin-service/internal/session"
)

// ExpiryWorker is the background counterpart to the on-request guard
// check: a session can outlive its token while the user sits idle, with
// no request to trigger the check. Each tick the worker re-reads stored
// sessions, clears any whose token has expired and publishes a
// session-expired event carrying the login redirect. A session fires at
// most once; its tracking is cancelled the moment the expiry is handled.
type ExpiryWorker struct {
	store      session.Store
	expired    guard.TokenExpiredFunc
	dispatcher events.Dispatcher
	logger     *zap.Logger
	interval   time.Duration

	mu      sync.Mutex
	tracked map[string]string // session id -> last requested path
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewExpiryWorker builds a stopped worker.
func NewExpiryWorker(store session.Store, expired guard.TokenExpiredFunc, dispatcher events.Dispatcher, logger *zap.Logger, interval time.Duration) *ExpiryWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ExpiryWorker{
		store:      store,
		expired:    expired,
		dispatcher: dispatcher,
		logger:     logger,
		interval:   interval,
		tracked:    make(map[string]string),
	}
}

// Track registers a session for expiry polling. Called at login; the
// path is updated by the guard as the user navigates so the eventual
// redirect can preserve the intended destination.
func (w *ExpiryWorker) Track(sessionID, lastPath string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tracked[sessionID] = lastPath
}

// Untrack cancels polling for a session. Called at logout and after an
// expiry fires.
func (w *ExpiryWorker) Untrack(sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.tracked, sessionID)
}

// Tracked reports whether a session is still being polled.
func (w *ExpiryWorker) Tracked(sessionID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.tracked[sessionID]
	return ok
}

// Start launches the polling loop. It runs until the context is
// cancelled or Stop is called.
func (w *ExpiryWorker) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.done = make(chan struct{})
	done := w.done
	w.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Sweep(ctx)
			}
		}
	}()
}

// Stop tears the poller down and waits for the loop to exit.
func (w *ExpiryWorker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Sweep performs one polling pass: every stored session is checked, not
// just the tracked ones, so sessions written by a previous process
// instance still get cleaned up.
func (w *ExpiryWorker) Sweep(ctx context.Context) {
	ids, err := w.store.IDs(ctx)
	if err != nil {
		w.logger.Warn("expiry sweep: list sessions", zap.Error(err))
		return
	}

	for _, id := range ids {
		sess, err := w.store.Get(ctx, id)
		if err != nil {
			w.logger.Warn("expiry sweep: read session", zap.String("session_id", id), zap.Error(err))
			continue
		}
		if sess == nil {
			w.Untrack(id)
			continue
		}
		if !w.expired(sess.Token) {
			continue
		}

		if err := w.store.Clear(ctx, id); err != nil {
			w.logger.Warn("expiry sweep: clear session", zap.String("session_id", id), zap.Error(err))
			continue
		}

		w.mu.Lock()
		lastPath := w.tracked[id]
		delete(w.tracked, id)
		w.mu.Unlock()

		redirect := guard.LoginRedirect(guard.MsgSessionExpired, lastPath)
		if w.dispatcher != nil {
			_ = w.dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventSessionExpired,
				Timestamp: time.Now(),
				Payload: events.SessionExpiredPayload{
					SessionID:  id,
					Email:      sess.Email,
					Role:       sess.Role,
					RedirectTo: redirect.Location,
				},
			})
		}
		w.logger.Info("session expired",
			zap.String("session_id", id),
			zap.String("role", sess.Role),
		)
	}
}
