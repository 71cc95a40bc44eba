package worker

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/tiffin-service/internal/events"
	"github.com/spec-kit/tiffin-service/internal/guard"
	"github.com/spec-kit/tiffin-service/internal/session"
)

type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) captured() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

func TestSweepClearsExpiredSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	dispatcher := &capturingDispatcher{}

	require.NoError(t, store.Set(ctx, "sid-delivery", session.Session{
		Token: "stale-token",
		Role:  "DELIVERY",
		Email: "rider@example.com",
	}))

	w := NewExpiryWorker(store, func(string) bool { return true }, dispatcher, zap.NewNop(), time.Second)
	w.Track("sid-delivery", "/delivery/routes")

	w.Sweep(ctx)

	got, err := store.Get(ctx, "sid-delivery")
	require.NoError(t, err)
	assert.Nil(t, got, "expired session must be cleared")
	assert.False(t, w.Tracked("sid-delivery"), "tracking is cancelled once the expiry fires")

	captured := dispatcher.captured()
	require.Len(t, captured, 1)
	assert.Equal(t, events.EventSessionExpired, captured[0].Type)

	payload, ok := captured[0].Payload.(events.SessionExpiredPayload)
	require.True(t, ok)
	assert.Equal(t, "sid-delivery", payload.SessionID)
	assert.Equal(t, "DELIVERY", payload.Role)

	u, err := url.Parse(payload.RedirectTo)
	require.NoError(t, err)
	assert.Equal(t, guard.LoginPath, u.Path)
	assert.Equal(t, guard.MsgSessionExpired, u.Query().Get("message"))
	assert.Equal(t, "/delivery/routes", u.Query().Get("redirect"))
}

func TestSweepFiresAtMostOncePerSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	dispatcher := &capturingDispatcher{}

	require.NoError(t, store.Set(ctx, "sid-1", session.Session{Token: "stale", Role: "USER"}))

	w := NewExpiryWorker(store, func(string) bool { return true }, dispatcher, zap.NewNop(), time.Second)
	w.Track("sid-1", "/user/orders")

	w.Sweep(ctx)
	w.Sweep(ctx)

	assert.Len(t, dispatcher.captured(), 1)
}

func TestSweepLeavesLiveSessionsAlone(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	dispatcher := &capturingDispatcher{}

	require.NoError(t, store.Set(ctx, "sid-live", session.Session{Token: "fresh", Role: "USER"}))
	require.NoError(t, store.Set(ctx, "sid-dead", session.Session{Token: "stale", Role: "VENDOR"}))

	expired := func(token string) bool { return token == "stale" }
	w := NewExpiryWorker(store, expired, dispatcher, zap.NewNop(), time.Second)
	w.Track("sid-live", "/user/orders")
	w.Track("sid-dead", "/vendor/orders")

	w.Sweep(ctx)

	live, err := store.Get(ctx, "sid-live")
	require.NoError(t, err)
	assert.NotNil(t, live)
	assert.True(t, w.Tracked("sid-live"))

	dead, err := store.Get(ctx, "sid-dead")
	require.NoError(t, err)
	assert.Nil(t, dead)
	assert.False(t, w.Tracked("sid-dead"))
}

func TestSweepCoversUntrackedSessions(t *testing.T) {
	// Sessions written by a previous process instance are not in the
	// tracked set but still get swept.
	ctx := context.Background()
	store := session.NewMemoryStore()
	dispatcher := &capturingDispatcher{}

	require.NoError(t, store.Set(ctx, "sid-orphan", session.Session{Token: "stale", Role: "USER"}))

	w := NewExpiryWorker(store, func(string) bool { return true }, dispatcher, zap.NewNop(), time.Second)
	w.Sweep(ctx)

	got, err := store.Get(ctx, "sid-orphan")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, dispatcher.captured(), 1)
}

func TestStartStopTearsDownTimer(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.Set(ctx, "sid-1", session.Session{Token: "stale", Role: "USER"}))

	w := NewExpiryWorker(store, func(string) bool { return true }, &capturingDispatcher{}, zap.NewNop(), 5*time.Millisecond)
	w.Start(ctx)

	assert.Eventually(t, func() bool {
		got, err := store.Get(ctx, "sid-1")
		return err == nil && got == nil
	}, time.Second, 5*time.Millisecond)

	w.Stop() // returns only after the loop has exited
}

func TestUntrackOnLogout(t *testing.T) {
	store := session.NewMemoryStore()
	w := NewExpiryWorker(store, func(string) bool { return false }, &capturingDispatcher{}, zap.NewNop(), time.Second)

	w.Track("sid-1", "/user/orders")
	require.True(t, w.Tracked("sid-1"))

	w.Untrack("sid-1")
	assert.False(t, w.Tracked("sid-1"))
}
