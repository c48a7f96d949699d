package remote

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ui/lumen"
)

func TestWaitEventsTimeoutDispatchesQueuedEvents(t *testing.T) {
	s := New()

	var gotUID string
	var gotEv lumen.MouseEvent
	redraws := 0
	s.SetMouseEventCallback(func(uid string, ev lumen.MouseEvent) {
		gotUID, gotEv = uid, ev
	})
	s.SetRedrawCallback(func(string) { redraws++ })

	ev := lumen.MouseEvent{Type: lumen.MouseMove, X: 10, Y: 20}
	require.True(t, s.PostMouseEvent("w1", ev))
	require.True(t, s.PostRedrawEvent("w1"))

	// Both events are already queued; the wait must dispatch them all
	// without sleeping out the timeout.
	start := time.Now()
	s.WaitEventsTimeout(time.Second)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	assert.Equal(t, "w1", gotUID)
	assert.Equal(t, ev, gotEv)
	assert.Equal(t, 1, redraws)
}

func TestWaitEventsTimeoutReturnsOnTimeout(t *testing.T) {
	s := New()
	start := time.Now()
	s.WaitEventsTimeout(10 * time.Millisecond)
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}

func TestMouseHandler(t *testing.T) {
	s := New()

	body := `{"window_uid":"w1","event":{"type":1,"x":5,"y":6,"button":1}}`
	req := httptest.NewRequest(http.MethodPost, "/events/mouse", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleMouse(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	var got lumen.MouseEvent
	s.SetMouseEventCallback(func(uid string, ev lumen.MouseEvent) { got = ev })
	s.WaitEventsTimeout(time.Millisecond)
	assert.Equal(t, lumen.MouseButtonDown, got.Type)
	assert.Equal(t, lumen.MouseButtonLeft, got.Button)
	assert.Equal(t, 5, got.X)
}

func TestMouseHandlerRejectsBadInput(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodPost, "/events/mouse", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.handleMouse(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/events/mouse", strings.NewReader(`{"event":{}}`))
	rec = httptest.NewRecorder()
	s.handleMouse(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "window_uid is mandatory")
}

func TestRedrawHandler(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodPost, "/events/redraw", strings.NewReader(`{"window_uid":"w1"}`))
	rec := httptest.NewRecorder()
	s.handleRedraw(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	var uid string
	s.SetRedrawCallback(func(u string) { uid = u })
	s.WaitEventsTimeout(time.Millisecond)
	assert.Equal(t, "w1", uid)
}

func TestStartServerIsIdempotent(t *testing.T) {
	s := New(WithAddr("127.0.0.1:0"))
	t.Cleanup(s.Uninitialize)

	require.NoError(t, s.StartServer())
	s.srvMu.Lock()
	srv := s.server
	s.srvMu.Unlock()
	require.NotNil(t, srv)

	require.NoError(t, s.StartServer())
	s.srvMu.Lock()
	assert.Same(t, srv, s.server, "second start must not spawn another server")
	s.srvMu.Unlock()
}

func TestServerSurvivesStartStopStart(t *testing.T) {
	s := New(WithAddr("127.0.0.1:0"))
	t.Cleanup(s.Uninitialize)

	require.NoError(t, s.StartServer())
	require.True(t, s.serving())

	// The run loop uninitializes the window system when a cycle
	// finishes; the next cycle must get a working server again.
	s.Uninitialize()
	assert.False(t, s.serving())

	require.NoError(t, s.StartServer())
	assert.True(t, s.serving(), "restart after uninitialize must bring the acceptor back")
}

func TestUninitializeDuringActiveServe(t *testing.T) {
	s := New(WithAddr("127.0.0.1:0"))
	require.NoError(t, s.StartServer())

	// Give the serve goroutine a chance to be scheduled before the
	// server is torn down underneath it.
	time.Sleep(10 * time.Millisecond)
	s.Uninitialize()
	s.Uninitialize() // second stop is a no-op
	assert.False(t, s.serving())
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	s := New()
	for i := 0; i < eventQueueSize; i++ {
		require.True(t, s.PostRedrawEvent("w1"))
	}
	assert.False(t, s.PostRedrawEvent("w1"), "a full queue drops instead of blocking a handler")
}

func TestNotifyFrameDoesNotBlockWithoutSubscribers(t *testing.T) {
	s := New()
	s.NotifyFrame("w1") // no subscribers, must return immediately
}
