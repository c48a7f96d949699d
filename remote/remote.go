// Package remote provides a WindowSystem whose input comes from
// network clients instead of the local OS. Clients post mouse and
// redraw events over HTTP and receive frame notifications over a
// server-sent event stream, keyed by window UID.
//
// The HTTP handlers only enqueue; events are delivered on the
// goroutine that drives the application run loop, inside
// WaitEventsTimeout, so windows observe remote input with the same
// threading guarantees as native input.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumen-ui/lumen"
	"github.com/lumen-ui/lumen/logging"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8888"

// eventQueueSize bounds buffered client events; handlers drop with 503
// when the loop falls this far behind.
const eventQueueSize = 1024

type eventKind int

const (
	eventMouse eventKind = iota
	eventRedraw
)

type remoteEvent struct {
	kind  eventKind
	uid   string
	mouse lumen.MouseEvent
}

// mouseMessage is the wire format of a posted mouse event.
type mouseMessage struct {
	WindowUID string           `json:"window_uid"`
	Event     lumen.MouseEvent `json:"event"`
}

// redrawMessage is the wire format of a posted redraw request.
type redrawMessage struct {
	WindowUID string `json:"window_uid"`
}

// WindowSystem implements lumen.RemoteWindowSystem over HTTP and
// server-sent events.
type WindowSystem struct {
	addr   string
	logger logging.Logger

	events chan remoteEvent

	mu       sync.Mutex
	mouseCB  func(windowUID string, ev lumen.MouseEvent)
	redrawCB func(windowUID string)

	srvMu  sync.Mutex // guards server
	server *http.Server

	subMu sync.Mutex
	subs  map[string]chan string // subscriber id -> frame notifications
}

var _ lumen.RemoteWindowSystem = (*WindowSystem)(nil)

// Option configures a WindowSystem.
type Option func(*WindowSystem)

// WithAddr sets the listen address (default DefaultAddr).
func WithAddr(addr string) Option {
	return func(s *WindowSystem) { s.addr = addr }
}

// WithLogger installs a logger.
func WithLogger(l logging.Logger) Option {
	return func(s *WindowSystem) { s.logger = l }
}

// New constructs a remote window system. The HTTP server does not
// start until StartServer, which the application calls when the first
// window is added.
func New(opts ...Option) *WindowSystem {
	s := &WindowSystem{
		addr:   DefaultAddr,
		logger: logging.NewNoOpLogger(),
		events: make(chan remoteEvent, eventQueueSize),
		subs:   make(map[string]chan string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enable installs a remote window system on the application. Call
// before the first window is created.
func Enable(app *lumen.Application, opts ...Option) *WindowSystem {
	s := New(opts...)
	app.SetWindowSystem(s)
	return s
}

// Initialize implements lumen.WindowSystem. The remote backend has no
// per-process native state to set up.
func (s *WindowSystem) Initialize() error { return nil }

// Uninitialize stops the HTTP server if it was started. A later
// StartServer brings it back up, so the run loop's
// uninitialize/reinitialize cycle works for remote windows too.
func (s *WindowSystem) Uninitialize() {
	s.srvMu.Lock()
	srv := s.server
	s.server = nil
	s.srvMu.Unlock()
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Warn("remote server shutdown", "err", err)
	}
}

// SetMouseEventCallback installs the relay invoked for each client
// mouse event, on the run-loop goroutine.
func (s *WindowSystem) SetMouseEventCallback(fn func(windowUID string, ev lumen.MouseEvent)) {
	s.mu.Lock()
	s.mouseCB = fn
	s.mu.Unlock()
}

// SetRedrawCallback installs the relay invoked for each client redraw
// request, on the run-loop goroutine.
func (s *WindowSystem) SetRedrawCallback(fn func(windowUID string)) {
	s.mu.Lock()
	s.redrawCB = fn
	s.mu.Unlock()
}

// StartServer starts the HTTP acceptor. Idempotent while the server is
// up; after Uninitialize it starts a fresh one, so the window system
// survives the run loop's teardown/re-init cycle.
func (s *WindowSystem) StartServer() error {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()
	if s.server != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("remote: listen %s: %w", s.addr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/mouse", s.handleMouse)
	mux.HandleFunc("POST /events/redraw", s.handleRedraw)
	mux.HandleFunc("GET /stream", s.handleStream)

	srv := &http.Server{Handler: mux}
	s.server = srv
	// The serve goroutine holds its own reference; Uninitialize may nil
	// out s.server while it is still draining.
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("remote server stopped", "err", err)
		}
	}()
	s.logger.Info("remote window server listening", "addr", ln.Addr().String())
	return nil
}

// serving reports whether the HTTP acceptor is currently up.
func (s *WindowSystem) serving() bool {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()
	return s.server != nil
}

// WaitEventsTimeout implements lumen.WindowSystem: it blocks up to
// timeout for the first client event, then drains whatever else is
// queued and dispatches everything through the installed callbacks.
func (s *WindowSystem) WaitEventsTimeout(timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-s.events:
		s.dispatch(ev)
	case <-timer.C:
		return
	}
	for {
		select {
		case ev := <-s.events:
			s.dispatch(ev)
		default:
			return
		}
	}
}

func (s *WindowSystem) dispatch(ev remoteEvent) {
	s.mu.Lock()
	mouseCB, redrawCB := s.mouseCB, s.redrawCB
	s.mu.Unlock()

	switch ev.kind {
	case eventMouse:
		if mouseCB != nil {
			mouseCB(ev.uid, ev.mouse)
		}
	case eventRedraw:
		if redrawCB != nil {
			redrawCB(ev.uid)
		}
	}
}

// PostMouseEvent enqueues a mouse event as if a client had sent it.
// Safe from any goroutine; returns false when the queue is full.
func (s *WindowSystem) PostMouseEvent(windowUID string, ev lumen.MouseEvent) bool {
	return s.enqueue(remoteEvent{kind: eventMouse, uid: windowUID, mouse: ev})
}

// PostRedrawEvent enqueues a redraw request as if a client had sent
// it.
func (s *WindowSystem) PostRedrawEvent(windowUID string) bool {
	return s.enqueue(remoteEvent{kind: eventRedraw, uid: windowUID})
}

func (s *WindowSystem) enqueue(ev remoteEvent) bool {
	select {
	case s.events <- ev:
		return true
	default:
		s.logger.Warn("remote event queue full, dropping", "uid", ev.uid)
		return false
	}
}

// NotifyFrame tells every stream subscriber that a window has a new
// frame. Slow subscribers miss notifications rather than stall the
// renderer.
func (s *WindowSystem) NotifyFrame(windowUID string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- windowUID:
		default:
		}
	}
}

func (s *WindowSystem) handleMouse(w http.ResponseWriter, r *http.Request) {
	var msg mouseMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "bad mouse event: "+err.Error(), http.StatusBadRequest)
		return
	}
	if msg.WindowUID == "" {
		http.Error(w, "window_uid is required", http.StatusBadRequest)
		return
	}
	if !s.PostMouseEvent(msg.WindowUID, msg.Event) {
		http.Error(w, "event queue full", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *WindowSystem) handleRedraw(w http.ResponseWriter, r *http.Request) {
	var msg redrawMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "bad redraw request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if msg.WindowUID == "" {
		http.Error(w, "window_uid is required", http.StatusBadRequest)
		return
	}
	if !s.PostRedrawEvent(msg.WindowUID) {
		http.Error(w, "event queue full", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleStream is the server-sent event feed of frame notifications.
// Each event's data is the UID of the window that drew.
func (s *WindowSystem) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()
	ch := make(chan string, 16)
	s.subMu.Lock()
	s.subs[id] = ch
	s.subMu.Unlock()
	defer func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case uid := <-ch:
			fmt.Fprintf(w, "event: frame\ndata: %s\n\n", uid)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
