// Package interaction exposes the gesture stream as a single pointer-like
// input that a host polls once per frame.
package interaction

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jeffwilliams/gesturemgr/internal/debuglog"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/recognizer"
	"github.com/jeffwilliams/gesturemgr/internal/viewport"
)

var ErrClosed = errors.New("interaction manager is closed")

// Session is a recognizer whose callbacks can be subscribed to.
type Session interface {
	recognizer.Recognizer
	Subscribe(fn recognizer.Handler) (unsubscribe func())
}

type Options struct {
	// Mode is the initial mode. It takes effect when the manager is enabled.
	Mode      gesture.Mode
	Projector viewport.Projector
	Centers   viewport.CenterProvider
	Logf      debuglog.Logf
}

// Manager reduces gesture callbacks from a navigation session, a
// manipulation session and the interaction stream into one
// InteractionState. It must be used from a single goroutine.
type Manager struct {
	state       gesture.InteractionState
	mode        gesture.Mode
	sessions    map[gesture.Mode]Session
	transitions *recognizer.Controller
	projector   viewport.Projector
	centers     viewport.CenterProvider
	unsubscribe []func()
	closed      bool
	logf        debuglog.Logf
}

// New builds a manager and subscribes to the sessions and the stream. The
// subscriptions are held until Close. No session captures until Enable is
// called.
func New(navigation, manipulation Session, stream *Stream, opts Options) (*Manager, error) {
	if navigation == nil || manipulation == nil {
		return nil, fmt.Errorf("both navigation and manipulation sessions are required")
	}
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("%w: id %d", gesture.ErrInvalidMode, int(opts.Mode))
	}
	if opts.Projector == nil || opts.Centers == nil {
		return nil, fmt.Errorf("a projector and a center provider are required")
	}
	if opts.Logf == nil {
		opts.Logf = debuglog.Discard
	}
	if stream == nil {
		stream = NewStream()
	}

	m := &Manager{
		mode: opts.Mode,
		sessions: map[gesture.Mode]Session{
			gesture.Navigation:   navigation,
			gesture.Manipulation: manipulation,
		},
		transitions: recognizer.NewController(opts.Logf),
		projector:   opts.Projector,
		centers:     opts.Centers,
		logf:        opts.Logf,
	}

	for mode, s := range m.sessions {
		mode, s := mode, s
		m.unsubscribe = append(m.unsubscribe, s.Subscribe(func(ev gesture.Event) {
			m.handleSessionEvent(mode, s, ev)
		}))
	}
	m.unsubscribe = append(m.unsubscribe, stream.Subscribe(m.handleSourceEvent))

	return m, nil
}

func (m *Manager) handleSessionEvent(mode gesture.Mode, s Session, ev gesture.Event) {
	if m.transitions.Active() != recognizer.Recognizer(s) {
		m.logf(debuglog.LogCatgGesture, "ignoring %v from inactive %s session\n", ev, mode)
		return
	}
	if !gesture.Reduce(&m.state, m.mode, ev) {
		m.logf(debuglog.LogCatgGesture, "ignoring %v while in %s mode\n", ev, m.mode)
		return
	}
	m.logf(debuglog.LogCatgGesture, "%s: %v -> clicks=%d released=%v cancelled=%v\n",
		mode, ev, m.state.ClickCount, m.state.Released, m.state.Cancelled)
}

func (m *Manager) handleSourceEvent(ev gesture.Event) {
	gesture.Reduce(&m.state, m.mode, ev)
	m.logf(debuglog.LogCatgGesture, "source: %v -> clicks=%d released=%v\n", ev, m.state.ClickCount, m.state.Released)
}

func (m *Manager) Mode() gesture.Mode {
	return m.mode
}

// SetMode hands capture to the session for mode. Setting the mode that is
// already capturing does nothing. Errors reported by the sessions are
// returned, but the mode is recorded regardless.
func (m *Manager) SetMode(mode gesture.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: id %d", gesture.ErrInvalidMode, int(mode))
	}
	if m.closed {
		return ErrClosed
	}

	err := m.transitions.Transition(m.sessions[mode])
	m.mode = mode
	return err
}

// SetModeId is SetMode for callers that only have an integer id. Unknown ids
// are rejected without touching any session.
func (m *Manager) SetModeId(id int) error {
	mode, err := gesture.ModeFromId(id)
	if err != nil {
		return err
	}
	return m.SetMode(mode)
}

// Enable starts capture on the session for the current mode.
func (m *Manager) Enable() error {
	return m.SetMode(m.mode)
}

// Disable cancels any gesture in flight and stops capturing.
func (m *Manager) Disable() error {
	if m.closed {
		return nil
	}
	return m.transitions.Transition(nil)
}

// Close disables the manager and drops every subscription. It is safe to
// call more than once.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	err := m.Disable()
	for _, fn := range m.unsubscribe {
		fn()
	}
	m.unsubscribe = nil
	m.closed = true
	return err
}

// IsSupported reports whether a session is active.
func (m *Manager) IsSupported() bool {
	return m.transitions.Active() != nil
}

func (m *Manager) IsCapturing() bool {
	return m.transitions.IsCapturing()
}

// State returns a copy of the current interaction state.
func (m *Manager) State() gesture.InteractionState {
	return m.state
}

// Update samples the view centre and computes the frame's deltas from the
// active mode's accumulators.
func (m *Manager) Update() {
	m.state.ScreenPosition = m.centers.ScreenCenter()
	m.state.WorldPosition = m.centers.WorldScreenCenter()

	m.state.WorldDelta = m.state.AccumulatedDelta(m.mode, m.IsCapturing())
	m.state.ScreenDelta = m.projector.WorldToScreenPoint(m.state.WorldDelta)
}

func (m *Manager) ScreenPosition() mgl32.Vec2 {
	return m.state.ScreenPosition
}

func (m *Manager) WorldPosition() mgl32.Vec3 {
	return m.state.WorldPosition
}

func (m *Manager) ScreenDelta() mgl32.Vec2 {
	return m.state.ScreenDelta
}

func (m *Manager) WorldDelta() mgl32.Vec3 {
	return m.state.WorldDelta
}
