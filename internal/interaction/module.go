package interaction

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jeffwilliams/gesturemgr/internal/debuglog"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
)

// Button names a pointer button. Gestures drive a single logical button, so
// every query answers the same for all buttons.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// InputModule is the pointer-like contract a host polls once per frame.
type InputModule interface {
	IsPressed(b Button) bool
	IsReleased(b Button) bool
	ScreenPosition() mgl32.Vec2
	WorldPosition() mgl32.Vec3
	ScreenDelta() mgl32.Vec2
	WorldDelta() mgl32.Vec3
	IsCapturing() bool
	IsCancelled() bool
	ShouldActivate() bool
	ShouldSubmit() bool
	ShouldCancel() bool
	ShouldMove() (bool, mgl32.Vec2)
	ResetButtonState(b Button)
	Mode() gesture.Mode
	SetMode(m gesture.Mode) error
	SetModeId(id int) error
}

var _ InputModule = (*Manager)(nil)

func (m *Manager) IsPressed(b Button) bool {
	return m.state.IsPressed()
}

func (m *Manager) IsReleased(b Button) bool {
	return m.state.Released
}

func (m *Manager) IsCancelled() bool {
	return m.state.Cancelled
}

// ShouldActivate is true while capturing when a click happened, a gesture is
// still held, or a gesture was canceled.
func (m *Manager) ShouldActivate() bool {
	if !m.IsCapturing() {
		return false
	}
	return m.IsPressed(ButtonLeft) || !m.IsReleased(ButtonLeft) || m.IsCancelled()
}

// ShouldSubmit is reserved for a submit voice command.
func (m *Manager) ShouldSubmit() bool {
	return false
}

func (m *Manager) ShouldCancel() bool {
	return m.IsCancelled()
}

// ShouldMove is reserved for directional voice commands.
func (m *Manager) ShouldMove() (bool, mgl32.Vec2) {
	return false, mgl32.Vec2{}
}

// ResetButtonState consumes the frame's click pulse.
func (m *Manager) ResetButtonState(b Button) {
	m.state.ResetButtonState()
}

func (m *Manager) ActivateModule() {
	m.logf(debuglog.LogCatgGesture, "module activated in %s mode\n", m.mode)
}

func (m *Manager) DeactivateModule() {
	m.logf(debuglog.LogCatgGesture, "module deactivated\n")
}

// Frame is everything a host learns from one poll.
type Frame struct {
	Mode           gesture.Mode
	Capturing      bool
	Pressed        bool
	Released       bool
	Cancelled      bool
	ShouldActivate bool
	ShouldCancel   bool
	ScreenPosition mgl32.Vec2
	WorldPosition  mgl32.Vec3
	ScreenDelta    mgl32.Vec2
	WorldDelta     mgl32.Vec3
}

// Poll samples m the way a host does each frame: read every query, then
// consume the click pulse.
func Poll(m InputModule) Frame {
	f := Frame{
		Mode:           m.Mode(),
		Capturing:      m.IsCapturing(),
		Pressed:        m.IsPressed(ButtonLeft),
		Released:       m.IsReleased(ButtonLeft),
		Cancelled:      m.IsCancelled(),
		ShouldActivate: m.ShouldActivate(),
		ShouldCancel:   m.ShouldCancel(),
		ScreenPosition: m.ScreenPosition(),
		WorldPosition:  m.WorldPosition(),
		ScreenDelta:    m.ScreenDelta(),
		WorldDelta:     m.WorldDelta(),
	}
	m.ResetButtonState(ButtonLeft)
	return f
}
