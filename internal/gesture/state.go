package gesture

import "github.com/go-gl/mathgl/mgl32"

// InteractionState is the unified, pollable view of the gesture stream.
type InteractionState struct {
	// ClickCount is non-zero from a press-like event until the host consumes
	// the click with ResetButtonState.
	ClickCount uint16
	Released   bool
	Cancelled  bool

	ScreenPosition mgl32.Vec2
	WorldPosition  mgl32.Vec3
	ScreenDelta    mgl32.Vec2
	WorldDelta     mgl32.Vec3

	// Mode private accumulators. Only the active mode's are ever reported.
	NavigationPosition   mgl32.Vec3
	ManipulationPosition mgl32.Vec3
	ManipulationPrevious mgl32.Vec3
}

func (s *InteractionState) IsPressed() bool {
	return s.ClickCount > 0
}

// ResetButtonState consumes the click pulse. The click count is only cleared
// once the gesture has been released, so a press that is still held keeps
// reporting as pressed.
func (s *InteractionState) ResetButtonState() {
	if s.Released && s.ClickCount > 0 {
		s.ClickCount = 0
	}
	s.Cancelled = false
	s.Released = false
}

// AccumulatedDelta is the world-space motion for the frame. Navigation reports
// the latest absolute axis sample; manipulation reports the difference between
// the last two translate samples.
func (s *InteractionState) AccumulatedDelta(mode Mode, capturing bool) mgl32.Vec3 {
	if !capturing {
		return mgl32.Vec3{}
	}
	if mode == Navigation {
		return s.NavigationPosition
	}
	return s.ManipulationPosition.Sub(s.ManipulationPrevious)
}
