package gesture

import "github.com/go-gl/mathgl/mgl32"

type mutation func(s *InteractionState, ev Event)

// sharedMutations apply regardless of mode.
var sharedMutations = map[Kind]mutation{
	Tap: func(s *InteractionState, ev Event) {
		s.ClickCount = clampTapCount(ev.TapCount)
		s.Released = true
	},
	SourcePressed: func(s *InteractionState, ev Event) {
		s.ClickCount = 1
	},
	SourceReleased: func(s *InteractionState, ev Event) {
		s.Released = true
	},
}

var navigationMutations = map[Kind]mutation{
	NavigationStarted: func(s *InteractionState, ev Event) {
		s.ClickCount = 1
		s.Released = false
		s.NavigationPosition = ev.Pose.PositionOrZero()
	},
	NavigationUpdated: func(s *InteractionState, ev Event) {
		s.ClickCount = 0
		s.Released = false
		s.NavigationPosition = ev.Pose.PositionOrZero()
	},
	NavigationCompleted: func(s *InteractionState, ev Event) {
		s.ClickCount = 0
		s.Released = true
		s.Cancelled = false
		s.NavigationPosition = ev.Pose.PositionOrZero()
	},
	NavigationCanceled: func(s *InteractionState, ev Event) {
		s.ClickCount = 0
		s.Released = true
		s.Cancelled = true
		s.NavigationPosition = mgl32.Vec3{}
	},
}

var manipulationMutations = map[Kind]mutation{
	ManipulationStarted: func(s *InteractionState, ev Event) {
		pos := ev.Pose.PositionOrZero()
		s.ClickCount = 1
		s.Released = false
		s.ManipulationPosition = pos
		s.ManipulationPrevious = pos
	},
	ManipulationUpdated: func(s *InteractionState, ev Event) {
		s.ClickCount = 0
		s.Released = false
		s.ManipulationPrevious = s.ManipulationPosition
		s.ManipulationPosition = ev.Pose.PositionOrZero()
	},
	ManipulationCompleted: func(s *InteractionState, ev Event) {
		s.ClickCount = 0
		s.Released = true
		s.Cancelled = false
		s.ManipulationPrevious = s.ManipulationPosition
		s.ManipulationPosition = ev.Pose.PositionOrZero()
	},
	ManipulationCanceled: func(s *InteractionState, ev Event) {
		s.ClickCount = 0
		s.Released = true
		s.Cancelled = true
		s.ManipulationPrevious = mgl32.Vec3{}
		s.ManipulationPosition = mgl32.Vec3{}
	},
}

var modeMutations = map[Mode]map[Kind]mutation{
	Navigation:   navigationMutations,
	Manipulation: manipulationMutations,
}

// Reduce applies ev to s as interpreted by mode. It reports whether the event
// changed anything; events belonging to a mode other than mode, and unknown
// kinds, are ignored.
func Reduce(s *InteractionState, mode Mode, ev Event) bool {
	if fn, ok := sharedMutations[ev.Kind]; ok {
		fn(s, ev)
		return true
	}

	table, ok := modeMutations[mode]
	if !ok {
		return false
	}

	fn, ok := table[ev.Kind]
	if !ok {
		return false
	}

	fn(s, ev)
	return true
}
