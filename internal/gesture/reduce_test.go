package gesture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	v := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }

	tests := []struct {
		name     string
		mode     Mode
		initial  InteractionState
		event    Event
		applied  bool
		expected InteractionState
	}{
		{
			name:     "tap sets count and releases",
			mode:     Navigation,
			initial:  InteractionState{Cancelled: true},
			event:    NewTap(2),
			applied:  true,
			expected: InteractionState{ClickCount: 2, Released: true, Cancelled: true},
		},
		{
			name:     "navigation started",
			mode:     Navigation,
			initial:  InteractionState{Released: true},
			event:    NewPositioned(NavigationStarted, v(1, 0, 0)),
			applied:  true,
			expected: InteractionState{ClickCount: 1, NavigationPosition: v(1, 0, 0)},
		},
		{
			name:     "navigation updated drops click pulse",
			mode:     Navigation,
			initial:  InteractionState{ClickCount: 1, NavigationPosition: v(1, 0, 0)},
			event:    NewPositioned(NavigationUpdated, v(2, 0, 0)),
			applied:  true,
			expected: InteractionState{NavigationPosition: v(2, 0, 0)},
		},
		{
			name:     "navigation completed",
			mode:     Navigation,
			initial:  InteractionState{Cancelled: true},
			event:    NewPositioned(NavigationCompleted, v(0, 3, 0)),
			applied:  true,
			expected: InteractionState{Released: true, NavigationPosition: v(0, 3, 0)},
		},
		{
			name:     "navigation canceled zeroes accumulator",
			mode:     Navigation,
			initial:  InteractionState{ClickCount: 1, NavigationPosition: v(5, 5, 5)},
			event:    NewBare(NavigationCanceled),
			applied:  true,
			expected: InteractionState{Released: true, Cancelled: true},
		},
		{
			name:     "manipulation started seeds both samples",
			mode:     Manipulation,
			initial:  InteractionState{ManipulationPrevious: v(9, 9, 9)},
			event:    NewPositioned(ManipulationStarted, v(1, 2, 3)),
			applied:  true,
			expected: InteractionState{ClickCount: 1, ManipulationPosition: v(1, 2, 3), ManipulationPrevious: v(1, 2, 3)},
		},
		{
			name:     "manipulation updated shifts samples",
			mode:     Manipulation,
			initial:  InteractionState{ClickCount: 1, ManipulationPosition: v(1, 2, 3), ManipulationPrevious: v(1, 2, 3)},
			event:    NewPositioned(ManipulationUpdated, v(2, 2, 2)),
			applied:  true,
			expected: InteractionState{ManipulationPosition: v(2, 2, 2), ManipulationPrevious: v(1, 2, 3)},
		},
		{
			name:     "manipulation completed",
			mode:     Manipulation,
			initial:  InteractionState{Cancelled: true, ManipulationPosition: v(2, 2, 2)},
			event:    NewPositioned(ManipulationCompleted, v(4, 4, 4)),
			applied:  true,
			expected: InteractionState{Released: true, ManipulationPosition: v(4, 4, 4), ManipulationPrevious: v(2, 2, 2)},
		},
		{
			name:     "manipulation canceled",
			mode:     Manipulation,
			initial:  InteractionState{ClickCount: 1, ManipulationPosition: v(2, 2, 2), ManipulationPrevious: v(1, 1, 1)},
			event:    NewBare(ManipulationCanceled),
			applied:  true,
			expected: InteractionState{Released: true, Cancelled: true},
		},
		{
			name:     "source pressed leaves flags",
			mode:     Manipulation,
			initial:  InteractionState{Released: true, Cancelled: true},
			event:    NewBare(SourcePressed),
			applied:  true,
			expected: InteractionState{ClickCount: 1, Released: true, Cancelled: true},
		},
		{
			name:     "source released keeps click count",
			mode:     Navigation,
			initial:  InteractionState{ClickCount: 1},
			event:    NewBare(SourceReleased),
			applied:  true,
			expected: InteractionState{ClickCount: 1, Released: true},
		},
		{
			name:     "missing pose is origin",
			mode:     Navigation,
			initial:  InteractionState{NavigationPosition: v(7, 7, 7)},
			event:    NewBare(NavigationUpdated),
			applied:  true,
			expected: InteractionState{},
		},
		{
			name:     "navigation event in manipulation mode ignored",
			mode:     Manipulation,
			initial:  InteractionState{Released: true},
			event:    NewPositioned(NavigationStarted, v(1, 0, 0)),
			applied:  false,
			expected: InteractionState{Released: true},
		},
		{
			name:     "manipulation event in navigation mode ignored",
			mode:     Navigation,
			initial:  InteractionState{},
			event:    NewBare(ManipulationCanceled),
			applied:  false,
			expected: InteractionState{},
		},
		{
			name:     "unknown kind ignored",
			mode:     Navigation,
			initial:  InteractionState{ClickCount: 1},
			event:    NewBare(KindNone),
			applied:  false,
			expected: InteractionState{ClickCount: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.initial
			applied := Reduce(&s, tc.mode, tc.event)
			assert.Equal(t, tc.applied, applied)
			assert.Equal(t, tc.expected, s)
		})
	}
}

func TestTapCountIsClamped(t *testing.T) {
	var s InteractionState
	Reduce(&s, Navigation, NewTap(-3))
	assert.Equal(t, uint16(0), s.ClickCount)

	Reduce(&s, Navigation, NewTap(1<<20))
	assert.Equal(t, uint16(65535), s.ClickCount)
}
