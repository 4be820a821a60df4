package gesture

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetButtonState(t *testing.T) {
	tests := []struct {
		name          string
		initial       InteractionState
		expectedCount uint16
	}{
		{
			name:          "released double tap",
			initial:       InteractionState{ClickCount: 2, Released: true, Cancelled: true},
			expectedCount: 0,
		},
		{
			name:          "held press keeps count",
			initial:       InteractionState{ClickCount: 1, Released: false},
			expectedCount: 1,
		},
		{
			name:          "nothing pressed",
			initial:       InteractionState{Released: true},
			expectedCount: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.initial
			s.ResetButtonState()
			assert.Equal(t, tc.expectedCount, s.ClickCount)
			assert.False(t, s.Released)
			assert.False(t, s.Cancelled)
		})
	}
}

func TestAccumulatedDelta(t *testing.T) {
	s := InteractionState{
		NavigationPosition:   mgl32.Vec3{2, 0, 0},
		ManipulationPosition: mgl32.Vec3{1, 1, 1},
		ManipulationPrevious: mgl32.Vec3{0, 0.5, 0},
	}

	assert.Equal(t, mgl32.Vec3{}, s.AccumulatedDelta(Navigation, false))
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, s.AccumulatedDelta(Navigation, true))
	assert.Equal(t, mgl32.Vec3{1, 0.5, 1}, s.AccumulatedDelta(Manipulation, true))
}

func TestManipulationSequenceDelta(t *testing.T) {
	var s InteractionState
	Reduce(&s, Manipulation, NewPositioned(ManipulationStarted, mgl32.Vec3{0, 0, 0}))
	Reduce(&s, Manipulation, NewPositioned(ManipulationUpdated, mgl32.Vec3{1, 1, 1}))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.AccumulatedDelta(Manipulation, true))
}

func TestModeFromId(t *testing.T) {
	m, err := ModeFromId(0)
	require.NoError(t, err)
	assert.Equal(t, Navigation, m)

	m, err = ModeFromId(1)
	require.NoError(t, err)
	assert.Equal(t, Manipulation, m)

	for _, id := range []int{-1, 2, 99} {
		_, err = ModeFromId(id)
		assert.True(t, errors.Is(err, ErrInvalidMode), "id %d", id)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Navigation ")
	require.NoError(t, err)
	assert.Equal(t, Navigation, m)

	var u Mode
	require.NoError(t, u.UnmarshalText([]byte("manipulation")))
	assert.Equal(t, Manipulation, u)

	_, err = ParseMode("rotate")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestParseKind(t *testing.T) {
	for k := Tap; k <= SourceReleased; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("None")
	assert.Error(t, err)
}
