package interaction

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/recognizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scaleProjector struct{}

func (scaleProjector) WorldToScreenPoint(p mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{p[0] * 10, p[1] * 10}
}

type fixedCenters struct{}

func (fixedCenters) ScreenCenter() mgl32.Vec2 {
	return mgl32.Vec2{400, 300}
}

func (fixedCenters) WorldScreenCenter() mgl32.Vec3 {
	return mgl32.Vec3{0, 0, 2}
}

// fakeSession records lifecycle calls and can deliver events whether or not
// it is capturing.
type fakeSession struct {
	name      string
	capturing bool
	journal   *[]string
	handlers  recognizer.Handlers
	inFlight  gesture.Kind
}

func (s *fakeSession) StartCapturing() error {
	*s.journal = append(*s.journal, "start "+s.name)
	s.capturing = true
	return nil
}

func (s *fakeSession) StopCapturing() error {
	*s.journal = append(*s.journal, "stop "+s.name)
	if !s.capturing {
		return recognizer.ErrInvalidState
	}
	s.capturing = false
	return nil
}

func (s *fakeSession) CancelGestures() error {
	*s.journal = append(*s.journal, "cancel "+s.name)
	if s.inFlight != gesture.KindNone {
		s.handlers.Deliver(gesture.NewBare(s.inFlight))
		s.inFlight = gesture.KindNone
	}
	return nil
}

func (s *fakeSession) IsCapturing() bool {
	return s.capturing
}

func (s *fakeSession) Subscribe(fn recognizer.Handler) func() {
	return s.handlers.Add(fn)
}

func (s *fakeSession) fire(ev gesture.Event) {
	s.handlers.Deliver(ev)
}

func newSimulatedManager(t *testing.T, mode gesture.Mode) (*Manager, *recognizer.Simulated, *recognizer.Simulated, *Stream) {
	nav := recognizer.NewSimulated("navigation", recognizer.NavigationSettings)
	manip := recognizer.NewSimulated("manipulation", recognizer.ManipulationSettings)
	stream := NewStream()
	m, err := New(nav, manip, stream, Options{Mode: mode, Projector: scaleProjector{}, Centers: fixedCenters{}})
	require.NoError(t, err)
	return m, nav, manip, stream
}

func newFakeManager(t *testing.T, mode gesture.Mode) (*Manager, *fakeSession, *fakeSession, *[]string) {
	var journal []string
	nav := &fakeSession{name: "navigation", journal: &journal}
	manip := &fakeSession{name: "manipulation", journal: &journal}
	m, err := New(nav, manip, nil, Options{Mode: mode, Projector: scaleProjector{}, Centers: fixedCenters{}})
	require.NoError(t, err)
	return m, nav, manip, &journal
}

func TestNavigationScenario(t *testing.T) {
	m, nav, _, _ := newSimulatedManager(t, gesture.Navigation)
	assert.False(t, m.IsCapturing())
	assert.False(t, m.IsSupported())

	require.NoError(t, m.SetMode(gesture.Navigation))
	assert.True(t, m.IsCapturing())
	assert.True(t, m.IsSupported())
	assert.True(t, nav.IsCapturing())

	nav.Emit(gesture.NewPositioned(gesture.NavigationStarted, mgl32.Vec3{1, 0, 0}))
	assert.Equal(t, uint16(1), m.State().ClickCount)
	assert.False(t, m.IsReleased(ButtonLeft))

	nav.Emit(gesture.NewPositioned(gesture.NavigationUpdated, mgl32.Vec3{2, 0, 0}))
	assert.Equal(t, uint16(0), m.State().ClickCount)

	m.Update()
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, m.WorldDelta())
	assert.Equal(t, mgl32.Vec2{20, 0}, m.ScreenDelta())
	assert.Equal(t, mgl32.Vec2{400, 300}, m.ScreenPosition())
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, m.WorldPosition())
}

func TestManipulationDelta(t *testing.T) {
	m, _, manip, _ := newSimulatedManager(t, gesture.Manipulation)
	require.NoError(t, m.Enable())

	manip.Emit(gesture.NewPositioned(gesture.ManipulationStarted, mgl32.Vec3{0, 0, 0}))
	manip.Emit(gesture.NewPositioned(gesture.ManipulationUpdated, mgl32.Vec3{1, 1, 1}))

	m.Update()
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.WorldDelta())
	assert.Equal(t, mgl32.Vec2{10, 10}, m.ScreenDelta())
}

func TestDeltaIsZeroWhenNotCapturing(t *testing.T) {
	m, _, manip, _ := newSimulatedManager(t, gesture.Manipulation)
	require.NoError(t, m.Enable())
	manip.Emit(gesture.NewPositioned(gesture.ManipulationStarted, mgl32.Vec3{0, 0, 0}))
	manip.Emit(gesture.NewPositioned(gesture.ManipulationUpdated, mgl32.Vec3{1, 1, 1}))

	require.NoError(t, m.Disable())
	m.Update()
	assert.Equal(t, mgl32.Vec3{}, m.WorldDelta())
}

func TestModeSwitchCancelsUnresolvedGesture(t *testing.T) {
	m, nav, manip, journal := newFakeManager(t, gesture.Navigation)
	require.NoError(t, m.Enable())

	nav.fire(gesture.NewPositioned(gesture.NavigationStarted, mgl32.Vec3{1, 0, 0}))
	nav.inFlight = gesture.NavigationCanceled
	require.False(t, m.IsReleased(ButtonLeft))

	require.NoError(t, m.SetMode(gesture.Manipulation))

	assert.Equal(t, []string{"start navigation", "cancel navigation", "stop navigation", "start manipulation"}, *journal)
	assert.Equal(t, gesture.Manipulation, m.Mode())
	assert.True(t, manip.IsCapturing())
	assert.False(t, nav.IsCapturing())

	s := m.State()
	assert.True(t, s.Cancelled)
	assert.True(t, s.Released)
	assert.Equal(t, mgl32.Vec3{}, s.NavigationPosition)
}

func TestRedundantSetModeIsNoop(t *testing.T) {
	m, nav, _, journal := newFakeManager(t, gesture.Manipulation)
	require.NoError(t, m.SetMode(gesture.Navigation))
	nav.fire(gesture.NewTap(1))
	before := m.State()

	require.NoError(t, m.SetMode(gesture.Navigation))
	require.NoError(t, m.SetModeId(0))

	assert.Equal(t, []string{"start navigation"}, *journal)
	assert.Equal(t, before, m.State())
}

func TestSetModeIdRejectsUnknownIds(t *testing.T) {
	m, _, _, journal := newFakeManager(t, gesture.Navigation)
	require.NoError(t, m.Enable())

	for _, id := range []int{-1, 2, 42} {
		err := m.SetModeId(id)
		assert.ErrorIs(t, err, gesture.ErrInvalidMode)
	}
	assert.Equal(t, gesture.Navigation, m.Mode())
	assert.Equal(t, []string{"start navigation"}, *journal)

	require.NoError(t, m.SetModeId(1))
	assert.Equal(t, gesture.Manipulation, m.Mode())
}

func TestEventsFromInactiveSessionAreIgnored(t *testing.T) {
	m, nav, manip, _ := newFakeManager(t, gesture.Navigation)
	require.NoError(t, m.Enable())

	manip.fire(gesture.NewPositioned(gesture.ManipulationStarted, mgl32.Vec3{3, 3, 3}))
	manip.fire(gesture.NewTap(2))
	assert.Equal(t, gesture.InteractionState{}, m.State())

	nav.fire(gesture.NewTap(2))
	assert.Equal(t, uint16(2), m.State().ClickCount)
}

func TestSourceEventsAreModeIndependent(t *testing.T) {
	m, _, _, stream := newSimulatedManager(t, gesture.Manipulation)

	assert.True(t, stream.Publish(gesture.NewBare(gesture.SourcePressed)))
	assert.True(t, m.IsPressed(ButtonRight))
	assert.False(t, m.ShouldActivate(), "not capturing")

	assert.True(t, stream.Publish(gesture.NewBare(gesture.SourceReleased)))
	assert.True(t, m.IsReleased(ButtonMiddle))

	assert.False(t, stream.Publish(gesture.NewTap(1)))
}

func TestShouldActivate(t *testing.T) {
	tests := []struct {
		name      string
		capturing bool
		events    []gesture.Event
		expected  bool
	}{
		{
			name:      "not capturing",
			capturing: false,
			events:    []gesture.Event{gesture.NewTap(1)},
			expected:  false,
		},
		{
			name:      "capturing nothing pressed but unreleased",
			capturing: true,
			expected:  true,
		},
		{
			name:      "capturing released without click",
			capturing: true,
			events:    []gesture.Event{gesture.NewBare(gesture.SourceReleased)},
			expected:  false,
		},
		{
			name:      "capturing tapped",
			capturing: true,
			events:    []gesture.Event{gesture.NewTap(1)},
			expected:  true,
		},
		{
			name:      "capturing canceled",
			capturing: true,
			events: []gesture.Event{
				gesture.NewPositioned(gesture.NavigationStarted, mgl32.Vec3{}),
				gesture.NewBare(gesture.NavigationCanceled),
			},
			expected: true,
		},
		{
			name:      "capturing completed",
			capturing: true,
			events: []gesture.Event{
				gesture.NewPositioned(gesture.NavigationStarted, mgl32.Vec3{}),
				gesture.NewPositioned(gesture.NavigationCompleted, mgl32.Vec3{}),
			},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, nav, _, _ := newFakeManager(t, gesture.Navigation)
			if tc.capturing {
				require.NoError(t, m.Enable())
			}
			for _, ev := range tc.events {
				nav.fire(ev)
			}
			if !tc.capturing {
				// Events only reach the state through the active session, so
				// feed them directly to check that the flags alone do not
				// activate the module.
				for _, ev := range tc.events {
					gesture.Reduce(&m.state, m.mode, ev)
				}
			}
			assert.Equal(t, tc.expected, m.ShouldActivate())
		})
	}
}

func TestReservedQueries(t *testing.T) {
	m, _, _, _ := newSimulatedManager(t, gesture.Navigation)
	assert.False(t, m.ShouldSubmit())
	ok, v := m.ShouldMove()
	assert.False(t, ok)
	assert.Equal(t, mgl32.Vec2{}, v)
}

func TestPollConsumesClickPulse(t *testing.T) {
	m, nav, _, _ := newSimulatedManager(t, gesture.Navigation)
	require.NoError(t, m.Enable())

	nav.Emit(gesture.NewTap(2))
	m.Update()
	f := Poll(m)
	assert.True(t, f.Pressed)
	assert.True(t, f.Released)
	assert.True(t, f.ShouldActivate)
	assert.Equal(t, gesture.Navigation, f.Mode)

	m.Update()
	f = Poll(m)
	assert.False(t, f.Pressed)
	assert.False(t, f.Released)
	assert.Equal(t, uint16(0), m.State().ClickCount)
}

func TestCloseReleasesSubscriptions(t *testing.T) {
	m, nav, manip, stream := newSimulatedManager(t, gesture.Navigation)
	require.NoError(t, m.Enable())
	assert.Equal(t, 1, nav.Subscribers())
	assert.Equal(t, 1, manip.Subscribers())
	assert.Equal(t, 1, stream.Subscribers())

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Equal(t, 0, nav.Subscribers())
	assert.Equal(t, 0, manip.Subscribers())
	assert.Equal(t, 0, stream.Subscribers())
	assert.False(t, nav.IsCapturing())
	assert.ErrorIs(t, m.SetMode(gesture.Manipulation), ErrClosed)
}

func TestNewValidatesOptions(t *testing.T) {
	nav := recognizer.NewSimulated("n", recognizer.NavigationSettings)
	manip := recognizer.NewSimulated("m", recognizer.ManipulationSettings)

	_, err := New(nav, manip, nil, Options{Mode: gesture.Mode(7), Projector: scaleProjector{}, Centers: fixedCenters{}})
	assert.ErrorIs(t, err, gesture.ErrInvalidMode)

	_, err = New(nav, manip, nil, Options{})
	assert.Error(t, err)

	_, err = New(nil, manip, nil, Options{Projector: scaleProjector{}, Centers: fixedCenters{}})
	assert.Error(t, err)
}
