package gesture

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies a gesture callback.
type Kind int

const (
	KindNone Kind = iota
	Tap
	NavigationStarted
	NavigationUpdated
	NavigationCompleted
	NavigationCanceled
	ManipulationStarted
	ManipulationUpdated
	ManipulationCompleted
	ManipulationCanceled
	SourcePressed
	SourceReleased
)

var kindNames = []string{
	KindNone:              "None",
	Tap:                   "Tap",
	NavigationStarted:     "NavigationStarted",
	NavigationUpdated:     "NavigationUpdated",
	NavigationCompleted:   "NavigationCompleted",
	NavigationCanceled:    "NavigationCanceled",
	ManipulationStarted:   "ManipulationStarted",
	ManipulationUpdated:   "ManipulationUpdated",
	ManipulationCompleted: "ManipulationCompleted",
	ManipulationCanceled:  "ManipulationCanceled",
	SourcePressed:         "SourcePressed",
	SourceReleased:        "SourceReleased",
}

func (k Kind) String() string {
	if k < KindNone || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if i != int(KindNone) && n == s {
			return Kind(i), nil
		}
	}
	return KindNone, fmt.Errorf("unknown gesture event kind %q", s)
}

// Mode reports which interpretation mode the kind belongs to. Taps and the
// interaction source press/release are shared by both modes and return false.
func (k Kind) Mode() (m Mode, ok bool) {
	switch k {
	case NavigationStarted, NavigationUpdated, NavigationCompleted, NavigationCanceled:
		return Navigation, true
	case ManipulationStarted, ManipulationUpdated, ManipulationCompleted, ManipulationCanceled:
		return Manipulation, true
	}
	return 0, false
}

func (k Kind) IsStart() bool {
	return k == NavigationStarted || k == ManipulationStarted
}

// IsTerminal is true for the kinds that end an in-flight gesture.
func (k Kind) IsTerminal() bool {
	switch k {
	case NavigationCompleted, NavigationCanceled, ManipulationCompleted, ManipulationCanceled:
		return true
	}
	return false
}

// Started, Updated, Completed and Canceled return the mode's kind for each
// gesture phase.
func Started(m Mode) Kind {
	if m == Navigation {
		return NavigationStarted
	}
	return ManipulationStarted
}

func Updated(m Mode) Kind {
	if m == Navigation {
		return NavigationUpdated
	}
	return ManipulationUpdated
}

func Completed(m Mode) Kind {
	if m == Navigation {
		return NavigationCompleted
	}
	return ManipulationCompleted
}

func Canceled(m Mode) Kind {
	if m == Navigation {
		return NavigationCanceled
	}
	return ManipulationCanceled
}

// Pose is the spatial sample attached to a gesture callback. The position is
// optional.
type Pose struct {
	Position    mgl32.Vec3
	HasPosition bool
}

func At(pos mgl32.Vec3) Pose {
	return Pose{Position: pos, HasPosition: true}
}

func (p Pose) TryGetPosition() (pos mgl32.Vec3, ok bool) {
	if !p.HasPosition {
		return mgl32.Vec3{}, false
	}
	return p.Position, true
}

// PositionOrZero treats a missing position as the origin.
func (p Pose) PositionOrZero() mgl32.Vec3 {
	pos, _ := p.TryGetPosition()
	return pos
}

type Event struct {
	Kind     Kind
	TapCount int
	Pose     Pose
}

func (e Event) String() string {
	switch {
	case e.Kind == Tap:
		return fmt.Sprintf("Tap(%d)", e.TapCount)
	case e.Pose.HasPosition:
		p := e.Pose.Position
		return fmt.Sprintf("%s(%g,%g,%g)", e.Kind, p[0], p[1], p[2])
	}
	return e.Kind.String()
}

func NewTap(tapCount int) Event {
	return Event{Kind: Tap, TapCount: tapCount}
}

// NewPositioned builds an event of kind k carrying pos.
func NewPositioned(k Kind, pos mgl32.Vec3) Event {
	return Event{Kind: k, Pose: At(pos)}
}

func NewBare(k Kind) Event {
	return Event{Kind: k}
}

func clampTapCount(n int) uint16 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(n)
}
