// Package gioinput turns Gio pointer events into hand gesture events so a
// mouse can stand in for a gesture source.
package gioinput

import (
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jeffwilliams/gesturemgr/internal/debuglog"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/rig"
)

const pointerEventDistanceTolerance = 4 // In pixels
const pointerEventDistanceToleranceSquared = pointerEventDistanceTolerance * pointerEventDistanceTolerance

const consecutiveClickInterval = 250 * time.Millisecond

// Sink accepts the events produced by a Tracker.
type Sink interface {
	Emit(t rig.Target, ev gesture.Event) bool
}

// Tracker follows the primary button. A press and release in place is a tap
// (counting rapid repeats), a drag is a navigation or manipulation gesture in
// the mode current when the drag began, and every press and release is also
// reported on the interaction stream. A mode switch ends the drag in flight:
// the switch already canceled it, so the rest of the press only reports the
// release.
type Tracker struct {
	sink Sink
	mode func() gesture.Mode
	// scale converts pixels of drag to world units.
	scale float32
	logf  debuglog.Logf

	pressed  bool
	dragging bool
	dragMode gesture.Mode
	// abandoned is set when a mode switch ended the drag before release.
	abandoned bool
	pressPos  f32.Point
	lastEvent pointer.Event
	// consecutiveClicks is the number of clicks in place within a small duration
	consecutiveClicks int
}

func NewTracker(sink Sink, mode func() gesture.Mode, scale float32, logf debuglog.Logf) *Tracker {
	if logf == nil {
		logf = debuglog.Discard
	}
	return &Tracker{sink: sink, mode: mode, scale: scale, logf: logf}
}

func (t *Tracker) Dragging() bool {
	return t.dragging
}

func (t *Tracker) Event(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons&pointer.ButtonPrimary == 0 || t.pressed {
			return
		}
		t.press(ev)
	case pointer.Drag:
		if !t.pressed {
			return
		}
		t.drag(ev)
	case pointer.Release:
		if !t.pressed {
			return
		}
		t.release(ev)
	case pointer.Cancel:
		t.cancel()
	default:
		return
	}
	t.lastEvent = ev
}

func (t *Tracker) press(ev pointer.Event) {
	t.updateConsecutiveClicks(ev)
	t.pressed = true
	t.abandoned = false
	t.pressPos = ev.Position
	t.emit(rig.TargetInteraction, gesture.NewBare(gesture.SourcePressed))
}

func (t *Tracker) drag(ev pointer.Event) {
	if t.abandoned || t.abandonOnModeChange() {
		return
	}
	if !t.dragging {
		if pointsAreAlmostSame(&t.pressPos, &ev.Position, pointerEventDistanceToleranceSquared) {
			return
		}
		t.dragging = true
		t.dragMode = t.mode()
		t.emitDrag(gesture.Started(t.dragMode), ev.Position)
		return
	}
	t.emitDrag(gesture.Updated(t.dragMode), ev.Position)
}

func (t *Tracker) release(ev pointer.Event) {
	t.pressed = false
	t.abandonOnModeChange()
	switch {
	case t.abandoned:
		t.abandoned = false
	case t.dragging:
		t.dragging = false
		t.emitDrag(gesture.Completed(t.dragMode), ev.Position)
	default:
		tap := gesture.NewTap(t.consecutiveClicks)
		t.emit(rig.TargetFor(t.mode(), gesture.Tap), tap)
	}
	t.emit(rig.TargetInteraction, gesture.NewBare(gesture.SourceReleased))
}

// cancel abandons the drag in flight. The source is still reported as
// released so the press does not stay held.
func (t *Tracker) cancel() {
	if t.dragging {
		k := gesture.Canceled(t.dragMode)
		t.emit(rig.TargetFor(t.dragMode, k), gesture.NewBare(k))
	}
	if t.pressed {
		t.emit(rig.TargetInteraction, gesture.NewBare(gesture.SourceReleased))
	}
	t.dragging = false
	t.abandoned = false
	t.pressed = false
	t.consecutiveClicks = 0
}

// abandonOnModeChange drops the drag in flight if the mode has changed since
// it started. It reports whether it did.
func (t *Tracker) abandonOnModeChange() bool {
	if !t.dragging || t.mode() == t.dragMode {
		return false
	}
	t.logf(debuglog.LogCatgPointer, "mode changed to %s during a %s drag; dropping the drag\n", t.mode(), t.dragMode)
	t.dragging = false
	t.abandoned = true
	return true
}

func (t *Tracker) emitDrag(k gesture.Kind, pos f32.Point) {
	// Screen y grows downward, world y upward.
	world := mgl32.Vec3{(pos.X - t.pressPos.X) * t.scale, (t.pressPos.Y - pos.Y) * t.scale, 0}
	t.emit(rig.TargetFor(t.dragMode, k), gesture.NewPositioned(k, world))
}

func (t *Tracker) emit(target rig.Target, ev gesture.Event) {
	if !t.sink.Emit(target, ev) {
		t.logf(debuglog.LogCatgPointer, "%v to %s was not accepted\n", ev, target)
	}
}

func (t *Tracker) updateConsecutiveClicks(ev pointer.Event) {
	if t.lastEvent.Kind == pointer.Release &&
		pointsAreAlmostSame(&t.lastEvent.Position, &ev.Position, pointerEventDistanceToleranceSquared) &&
		ev.Time-t.lastEvent.Time < consecutiveClickInterval {

		t.consecutiveClicks++
		return
	}

	t.consecutiveClicks = 1
}

func pointsAreAlmostSame(a, b *f32.Point, tolerance float32) bool {
	d := b.Sub(*a)
	return (d.X*d.X + d.Y*d.Y) < tolerance
}
