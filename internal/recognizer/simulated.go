package recognizer

import (
	"fmt"

	"github.com/jeffwilliams/gesturemgr/internal/gesture"
)

// Simulated is an in-memory Recognizer driven by Emit. It stands in for the
// platform recognizer when gestures come from a script, a remote headset or a
// mouse. It is not safe for concurrent use.
type Simulated struct {
	name      string
	settings  Settings
	capturing bool
	inFlight  bool
	// flightMode is the mode of the gesture in flight.
	flightMode gesture.Mode
	handlers   Handlers
}

func NewSimulated(name string, settings Settings) *Simulated {
	return &Simulated{name: name, settings: settings}
}

func (r *Simulated) Name() string {
	return r.name
}

func (r *Simulated) Settings() Settings {
	return r.settings
}

func (r *Simulated) String() string {
	return fmt.Sprintf("%s[%s]", r.name, r.settings)
}

// Subscribe registers fn for every event the recognizer reports.
func (r *Simulated) Subscribe(fn Handler) (unsubscribe func()) {
	return r.handlers.Add(fn)
}

func (r *Simulated) Subscribers() int {
	return r.handlers.Len()
}

func (r *Simulated) StartCapturing() error {
	if r.capturing {
		return fmt.Errorf("%s: start: %w", r.name, ErrInvalidState)
	}
	r.capturing = true
	return nil
}

func (r *Simulated) StopCapturing() error {
	if !r.capturing {
		return fmt.Errorf("%s: stop: %w", r.name, ErrInvalidState)
	}
	r.capturing = false
	r.inFlight = false
	return nil
}

func (r *Simulated) CancelGestures() error {
	if !r.inFlight {
		return nil
	}
	r.inFlight = false
	r.handlers.Deliver(gesture.NewBare(gesture.Canceled(r.flightMode)))
	return nil
}

func (r *Simulated) IsCapturing() bool {
	return r.capturing
}

// InFlight reports whether a navigation or manipulation gesture has started
// and not yet completed or been canceled.
func (r *Simulated) InFlight() bool {
	return r.inFlight
}

// Emit reports ev to subscribers as if the platform had recognised it. It
// returns false when the recognizer would not have produced the event: it is
// not capturing, ev is not enabled by its settings, or ev continues a gesture
// that never started.
func (r *Simulated) Emit(ev gesture.Event) bool {
	if !r.capturing || !r.settings.Enables(ev.Kind) {
		return false
	}

	if m, ok := ev.Kind.Mode(); ok {
		switch {
		case ev.Kind.IsStart():
			if r.inFlight {
				return false
			}
			r.inFlight = true
			r.flightMode = m
		case !r.inFlight || r.flightMode != m:
			return false
		case ev.Kind.IsTerminal():
			r.inFlight = false
		}
		if ev.Pose.HasPosition {
			ev.Pose.Position = r.settings.Mask(ev.Kind, ev.Pose.Position)
		}
	}

	r.handlers.Deliver(ev)
	return true
}
