// Package rig wires simulated recognizers, the interaction stream and a
// Manager together so gestures can be fed from scripts, the network or a
// mouse.
package rig

import (
	"fmt"
	"strings"

	"github.com/jeffwilliams/gesturemgr/internal/config"
	"github.com/jeffwilliams/gesturemgr/internal/debuglog"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/interaction"
	"github.com/jeffwilliams/gesturemgr/internal/recognizer"
	"github.com/jeffwilliams/gesturemgr/internal/viewport"
)

// Target names where an event originates.
type Target int

const (
	TargetNavigation Target = iota
	TargetManipulation
	TargetInteraction
)

var targetNames = []string{
	TargetNavigation:   "navigation",
	TargetManipulation: "manipulation",
	TargetInteraction:  "interaction",
}

func (t Target) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return fmt.Sprintf("Target(%d)", int(t))
	}
	return targetNames[t]
}

func ParseTarget(s string) (Target, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range targetNames {
		if n == s {
			return Target(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event target %q", s)
}

// TargetFor returns the target that naturally produces events of kind k in
// mode.
func TargetFor(mode gesture.Mode, k gesture.Kind) Target {
	if k == gesture.SourcePressed || k == gesture.SourceReleased {
		return TargetInteraction
	}
	if m, ok := k.Mode(); ok {
		mode = m
	}
	if mode == gesture.Navigation {
		return TargetNavigation
	}
	return TargetManipulation
}

type Rig struct {
	Navigation   *recognizer.Simulated
	Manipulation *recognizer.Simulated
	Stream       *interaction.Stream
	Manager      *interaction.Manager
	Camera       *viewport.Camera
	logf         debuglog.Logf
}

// New builds a rig from settings. The manager is enabled in the configured
// mode.
func New(settings config.Settings, logf debuglog.Logf) (*Rig, error) {
	if logf == nil {
		logf = debuglog.Discard
	}

	mode, err := settings.GestureMode()
	if err != nil {
		return nil, err
	}
	navSettings, err := settings.NavigationRecognizerSettings()
	if err != nil {
		return nil, err
	}

	r := &Rig{
		Navigation:   recognizer.NewSimulated("navigation", navSettings),
		Manipulation: recognizer.NewSimulated("manipulation", recognizer.ManipulationSettings),
		Stream:       interaction.NewStream(),
		Camera:       settings.Camera(),
		logf:         logf,
	}

	r.Manager, err = interaction.New(r.Navigation, r.Manipulation, r.Stream, interaction.Options{
		Mode:      mode,
		Projector: viewport.DeltaProjector{Camera: r.Camera},
		Centers:   r.Camera,
		Logf:      logf,
	})
	if err != nil {
		return nil, err
	}

	for _, s := range []*recognizer.Simulated{r.Navigation, r.Manipulation} {
		logf(debuglog.LogCatgRecognizer, "%s recognizer reports %s\n", s.Name(), s.Settings())
	}

	if err = r.Manager.Enable(); err != nil {
		return nil, err
	}
	return r, nil
}

// Emit injects ev as if t had produced it. It reports whether the source
// accepted the event.
func (r *Rig) Emit(t Target, ev gesture.Event) bool {
	var ok bool
	switch t {
	case TargetNavigation:
		ok = r.Navigation.Emit(ev)
	case TargetManipulation:
		ok = r.Manipulation.Emit(ev)
	case TargetInteraction:
		ok = r.Stream.Publish(ev)
	}
	if !ok {
		r.logf(debuglog.LogCatgGesture, "%s did not produce %v\n", t, ev)
	}
	return ok
}

func (r *Rig) SetMode(m gesture.Mode) error {
	return r.Manager.SetMode(m)
}

// Frame runs one host frame: update the manager, then poll it.
func (r *Rig) Frame() interaction.Frame {
	r.Manager.Update()
	return interaction.Poll(r.Manager)
}

func (r *Rig) Close() error {
	return r.Manager.Close()
}
