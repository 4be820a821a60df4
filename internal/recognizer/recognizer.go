// Package recognizer manages gesture capture sessions and hands capture from
// one session to another.
package recognizer

import (
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
)

// ErrInvalidState is returned by a recognizer asked to do something its
// current state does not allow, such as stopping while already stopped.
// Callers treat it as a no-op.
var ErrInvalidState = errors.New("recognizer is in an invalid state for this operation")

// Recognizer is one gesture capture session.
type Recognizer interface {
	StartCapturing() error
	StopCapturing() error
	// CancelGestures abandons any gesture in flight. The recognizer reports the
	// cancellation through its canceled callback before returning.
	CancelGestures() error
	IsCapturing() bool
}

// Handler receives the gesture callbacks of a recognizer.
type Handler func(ev gesture.Event)

// Settings is the set of gestures a recognizer reports.
type Settings uint32

const (
	SettingTap Settings = 1 << iota
	SettingDoubleTap
	SettingNavigationX
	SettingNavigationY
	SettingNavigationZ
	SettingManipulationTranslate
)

const (
	NavigationSettings   = SettingTap | SettingDoubleTap | SettingNavigationX | SettingNavigationY | SettingNavigationZ
	ManipulationSettings = SettingTap | SettingDoubleTap | SettingManipulationTranslate
)

// SettingsFor returns the gestures recognised by the session backing mode.
func SettingsFor(m gesture.Mode) Settings {
	if m == gesture.Navigation {
		return NavigationSettings
	}
	return ManipulationSettings
}

// Enables reports whether a recognizer with these settings delivers events of
// kind k. Interaction source press/release are not recognizer events.
func (s Settings) Enables(k gesture.Kind) bool {
	switch k {
	case gesture.Tap:
		return s&(SettingTap|SettingDoubleTap) != 0
	case gesture.NavigationStarted, gesture.NavigationUpdated, gesture.NavigationCompleted, gesture.NavigationCanceled:
		return s&(SettingNavigationX|SettingNavigationY|SettingNavigationZ) != 0
	case gesture.ManipulationStarted, gesture.ManipulationUpdated, gesture.ManipulationCompleted, gesture.ManipulationCanceled:
		return s&SettingManipulationTranslate != 0
	}
	return false
}

// Mask zeroes the axes of pos the settings do not recognise. Only navigation
// is axis-selective.
func (s Settings) Mask(k gesture.Kind, pos mgl32.Vec3) mgl32.Vec3 {
	if m, ok := k.Mode(); !ok || m != gesture.Navigation {
		return pos
	}
	axes := []Settings{SettingNavigationX, SettingNavigationY, SettingNavigationZ}
	for i, a := range axes {
		if s&a == 0 {
			pos[i] = 0
		}
	}
	return pos
}

var settingNames = []struct {
	s    Settings
	name string
}{
	{SettingTap, "Tap"},
	{SettingDoubleTap, "DoubleTap"},
	{SettingNavigationX, "NavigationX"},
	{SettingNavigationY, "NavigationY"},
	{SettingNavigationZ, "NavigationZ"},
	{SettingManipulationTranslate, "ManipulationTranslate"},
}

func (s Settings) String() string {
	var parts []string
	for _, n := range settingNames {
		if s&n.s != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}
