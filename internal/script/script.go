// Package script replays gesture scripts stored as CSV and records the
// frames a host would observe.
package script

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/interaction"
	"github.com/jeffwilliams/gesturemgr/internal/rig"
	"github.com/jszwec/csvutil"
)

// TargetMode marks a step that changes the mode instead of emitting an event.
const TargetMode = "mode"

// Step is one row of a script. Events in the same frame are applied in file
// order before the frame is polled.
type Step struct {
	Frame    int     `csv:"frame"`
	Target   string  `csv:"target"`
	Kind     string  `csv:"kind,omitempty"`
	TapCount int     `csv:"tap_count,omitempty"`
	X        float32 `csv:"x,omitempty"`
	Y        float32 `csv:"y,omitempty"`
	Z        float32 `csv:"z,omitempty"`
	HasPose  bool    `csv:"has_pose,omitempty"`
	Mode     string  `csv:"mode,omitempty"`
}

func (s Step) IsMode() bool {
	return s.Target == TargetMode
}

func (s Step) GestureMode() (gesture.Mode, error) {
	return gesture.ParseMode(s.Mode)
}

func (s Step) Event() (t rig.Target, ev gesture.Event, err error) {
	t, err = rig.ParseTarget(s.Target)
	if err != nil {
		return
	}
	ev.Kind, err = gesture.ParseKind(s.Kind)
	if err != nil {
		return
	}
	ev.TapCount = s.TapCount
	if s.HasPose {
		ev.Pose = gesture.At(mgl32.Vec3{s.X, s.Y, s.Z})
	}
	return
}

func (s Step) validate() error {
	if s.Frame < 0 {
		return fmt.Errorf("negative frame %d", s.Frame)
	}
	if s.IsMode() {
		_, err := s.GestureMode()
		return err
	}
	_, _, err := s.Event()
	return err
}

// Read decodes and validates every step in r.
func Read(r io.Reader) ([]Step, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read script header: %w", err)
	}

	var steps []Step
	for line := 2; ; line++ {
		var s Step
		err := dec.Decode(&s)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", line, err)
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("script line %d: %w", line, err)
		}
		steps = append(steps, s)
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Frame < steps[j].Frame
	})
	return steps, nil
}

// FrameFunc observes the frame polled after applying frame's steps.
type FrameFunc func(frame int, f interaction.Frame) error

// Play applies steps to r frame by frame, polling after every frame from 0
// through the last scripted frame plus trailing extra frames.
func Play(r *rig.Rig, steps []Step, trailing int, fn FrameFunc) error {
	last := -1
	if len(steps) > 0 {
		last = steps[len(steps)-1].Frame
	}

	i := 0
	for frame := 0; frame <= last+trailing; frame++ {
		for ; i < len(steps) && steps[i].Frame == frame; i++ {
			if err := apply(r, steps[i]); err != nil {
				return fmt.Errorf("frame %d: %w", frame, err)
			}
		}
		if err := fn(frame, r.Frame()); err != nil {
			return err
		}
	}
	return nil
}

func apply(r *rig.Rig, s Step) error {
	if s.IsMode() {
		mode, err := s.GestureMode()
		if err != nil {
			return err
		}
		return r.SetMode(mode)
	}

	t, ev, err := s.Event()
	if err != nil {
		return err
	}
	r.Emit(t, ev)
	return nil
}
