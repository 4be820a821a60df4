package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jeffwilliams/gesturemgr/internal/config"
	"github.com/jeffwilliams/gesturemgr/internal/debuglog"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/gioinput"
	"github.com/jeffwilliams/gesturemgr/internal/interaction"
	"github.com/jeffwilliams/gesturemgr/internal/rig"
	"github.com/spf13/pflag"
)

var optMode = pflag.StringP("mode", "m", "", "Start in this mode (navigation or manipulation)")
var optDebugStdout = pflag.BoolP("dbg", "b", false, "Print debug logs to stdout")

// navigationSpeed scales a navigation sample to world units per frame.
const navigationSpeed = 0.05

var optMarker = pflag.StringP("marker-color", "c", "#f4a660", "Color of the marker moved by gestures")

var debugLog *debuglog.DebugLog

func log(category, message string, args ...interface{}) {
	debugLog.Addf(category, message, args...)
}

type pad struct {
	rig     *rig.Rig
	tracker *gioinput.Tracker
	// object is the world position of the marker being moved.
	object mgl32.Vec3
	// flash counts down the frames left showing a cancellation.
	flash  int
	colors palette
}

func newPad(settings config.Settings) (*pad, error) {
	r, err := rig.New(settings, log)
	if err != nil {
		return nil, err
	}
	// Look down -z so world x and screen x agree.
	r.Camera.Target = mgl32.Vec3{0, 0, -1}

	colors, err := newPalette(*optMarker)
	if err != nil {
		r.Close()
		return nil, err
	}

	p := &pad{rig: r, object: r.Camera.WorldScreenCenter(), colors: colors}
	p.tracker = gioinput.NewTracker(r, r.Manager.Mode, float32(settings.Pointer.DragScale), log)
	return p, nil
}

func (p *pad) layout(gtx layout.Context) {
	p.rig.Camera.Resize(gtx.Constraints.Max.X, gtx.Constraints.Max.Y)
	p.handleEvents(gtx)

	f := p.rig.Frame()
	p.advance(f)
	p.draw(gtx, f)
	p.listenForEvents(gtx)

	if f.Capturing && (f.Pressed || !f.Released) || p.flash > 0 {
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (p *pad) handleEvents(gtx layout.Context) {
	for {
		e, ok := gtx.Event(pointer.Filter{Target: p, Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel})
		if !ok {
			break
		}

		pe, ok := e.(pointer.Event)
		if !ok {
			log(debuglog.LogCatgPointer, "pad filtered for pointer.Event, but got a %T instead\n", e)
			continue
		}
		p.tracker.Event(pe)
	}

	for {
		e, ok := gtx.Event(key.Filter{Name: "N"}, key.Filter{Name: "M"})
		if !ok {
			break
		}
		ke, ok := e.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}

		mode := gesture.Navigation
		if ke.Name == "M" {
			mode = gesture.Manipulation
		}
		if err := p.rig.SetMode(mode); err != nil {
			log(debuglog.LogCatgApp, "switching to %s mode failed: %v\n", mode, err)
		}
	}
}

// advance moves the marker by the frame's motion. Manipulation deltas are
// applied directly; a navigation sample is a rate.
func (p *pad) advance(f interaction.Frame) {
	if f.Cancelled {
		p.flash = 10
	} else if p.flash > 0 {
		p.flash--
	}

	if !f.Capturing {
		return
	}
	if f.Mode == gesture.Navigation {
		p.object = p.object.Add(f.WorldDelta.Mul(navigationSpeed))
		return
	}
	p.object = p.object.Add(f.WorldDelta)
}

func (p *pad) draw(gtx layout.Context, f interaction.Frame) {
	var bg color.NRGBA
	switch {
	case p.flash > 0:
		bg = p.colors.cancelled
	case f.Mode == gesture.Navigation:
		bg = p.colors.navigation
	default:
		bg = p.colors.manipulation
	}
	fill(gtx, image.Rectangle{Max: gtx.Constraints.Max}, bg)

	s := p.rig.Camera.WorldToScreenPoint(p.object)
	// Projection has its origin at the bottom left.
	x, y := int(s[0]), gtx.Constraints.Max.Y-int(s[1])
	half := gtx.Dp(unit.Dp(12))
	c := p.colors.marker
	if f.Pressed || p.tracker.Dragging() {
		c = p.colors.pressed
	}
	fill(gtx, image.Rect(x-half, y-half, x+half, y+half), c)
}

func fill(gtx layout.Context, r image.Rectangle, c color.NRGBA) {
	st := clip.Rect(r).Push(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	st.Pop()
}

func (p *pad) listenForEvents(gtx layout.Context) {
	r := image.Rectangle{Max: gtx.Constraints.Max}
	st := clip.Rect(r).Push(gtx.Ops)
	event.Op(gtx.Ops, p)
	st.Pop()
}

func loop(w *app.Window, p *pad) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			p.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func main() {
	pflag.Parse()

	settings := config.Defaults()
	err := config.LoadSettingsFromConfigFile(&settings)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Loading settings from %s failed: %v\n", config.SettingsConfigFile(), err)
		os.Exit(1)
	}
	if err != nil {
		settings = config.Defaults()
	}
	if *optMode != "" {
		settings.Gesture.Mode = *optMode
	}

	debugLog = debuglog.New(settings.Log.Size)
	if *optDebugStdout {
		debugLog.Echo = os.Stdout
	}

	p, err := newPad(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	go func() {
		var w app.Window
		w.Option(app.Title("gesturepad"), app.Size(unit.Dp(float32(settings.Viewport.Width)), unit.Dp(float32(settings.Viewport.Height))))
		err := loop(&w, p)
		p.rig.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

func init() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Printf("Drive the hand gesture input module with the mouse. Drag to gesture, click to tap,\n")
		fmt.Printf("press N for navigation mode and M for manipulation mode.\n\n")
		fmt.Printf("Options:\n")

		pflag.PrintDefaults()
	}
}
