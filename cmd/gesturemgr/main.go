package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jeffwilliams/gesturemgr/internal/config"
	"github.com/jeffwilliams/gesturemgr/internal/debuglog"
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/interaction"
	"github.com/jeffwilliams/gesturemgr/internal/rig"
	"github.com/jeffwilliams/gesturemgr/internal/script"
	"github.com/jeffwilliams/gesturemgr/internal/wire"
	"github.com/ogier/pflag"
	"github.com/pkg/profile"
)

var optScript = pflag.StringP("script", "s", "", "Replay the gesture script in this CSV file and print the polled frames")
var optOut = pflag.StringP("out", "o", "", "Write the polled frames to this file instead of stdout")
var optTrailing = pflag.IntP("trailing", "t", 1, "Number of extra frames to poll after the last scripted frame")
var optListen = pflag.StringP("listen", "l", "", "Accept gesture messages over a websocket on this address. Overrides the server.listen setting")
var optMode = pflag.StringP("mode", "m", "", "Start in this mode (navigation or manipulation). Overrides the gesture.mode setting")
var optSettings = pflag.StringP("settings", "c", "", "Load settings from this file instead of the default settings file")
var optSampleSettings = pflag.BoolP("sample-settings", "g", false, "Print a sample settings file and exit")
var optDebugStdout = pflag.BoolP("dbg", "b", false, "Print debug logs to stdout")
var optProfile = pflag.BoolP("profile", "p", false, "Profile the code CPU usage. The profile file location is printed to stdout.")

var debugLog *debuglog.DebugLog
var profiler interface{ Stop() }

func main() {
	pflag.Parse()

	if *optSampleSettings {
		fmt.Print(config.GenerateSampleSettings())
		return
	}

	if *optProfile {
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	}

	settings := loadSettings()
	debugLog = debuglog.New(settings.Log.Size)
	for _, c := range settings.Log.Disabled {
		debugLog.Disable(c)
	}
	if *optDebugStdout {
		debugLog.Echo = os.Stdout
	}

	if *optMode != "" {
		settings.Gesture.Mode = *optMode
	}
	if *optListen != "" {
		settings.Server.Listen = *optListen
	}

	var err error
	if *optScript != "" {
		err = replay(settings, *optScript, *optOut)
	} else {
		err = serve(settings)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if *optDebugStdout {
			fmt.Fprintf(os.Stderr, "Recent log:\n%s", debugLog)
		}
		Exit(1)
	}
	Exit(0)
}

func loadSettings() config.Settings {
	settings := config.Defaults()
	path := *optSettings
	if path == "" {
		path = config.SettingsConfigFile()
	}

	err := config.LoadSettingsFromFile(path, &settings)
	if err != nil {
		if *optSettings != "" || !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Loading settings from %s failed: %v\n", path, err)
			Exit(1)
		}
		return config.Defaults()
	}
	return settings
}

func log(category, message string, args ...interface{}) {
	debugLog.Addf(category, message, args...)
}

func replay(settings config.Settings, scriptPath, outPath string) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return err
	}
	defer f.Close()

	steps, err := script.Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", scriptPath, err)
	}
	log(debuglog.LogCatgScript, "read %d steps from %s\n", len(steps), scriptPath)

	var out io.Writer = os.Stdout
	if outPath != "" {
		of, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer of.Close()
		out = of
	}

	r, err := rig.New(settings, log)
	if err != nil {
		return err
	}
	defer r.Close()

	rec := script.NewRecorder(out)
	err = script.Play(r, steps, *optTrailing, rec.Write)
	if err != nil {
		return err
	}
	return rec.Flush()
}

// serve accepts gesture messages over a websocket and runs the frame loop.
// Messages are applied on the frame loop goroutine, between frames.
func serve(settings config.Settings) error {
	r, err := rig.New(settings, log)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	queue := interaction.NewQueue(settings.Server.QueueSize)
	srv := wire.NewServer(func(m wire.Message) error {
		return applyMessage(ctx, queue, r, m)
	}, wire.ServerOptions{MaxMessage: int64(settings.Server.MaxMessage), Logf: log})

	httpServer := &http.Server{Addr: settings.Server.Listen, Handler: srv}
	errs := make(chan error, 1)
	go func() {
		errs <- httpServer.ListenAndServe()
	}()
	fmt.Printf("Listening for gesture messages on ws://%s/\n", settings.Server.Listen)

	ticker := time.NewTicker(time.Second / time.Duration(settings.Server.FrameRate))
	defer ticker.Stop()

	var last interaction.Frame
	frame := 0
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		case err := <-errs:
			return err
		case <-ticker.C:
			queue.Drain()
			f := r.Frame()
			if f != last {
				log(debuglog.LogCatgApp, "frame %d: %s\n", frame, describeFrame(f))
				last = f
			}
			frame++
		}
	}
}

// applyMessage runs m on the frame loop and waits for the outcome so the
// client gets a reply for rejected messages.
func applyMessage(ctx context.Context, queue *interaction.Queue, r *rig.Rig, m wire.Message) error {
	result := make(chan error, 1)
	work := func() {
		if m.Type == wire.MessageMode {
			mode, err := m.GestureMode()
			if err == nil {
				err = r.SetMode(mode)
			}
			result <- err
			return
		}

		t, ev, err := m.Event()
		if err == nil && !r.Emit(t, ev) {
			err = fmt.Errorf("%s did not accept %v", t, ev)
		}
		result <- err
	}

	if err := queue.Post(ctx, work); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func describeFrame(f interaction.Frame) string {
	var mode string
	if f.Mode == gesture.Navigation {
		mode = "nav"
	} else {
		mode = "manip"
	}
	return fmt.Sprintf("%s capturing=%v pressed=%v released=%v cancelled=%v activate=%v world=%v screen=%v",
		mode, f.Capturing, f.Pressed, f.Released, f.Cancelled, f.ShouldActivate, f.WorldDelta, f.ScreenDelta)
}

func Exit(code int) {
	if profiler != nil {
		profiler.Stop()
	}
	os.Exit(code)
}

func init() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Printf("Drive the hand gesture input module from a script or from websocket clients.\n")
		fmt.Printf("Without --script, gesture messages are accepted on the configured address.\n\n")
		fmt.Printf("Options:\n")

		pflag.PrintDefaults()
	}
}
