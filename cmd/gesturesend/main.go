package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jeffwilliams/gesturemgr/internal/config"
	"github.com/jeffwilliams/gesturemgr/internal/script"
	"github.com/jeffwilliams/gesturemgr/internal/wire"
	"github.com/ogier/pflag"
)

var optURL = pflag.StringP("url", "u", "", "Websocket URL of the gesture server. Defaults to ws:// and the server.listen setting")
var optSettings = pflag.StringP("settings", "c", "", "Load settings from this file instead of the default settings file")
var optRate = pflag.IntP("rate", "r", 0, "Frames per second to send at. Overrides the server.frame-rate setting")
var optLinger = pflag.DurationP("linger", "w", 250*time.Millisecond, "How long to wait for error replies after the last frame")
var optDebug = pflag.BoolP("debug", "d", false, "Print each message as it is sent")

func main() {
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	settings := loadSettings()
	if *optRate != 0 {
		settings.Server.FrameRate = *optRate
		dieIfError(settings.Validate(), "invalid --rate")
	}

	url := *optURL
	if url == "" {
		url = fmt.Sprintf("ws://%s/", settings.Server.Listen)
	}

	f, err := os.Open(pflag.Arg(0))
	dieIfError(err, "opening script failed")
	steps, err := script.Read(f)
	f.Close()
	dieIfError(err, "reading script failed")

	frames, err := messagesByFrame(steps)
	dieIfError(err, "converting script failed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interval := time.Second / time.Duration(settings.Server.FrameRate)
	err = send(ctx, url, frames, interval, *optLinger, func(r wire.ErrorReply) {
		fmt.Fprintf(os.Stderr, "server rejected a message: %s\n", r.Error)
	})
	dieIfError(err, "sending to "+url+" failed")
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
			die(fmt.Sprintf("Loading settings from %s failed: %v", path, err))
		}
		return config.Defaults()
	}
	return settings
}

// messagesByFrame converts steps to wire messages grouped by frame. Frames
// without steps get an empty slot so the sender keeps the script's timing.
func messagesByFrame(steps []script.Step) ([][]wire.Message, error) {
	if len(steps) == 0 {
		return nil, nil
	}

	frames := make([][]wire.Message, steps[len(steps)-1].Frame+1)
	for _, s := range steps {
		var m wire.Message
		if s.IsMode() {
			mode, err := s.GestureMode()
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", s.Frame, err)
			}
			m = wire.ModeMessage(mode)
		} else {
			t, ev, err := s.Event()
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", s.Frame, err)
			}
			m = wire.EventMessage(t, ev)
		}
		frames[s.Frame] = append(frames[s.Frame], m)
	}
	return frames, nil
}

// send dials url and sends one frame of messages per interval. Error replies
// arriving before the connection is closed are passed to onError.
func send(ctx context.Context, url string, frames [][]wire.Message, interval, linger time.Duration, onError func(wire.ErrorReply)) error {
	c, err := wire.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer c.Close()

	go c.Run(onError)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i, msgs := range frames {
		for _, m := range msgs {
			debug("frame %d: %+v\n", i, m)
			if err := c.Send(m); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
		if i == len(frames)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	select {
	case <-ctx.Done():
	case <-time.After(linger):
	}
	return nil
}

func debug(format string, args ...interface{}) {
	if !*optDebug {
		return
	}
	fmt.Printf(format, args...)
}

func dieIfError(err error, msg string) {
	if err != nil {
		msg := fmt.Sprintf("%s: %s", msg, err)
		die(msg)
	}
}

func die(msg string) {
	fmt.Fprintf(os.Stderr, "gesturesend: %s\n", msg)
	os.Exit(1)
}

func init() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <script.csv>\n", os.Args[0])
		fmt.Printf("Send the steps of a gesture script to a running gesturemgr server over its websocket,\n")
		fmt.Printf("one frame of steps per frame interval. Rejected messages are printed to stderr.\n\n")
		fmt.Printf("Options:\n")

		pflag.PrintDefaults()
	}
}
