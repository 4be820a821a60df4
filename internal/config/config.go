// Package config loads gesturemgr settings from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/recognizer"
	"github.com/jeffwilliams/gesturemgr/internal/viewport"
	toml "github.com/pelletier/go-toml"
)

var ConfDir string

func init() {
	if runtime.GOOS == "windows" {
		ConfDir = fmt.Sprintf("%s/.gesturemgr", os.Getenv("USERPROFILE"))
	} else {
		ConfDir = fmt.Sprintf("%s/.gesturemgr", os.Getenv("HOME"))
	}
}

// MaxFrameRate bounds server.frame-rate.
const MaxFrameRate = 1000

func SettingsConfigFile() string {
	return fmt.Sprintf("%s/%s", ConfDir, "settings.toml")
}

type Settings struct {
	Gesture  GestureSettings
	Viewport ViewportSettings
	Server   ServerSettings
	Pointer  PointerSettings
	Log      LogSettings
}

type GestureSettings struct {
	// Mode is the mode the manager starts in.
	Mode string
	// NavigationAxes limits the navigation recognizer to some of "x", "y" and "z".
	NavigationAxes []string `toml:"navigation-axes"`
}

type ViewportSettings struct {
	Width         int
	Height        int
	Fov           float64
	Near          float64
	Far           float64
	FocusDistance float64 `toml:"focus-distance"`
}

type ServerSettings struct {
	Listen     string
	QueueSize  int `toml:"queue-size"`
	FrameRate  int `toml:"frame-rate"`
	MaxMessage int `toml:"max-message"`
}

type PointerSettings struct {
	// DragScale converts pixels of mouse drag into world units.
	DragScale float64 `toml:"drag-scale"`
}

type LogSettings struct {
	Size     int
	Disabled []string
}

// Defaults returns the settings used when no file overrides them.
func Defaults() Settings {
	return Settings{
		Gesture: GestureSettings{
			Mode:           "manipulation",
			NavigationAxes: []string{"x", "y", "z"},
		},
		Viewport: ViewportSettings{
			Width:         1280,
			Height:        720,
			Fov:           60,
			Near:          0.1,
			Far:           1000,
			FocusDistance: 2,
		},
		Server: ServerSettings{
			Listen:     "localhost:7081",
			QueueSize:  64,
			FrameRate:  60,
			MaxMessage: 4096,
		},
		Pointer: PointerSettings{
			DragScale: 0.01,
		},
		Log: LogSettings{
			Size: 200,
		},
	}
}

// LoadSettingsFromConfigFile overlays the settings file on settings.
func LoadSettingsFromConfigFile(settings *Settings) (err error) {
	return LoadSettingsFromFile(SettingsConfigFile(), settings)
}

func LoadSettingsFromFile(path string, settings *Settings) (err error) {
	var f *os.File
	f, err = os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	return LoadSettings(f, settings)
}

func LoadSettings(r io.Reader, settings *Settings) (err error) {
	dec := toml.NewDecoder(r)
	err = dec.Decode(settings)
	if err != nil {
		return
	}
	return settings.Validate()
}

func (s *Settings) Validate() error {
	if _, err := s.GestureMode(); err != nil {
		return err
	}
	if _, err := s.NavigationRecognizerSettings(); err != nil {
		return err
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("viewport size must be positive, got %dx%d", s.Viewport.Width, s.Viewport.Height)
	}
	if s.Viewport.Near <= 0 || s.Viewport.Far <= s.Viewport.Near {
		return fmt.Errorf("viewport clip planes must satisfy 0 < near < far, got near=%g far=%g", s.Viewport.Near, s.Viewport.Far)
	}
	if s.Viewport.Fov <= 0 || s.Viewport.Fov >= 180 {
		return fmt.Errorf("viewport fov must be between 0 and 180 degrees, got %g", s.Viewport.Fov)
	}
	if s.Server.FrameRate <= 0 || s.Server.FrameRate > MaxFrameRate {
		return fmt.Errorf("server frame-rate must be between 1 and %d, got %d", MaxFrameRate, s.Server.FrameRate)
	}
	if s.Server.QueueSize < 0 {
		return fmt.Errorf("server queue-size can't be negative, got %d", s.Server.QueueSize)
	}
	return nil
}

func (s *Settings) GestureMode() (gesture.Mode, error) {
	return gesture.ParseMode(s.Gesture.Mode)
}

// NavigationRecognizerSettings returns the gestures the navigation
// recognizer reports, restricted to the configured axes.
func (s *Settings) NavigationRecognizerSettings() (recognizer.Settings, error) {
	settings := recognizer.SettingTap | recognizer.SettingDoubleTap
	axes := recognizer.Settings(0)
	for _, a := range s.Gesture.NavigationAxes {
		switch strings.ToLower(a) {
		case "x":
			axes |= recognizer.SettingNavigationX
		case "y":
			axes |= recognizer.SettingNavigationY
		case "z":
			axes |= recognizer.SettingNavigationZ
		default:
			return 0, fmt.Errorf("unknown navigation axis %q", a)
		}
	}
	if axes == 0 {
		return 0, fmt.Errorf("at least one navigation axis is required")
	}
	return settings | axes, nil
}

func (s *Settings) Camera() *viewport.Camera {
	c := viewport.NewCamera(s.Viewport.Width, s.Viewport.Height)
	c.FovY = float32(s.Viewport.Fov)
	c.Near = float32(s.Viewport.Near)
	c.Far = float32(s.Viewport.Far)
	c.FocusDistance = float32(s.Viewport.FocusDistance)
	return c
}

func GenerateSampleSettings() string {
	return `# Sample gesturemgr settings file
[gesture]
# mode is the interpretation mode used at startup: "navigation" or "manipulation".
# The default is "manipulation"
#mode="manipulation"

# navigation-axes lists the navigation axes the navigation recognizer reports.
#navigation-axes=["x", "y", "z"]

[viewport]
# The viewport used to project world deltas onto the screen.
#width=1280
#height=720
# fov is the vertical field of view in degrees, between 0 and 180
#fov=60
#near=0.1
#far=1000

# focus-distance is how far in front of the eye the world screen centre lies
#focus-distance=2

[server]
# listen is the address the websocket gesture server listens on
#listen="localhost:7081"

# queue-size is the number of received messages buffered for the frame loop
#queue-size=64

# frame-rate is the number of frames per second the server polls the manager, at most 1000
#frame-rate=60

# max-message is the largest accepted websocket message in bytes
#max-message=4096

[pointer]
# drag-scale converts pixels of mouse drag into world units in gesturepad
#drag-scale=0.01

[log]
# size is the number of debug log entries kept in memory
#size=200

# disabled lists debug log categories that are not recorded
#disabled=["Wire"]
`
}
