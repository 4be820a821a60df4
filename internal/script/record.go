package script

import (
	"encoding/csv"
	"io"

	"github.com/jeffwilliams/gesturemgr/internal/interaction"
	"github.com/jszwec/csvutil"
)

// Record is the CSV form of a polled frame.
type Record struct {
	Frame          int     `csv:"frame"`
	Mode           string  `csv:"mode"`
	Capturing      bool    `csv:"capturing"`
	Pressed        bool    `csv:"pressed"`
	Released       bool    `csv:"released"`
	Cancelled      bool    `csv:"cancelled"`
	ShouldActivate bool    `csv:"should_activate"`
	WorldDeltaX    float32 `csv:"world_dx"`
	WorldDeltaY    float32 `csv:"world_dy"`
	WorldDeltaZ    float32 `csv:"world_dz"`
	ScreenDeltaX   float32 `csv:"screen_dx"`
	ScreenDeltaY   float32 `csv:"screen_dy"`
}

func NewRecord(frame int, f interaction.Frame) Record {
	return Record{
		Frame:          frame,
		Mode:           f.Mode.String(),
		Capturing:      f.Capturing,
		Pressed:        f.Pressed,
		Released:       f.Released,
		Cancelled:      f.Cancelled,
		ShouldActivate: f.ShouldActivate,
		WorldDeltaX:    f.WorldDelta[0],
		WorldDeltaY:    f.WorldDelta[1],
		WorldDeltaZ:    f.WorldDelta[2],
		ScreenDeltaX:   f.ScreenDelta[0],
		ScreenDeltaY:   f.ScreenDelta[1],
	}
}

// Recorder streams records as CSV with a header row.
type Recorder struct {
	w   *csv.Writer
	enc *csvutil.Encoder
}

func NewRecorder(w io.Writer) *Recorder {
	cw := csv.NewWriter(w)
	return &Recorder{w: cw, enc: csvutil.NewEncoder(cw)}
}

func (r *Recorder) Write(frame int, f interaction.Frame) error {
	return r.enc.Encode(NewRecord(frame, f))
}

func (r *Recorder) Flush() error {
	r.w.Flush()
	return r.w.Error()
}
