package gesture

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how drags are interpreted. Exactly one mode is in effect at a
// time.
type Mode int

const (
	Navigation Mode = iota
	Manipulation
)

var ErrInvalidMode = errors.New("invalid gesture mode")

var modeNames = []string{
	Navigation:   "navigation",
	Manipulation: "manipulation",
}

func (m Mode) Valid() bool {
	return m >= Navigation && m <= Manipulation
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ModeFromId maps the integer ids used by untyped callers onto a Mode. Ids
// outside the known range are rejected rather than coerced.
func ModeFromId(id int) (Mode, error) {
	m := Mode(id)
	if !m.Valid() {
		return m, fmt.Errorf("%w: id %d", ErrInvalidMode, id)
	}
	return m, nil
}

// ParseMode accepts a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: id %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
