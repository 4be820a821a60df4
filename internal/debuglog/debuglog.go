// Package debuglog keeps a bounded in-memory log of categorised debug messages.
package debuglog

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

const (
	LogCatgApp        = "Application"
	LogCatgGesture    = "Gesture"
	LogCatgRecognizer = "Recognizer"
	LogCatgWire       = "Wire"
	LogCatgConf       = "Config"
	LogCatgScript     = "Script"
	LogCatgPointer    = "Pointer"
)

var Categories = []string{
	LogCatgApp,
	LogCatgGesture,
	LogCatgRecognizer,
	LogCatgWire,
	LogCatgConf,
	LogCatgScript,
	LogCatgPointer,
}

// Logf is the signature packages accept for logging. A nil Logf discards.
type Logf func(category, message string, args ...interface{})

// Discard is a Logf that drops every message.
func Discard(category, message string, args ...interface{}) {}

type Entry struct {
	Time     time.Time
	Category string
	Message  string
}

// DebugLog is a ring of the most recent entries. It is safe for concurrent use
// since the websocket transport logs from its own goroutines.
type DebugLog struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	// Echo, if set, receives every message as it is added.
	Echo     io.Writer
	disabled map[string]bool
	now      func() time.Time
}

func New(size int) *DebugLog {
	if size < 1 {
		size = 1
	}
	return &DebugLog{
		entries:  make([]Entry, size),
		disabled: make(map[string]bool),
		now:      time.Now,
	}
}

// Disable stops recording messages of the given category.
func (l *DebugLog) Disable(category string) {
	l.mu.Lock()
	l.disabled[category] = true
	l.mu.Unlock()
}

func (l *DebugLog) Addf(category, message string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disabled[category] {
		return
	}

	msg := fmt.Sprintf(message, args...)
	if l.Echo != nil {
		fmt.Fprintf(l.Echo, "%s: %s", category, msg)
		if len(msg) == 0 || msg[len(msg)-1] != '\n' {
			fmt.Fprintln(l.Echo)
		}
	}

	l.entries[l.next] = Entry{Time: l.now(), Category: category, Message: msg}
	l.next++
	if l.next == len(l.entries) {
		l.next = 0
		l.full = true
	}
}

// Entries returns the retained entries, oldest first.
func (l *DebugLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var r []Entry
	if l.full {
		r = append(r, l.entries[l.next:]...)
	}
	r = append(r, l.entries[:l.next]...)
	return r
}

func (l *DebugLog) String() string {
	var buf bytes.Buffer
	for _, e := range l.Entries() {
		fmt.Fprintf(&buf, "%s [%s] %s", e.Time.Format("15:04:05.000"), e.Category, e.Message)
		if len(e.Message) == 0 || e.Message[len(e.Message)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}
