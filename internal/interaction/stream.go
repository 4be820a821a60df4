package interaction

import (
	"github.com/jeffwilliams/gesturemgr/internal/gesture"
	"github.com/jeffwilliams/gesturemgr/internal/recognizer"
)

// Stream carries interaction source press and release events. It is live
// independently of which recognizer, if any, is capturing.
type Stream struct {
	handlers recognizer.Handlers
}

func NewStream() *Stream {
	return &Stream{}
}

func (s *Stream) Subscribe(fn recognizer.Handler) (unsubscribe func()) {
	return s.handlers.Add(fn)
}

func (s *Stream) Subscribers() int {
	return s.handlers.Len()
}

// Publish delivers ev to subscribers. Only SourcePressed and SourceReleased
// travel on the stream; other kinds are rejected.
func (s *Stream) Publish(ev gesture.Event) bool {
	if ev.Kind != gesture.SourcePressed && ev.Kind != gesture.SourceReleased {
		return false
	}
	s.handlers.Deliver(ev)
	return true
}
