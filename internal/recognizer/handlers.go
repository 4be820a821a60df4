package recognizer

import "github.com/jeffwilliams/gesturemgr/internal/gesture"

// Handlers is a list of event subscriptions. The zero value is ready to use.
type Handlers struct {
	subs []*subscription
}

type subscription struct {
	fn     Handler
	active bool
}

// Add registers fn. The returned function removes the registration and may be
// called more than once.
func (h *Handlers) Add(fn Handler) (remove func()) {
	s := &subscription{fn: fn, active: true}
	h.subs = append(h.subs, s)
	return func() {
		if !s.active {
			return
		}
		s.active = false
		for i, o := range h.subs {
			if o == s {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				break
			}
		}
	}
}

func (h *Handlers) Len() int {
	return len(h.subs)
}

// Deliver calls every registered handler in registration order.
func (h *Handlers) Deliver(ev gesture.Event) {
	// Copy so handlers may unsubscribe while being called.
	subs := append([]*subscription(nil), h.subs...)
	for _, s := range subs {
		if s.active {
			s.fn(ev)
		}
	}
}
