package interaction

import "context"

// Work is a unit of work that must run on the goroutine that owns the
// Manager.
type Work func()

// Queue hands work from transport goroutines to the frame loop.
type Queue struct {
	ch chan Work
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Work, size)}
}

// Post enqueues w, blocking until there is room or ctx is done.
func (q *Queue) Post(ctx context.Context, w Work) error {
	select {
	case q.ch <- w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// C is for frame loops that select on incoming work.
func (q *Queue) C() <-chan Work {
	return q.ch
}

// Drain runs all queued work without blocking and returns how many items ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case w := <-q.ch:
			w()
			n++
		default:
			return n
		}
	}
}
