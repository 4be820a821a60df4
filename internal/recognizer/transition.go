package recognizer

import (
	"errors"
	"fmt"

	"github.com/jeffwilliams/gesturemgr/internal/debuglog"
)

// Controller owns the single active capture session. At most one recognizer
// it manages is capturing at any time.
type Controller struct {
	active Recognizer
	logf   debuglog.Logf
}

func NewController(logf debuglog.Logf) *Controller {
	if logf == nil {
		logf = debuglog.Discard
	}
	return &Controller{logf: logf}
}

func (c *Controller) Active() Recognizer {
	return c.active
}

func (c *Controller) IsCapturing() bool {
	return c.active != nil && c.active.IsCapturing()
}

// Transition makes target the active session, or leaves no session active if
// target is nil. The previous session has its in-flight gesture canceled
// before it stops capturing. Transitioning to the session that is already
// active and capturing does nothing.
//
// Recognizer failures do not interrupt the sequence: target is recorded as
// active regardless. ErrInvalidState is ignored and any other failure is
// returned.
func (c *Controller) Transition(target Recognizer) error {
	if target != nil && target == c.active && c.active.IsCapturing() {
		c.logf(debuglog.LogCatgRecognizer, "transition to %v: already capturing\n", target)
		return nil
	}

	var errs []error
	if c.active != nil {
		c.logf(debuglog.LogCatgRecognizer, "transition: releasing %v\n", c.active)
		errs = append(errs, c.check("cancel", c.active, c.active.CancelGestures()))
		errs = append(errs, c.check("stop", c.active, c.active.StopCapturing()))
	}

	if target != nil {
		c.logf(debuglog.LogCatgRecognizer, "transition: starting %v\n", target)
		errs = append(errs, c.check("start", target, target.StartCapturing()))
	}

	c.active = target
	return errors.Join(errs...)
}

func (c *Controller) check(op string, r Recognizer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidState) {
		c.logf(debuglog.LogCatgRecognizer, "%s %v ignored: %v\n", op, r, err)
		return nil
	}
	c.logf(debuglog.LogCatgRecognizer, "%s %v failed: %v\n", op, r, err)
	return fmt.Errorf("%s %v: %w", op, r, err)
}
