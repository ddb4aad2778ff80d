package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/logger"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/request"
	"github.com/fhuszti/asset-portal-go/internal/selection"
)

// State of the request flow. Closing is its own tagged state rather than a
// bare timer so a re-opened view can never race a pending teardown.
type State string

const (
	StateIdle       State = "idle"
	StateCart       State = "cart"
	StateForm       State = "form"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
	StateClosing    State = "closing"
	StateClosed     State = "closed"
)

// DefaultCloseDelay is the animation window between Closing and Closed.
const DefaultCloseDelay = 300 * time.Millisecond

var (
	// ErrSelectionEmpty rejects opening the cart or continuing to the form
	// with nothing selected. The state does not change; the caller surfaces
	// an inline warning.
	ErrSelectionEmpty = errors.New("flow: selection is empty")
	// ErrCloseWhileSubmitting rejects closing during an in-flight submission.
	ErrCloseWhileSubmitting = errors.New("flow: cannot close while submitting")
	// ErrInvalidTransition rejects any other transition the machine does not
	// allow from its current state.
	ErrInvalidTransition = errors.New("flow: invalid transition")
)

// Controller drives the cart → form → confirmation sequence for one session.
// It owns the in-flight submission status and the user-visible error surface.
type Controller struct {
	mu         sync.Mutex
	state      State
	draft      model.RequestDraft
	hasDraft   bool
	lastError  string
	closeDelay time.Duration
	closeTimer *time.Timer
	onTeardown func()

	sel *selection.Store
	sub request.Submitter
}

func NewController(sel *selection.Store, sub request.Submitter, closeDelay time.Duration, onTeardown func()) *Controller {
	if closeDelay <= 0 {
		closeDelay = DefaultCloseDelay
	}
	return &Controller{
		state:      StateIdle,
		closeDelay: closeDelay,
		onTeardown: onTeardown,
		sel:        sel,
		sub:        sub,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the user-visible error of the latest failed action, if
// any. It is cleared by the next successful transition.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Draft returns the current form draft and whether one exists.
func (c *Controller) Draft() (model.RequestDraft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft, c.hasDraft
}

// OpenCart moves Idle → Cart. Rejected with no state change when the
// selection is empty.
func (c *Controller) OpenCart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return ErrInvalidTransition
	}
	if c.sel.Count() == 0 {
		c.lastError = "Please select at least one asset to request."
		return ErrSelectionEmpty
	}

	c.state = StateCart
	c.lastError = ""
	return nil
}

// Continue moves Cart → Form, guarded like OpenCart, and opens a fresh draft.
func (c *Controller) Continue() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCart {
		return ErrInvalidTransition
	}
	if c.sel.Count() == 0 {
		c.lastError = "Please select at least one asset to request."
		return ErrSelectionEmpty
	}

	c.state = StateForm
	if !c.hasDraft {
		c.draft = model.RequestDraft{}
		c.hasDraft = true
	}
	c.lastError = ""
	return nil
}

// Back moves Form → Cart and discards the draft.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateForm {
		return ErrInvalidTransition
	}

	c.state = StateCart
	c.draft = model.RequestDraft{}
	c.hasDraft = false
	c.lastError = ""
	return nil
}

// Submit moves Form → Submitting and performs the submission. On success the
// selection is cleared and the flow lands on Confirmed; on failure it returns
// to Form with the draft preserved and the error surfaced, so the user may
// correct and resubmit.
func (c *Controller) Submit(ctx context.Context, draft model.RequestDraft) error {
	c.mu.Lock()
	if c.state != StateForm {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.state = StateSubmitting
	c.draft = draft
	c.hasDraft = true
	ids := c.sel.IDs()
	c.mu.Unlock()

	err := c.sub.Submit(ctx, draft, ids)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The view may have been torn down while the call was pending; a late
	// settlement must not mutate it. Close is rejected during Submitting,
	// but an expired session can still tear the flow down underneath us.
	if c.state != StateSubmitting {
		return err
	}

	if err != nil {
		c.state = StateForm
		c.lastError = err.Error()
		logger.Warnf(ctx, "⚠️  Submission failed, returning to form: %v", err)
		return err
	}

	c.sel.Clear()
	c.draft = model.RequestDraft{}
	c.hasDraft = false
	c.state = StateConfirmed
	c.lastError = ""
	return nil
}

// RequestClose starts the two-phase close: the state flips to Closing
// synchronously, the actual teardown runs once after the close delay.
// Rejected while Submitting so an in-flight request is never left without
// feedback; a no-op when already Closing or Closed.
func (c *Controller) RequestClose() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateSubmitting:
		return ErrCloseWhileSubmitting
	case StateClosing, StateClosed:
		return nil
	}

	c.state = StateClosing
	c.closeTimer = time.AfterFunc(c.closeDelay, c.teardown)
	return nil
}

// Teardown releases the flow immediately, cancelling a pending close timer.
// Used when the owning session dies before the close delay elapses.
func (c *Controller) Teardown() {
	c.mu.Lock()
	if c.closeTimer != nil {
		c.closeTimer.Stop()
		c.closeTimer = nil
	}
	c.mu.Unlock()
	c.teardown()
}

func (c *Controller) teardown() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	c.draft = model.RequestDraft{}
	c.hasDraft = false
	cb := c.onTeardown
	c.mu.Unlock()

	if cb != nil {
		cb()
	}
}
