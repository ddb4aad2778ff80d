package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fhuszti/asset-portal-go/internal/logger"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
)

var (
	// ErrActionInFlight rejects a status change for a request that already
	// has one pending. Not an error condition to surface to the admin, just
	// a prevented duplicate.
	ErrActionInFlight = errors.New("admin: action already in flight for this request")
	// ErrUnsupportedStatus rejects statuses other than Approved/Rejected.
	ErrUnsupportedStatus = errors.New("admin: unsupported target status")
)

// Coordinator dispatches per-request admin actions. It is the single owner of
// the in-flight set: distinct request ids may run concurrently, the same id
// may not.
type Coordinator struct {
	backend  port.Backend
	notifier port.Notifier

	mu       sync.Mutex
	inFlight map[string]struct{}
	requests []model.AssetRequest
}

func NewCoordinator(backend port.Backend, notifier port.Notifier) *Coordinator {
	return &Coordinator{
		backend:  backend,
		notifier: notifier,
		inFlight: make(map[string]struct{}),
	}
}

// Refresh replaces the local request list with the backend's current state.
func (c *Coordinator) Refresh(ctx context.Context) error {
	reqs, err := c.backend.ListRequests(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.requests = reqs
	c.mu.Unlock()
	return nil
}

// Requests returns a snapshot of the last fetched request list.
func (c *Coordinator) Requests() []model.AssetRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.AssetRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// IsInFlight reports whether a status change is pending for the request.
func (c *Coordinator) IsInFlight(requestID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.inFlight[requestID]
	return ok
}

// SetStatus changes the status of one request. Sequence: mark in-flight →
// working notification → PATCH → on success re-fetch the request list and
// trigger the summary email → terminal notification → unmark, always.
// A second call for the same id while the first is pending performs no
// network call at all.
func (c *Coordinator) SetStatus(ctx context.Context, requestID string, status model.RequestStatus) error {
	if status != model.RequestStatusApproved && status != model.RequestStatusRejected {
		return fmt.Errorf("%w: %q", ErrUnsupportedStatus, status)
	}

	c.mu.Lock()
	if _, pending := c.inFlight[requestID]; pending {
		c.mu.Unlock()
		return ErrActionInFlight
	}
	c.inFlight[requestID] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, requestID)
		c.mu.Unlock()
	}()

	c.notifier.Working(requestID, "Updating request…")

	if err := c.backend.UpdateRequestStatus(ctx, requestID, status, commentsFor(status)); err != nil {
		logger.Errorf(ctx, "❌  Status update failed for request #%s: %v", requestID, err)
		c.notifier.Error(requestID, "Could not update the request. Please try again.")
		return err
	}

	if err := c.Refresh(ctx); err != nil {
		// The status change itself went through; a stale list is only noise.
		logger.Warnf(ctx, "⚠️  Could not refresh request list after update: %v", err)
	}

	// Fire-and-observe: the summary email trigger must never roll back the
	// status change.
	if ok, err := c.backend.FetchSummary(ctx, requestID); err != nil {
		logger.Warnf(ctx, "⚠️  Summary trigger failed for request #%s: %v", requestID, err)
	} else if !ok {
		logger.Warnf(ctx, "⚠️  Summary trigger reported failure for request #%s", requestID)
	}

	c.notifier.Success(requestID, fmt.Sprintf("Request %s.", statusLabel(status)))
	logger.Infof(ctx, "✅  Request #%s set to %s", requestID, status)
	return nil
}

func commentsFor(status model.RequestStatus) string {
	if status == model.RequestStatusApproved {
		return "Aprobado"
	}
	return "Rechazado"
}

func statusLabel(status model.RequestStatus) string {
	if status == model.RequestStatusApproved {
		return "approved"
	}
	return "rejected"
}
