package session

import (
	"sync"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/flow"
	"github.com/fhuszti/asset-portal-go/internal/gallery"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/request"
	"github.com/fhuszti/asset-portal-go/internal/selection"
	"github.com/google/uuid"
)

// Session is the per-browser-session state of the portal: the selection
// store, the gallery filters with their paginator, and the request flow.
// It is the single owner of that state; handlers read and write only
// through its accessors.
type Session struct {
	ID uuid.UUID

	Selection *selection.Store

	mu        sync.Mutex
	flowCtl   *flow.Controller
	paginator *gallery.Paginator
	extFilter string
	search    string
	lastSeen  time.Time

	sub        request.Submitter
	closeDelay time.Duration
	pageSize   int
}

func newSession(id uuid.UUID, sub request.Submitter, pageSize int, closeDelay time.Duration) *Session {
	s := &Session{
		ID:         id,
		Selection:  selection.NewStore(),
		paginator:  gallery.NewPaginator(pageSize),
		lastSeen:   time.Now(),
		sub:        sub,
		closeDelay: closeDelay,
		pageSize:   pageSize,
	}
	s.flowCtl = s.newFlow()
	return s
}

// newFlow builds a controller whose teardown resets the session to a fresh
// Idle flow, so a closed popup can be reopened.
func (s *Session) newFlow() *flow.Controller {
	return flow.NewController(s.Selection, s.sub, s.closeDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.flowCtl = flow.NewController(s.Selection, s.sub, s.closeDelay, nil)
	})
}

// Flow returns the session's current flow controller.
func (s *Session) Flow() *flow.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A controller that finished its two-phase close is spent; hand out a
	// fresh one (covers controllers built without a teardown callback).
	if s.flowCtl.State() == flow.StateClosed {
		s.flowCtl = s.newFlow()
	}
	return s.flowCtl
}

// SetFilters applies the extension filter and search term. Any change resets
// the pagination window so a stale depth is never applied to a new
// filtered set.
func (s *Session) SetFilters(extensionFilter, searchTerm string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.extFilter == extensionFilter && s.search == searchTerm {
		return
	}
	s.extFilter = extensionFilter
	s.search = searchTerm
	s.paginator.Reset()
}

// Filters returns the active extension filter and search term.
func (s *Session) Filters() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extFilter, s.search
}

// GalleryView derives the visible window of the catalog under the session's
// filters, plus the total filtered count and whether more pages remain.
func (s *Session) GalleryView(catalog []model.Asset) (visible []model.Asset, total int, hasMore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := gallery.Visible(catalog, s.extFilter, s.search)
	return s.paginator.Window(filtered), len(filtered), s.paginator.HasMore(filtered)
}

// ShowMore deepens the gallery window by one page.
func (s *Session) ShowMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paginator.More()
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// teardown releases the session's timers when the registry expires it.
func (s *Session) teardown() {
	s.mu.Lock()
	ctl := s.flowCtl
	s.mu.Unlock()
	ctl.Teardown()
}
