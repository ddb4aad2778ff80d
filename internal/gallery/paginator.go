package gallery

import "github.com/fhuszti/asset-portal-go/internal/model"

// DefaultPageSize matches the gallery's initial page depth.
const DefaultPageSize = 8

// Paginator is the slice-window over a filtered asset list. Its depth starts
// at the page size and grows by the same amount on demand; changing a filter
// must Reset it so a stale depth is never applied to a new filtered set.
type Paginator struct {
	pageSize     int
	visibleCount int
}

func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{pageSize: pageSize, visibleCount: pageSize}
}

// Window slices the filtered list down to the currently visible depth.
func (p *Paginator) Window(filtered []model.Asset) []model.Asset {
	if len(filtered) <= p.visibleCount {
		return filtered
	}
	return filtered[:p.visibleCount]
}

// More deepens the window by one page.
func (p *Paginator) More() {
	p.visibleCount += p.pageSize
}

// Reset returns the window to its initial depth.
func (p *Paginator) Reset() {
	p.visibleCount = p.pageSize
}

// VisibleCount reports the current window depth.
func (p *Paginator) VisibleCount() int {
	return p.visibleCount
}

// HasMore reports whether the filtered list extends past the window.
func (p *Paginator) HasMore(filtered []model.Asset) bool {
	return len(filtered) > p.visibleCount
}
