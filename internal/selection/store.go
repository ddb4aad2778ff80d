package selection

import (
	"sync"

	"github.com/fhuszti/asset-portal-go/internal/model"
)

// Store owns the set of assets selected for a pending request. Membership is
// keyed by asset id; the full asset is kept so the cart can render previews
// without re-querying the catalog. A single Store instance is shared by
// everything that reads or writes selection state — readers always go
// through its accessors.
type Store struct {
	mu    sync.Mutex
	byID  map[string]model.Asset
	order []string
}

func NewStore() *Store {
	return &Store{byID: make(map[string]model.Asset)}
}

// Toggle flips membership of the asset and reports the new state: true if
// the asset is now selected. Toggling twice is always a no-op overall.
func (s *Store) Toggle(asset model.Asset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[asset.ID]; ok {
		delete(s.byID, asset.ID)
		s.dropFromOrder(asset.ID)
		return false
	}

	s.byID[asset.ID] = asset
	s.order = append(s.order, asset.ID)
	return true
}

// Remove drops the asset; absent ids are a no-op.
func (s *Store) Remove(assetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[assetID]; !ok {
		return
	}
	delete(s.byID, assetID)
	s.dropFromOrder(assetID)
}

// Clear empties the selection. Called after a confirmed submission.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]model.Asset)
	s.order = nil
}

func (s *Store) IsSelected(assetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byID[assetID]
	return ok
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.byID)
}

// Assets returns the selected assets in selection order.
func (s *Store) Assets() []model.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Asset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// IDs returns the selected asset ids in selection order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// TotalSizeBytes sums the sizes of the selected assets for the cart summary.
func (s *Store) TotalSizeBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, a := range s.byID {
		total += a.SizeBytes
	}
	return total
}

func (s *Store) dropFromOrder(assetID string) {
	for i, id := range s.order {
		if id == assetID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
