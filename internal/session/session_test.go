package session

import (
	"context"
	"testing"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/flow"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/google/uuid"
)

type noopSubmitter struct{}

func (noopSubmitter) Submit(ctx context.Context, draft model.RequestDraft, ids []string) error {
	return nil
}

func smallCatalog(n int) []model.Asset {
	out := make([]model.Asset, n)
	for i := range out {
		out[i] = model.Asset{
			ID:    model.AssetID(model.AssetKindImage, string(rune('a'+i))+".jpg"),
			Kind:  model.AssetKindImage,
			URL:   "http://cdn/images/" + string(rune('a'+i)) + ".jpg",
			Title: string(rune('a'+i)) + ".jpg",
		}
	}
	return out
}

func newTestSession() *Session {
	return newSession(uuid.New(), noopSubmitter{}, 8, time.Millisecond)
}

func TestSetFilters_ResetsPagination(t *testing.T) {
	s := newTestSession()
	catalog := smallCatalog(20)

	s.ShowMore()
	if visible, _, _ := s.GalleryView(catalog); len(visible) != 16 {
		t.Fatalf("window = %d, want 16 after ShowMore", len(visible))
	}

	s.SetFilters("jpg", "")
	visible, total, _ := s.GalleryView(catalog)
	if len(visible) != 8 {
		t.Fatalf("window = %d, a filter change must reset pagination to 8", len(visible))
	}
	if total != 20 {
		t.Errorf("total = %d, want 20", total)
	}

	// same filters again: no reset
	s.ShowMore()
	s.SetFilters("jpg", "")
	if visible, _, _ := s.GalleryView(catalog); len(visible) != 16 {
		t.Fatalf("window = %d, unchanged filters must not reset pagination", len(visible))
	}
}

func TestGalleryView_AppliesFilters(t *testing.T) {
	s := newTestSession()
	catalog := smallCatalog(5)
	catalog = append(catalog, model.Asset{
		ID:    "video-clip.mp4",
		Kind:  model.AssetKindVideo,
		URL:   "http://cdn/videos/clip.mp4",
		Title: "clip.mp4",
	})

	s.SetFilters("mp4", "")
	visible, total, hasMore := s.GalleryView(catalog)
	if total != 1 || len(visible) != 1 || visible[0].ID != "video-clip.mp4" {
		t.Fatalf("visible = %+v (total %d)", visible, total)
	}
	if hasMore {
		t.Error("one asset in an 8-deep window leaves nothing more")
	}
}

func TestFlow_FreshControllerAfterClose(t *testing.T) {
	s := newTestSession()
	s.Selection.Toggle(model.Asset{ID: "image-a.jpg"})

	ctl := s.Flow()
	if err := ctl.OpenCart(); err != nil {
		t.Fatalf("OpenCart: %v", err)
	}
	if err := ctl.RequestClose(); err != nil {
		t.Fatalf("RequestClose: %v", err)
	}

	// wait out the two-phase close
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && ctl.State() != flow.StateClosed {
		time.Sleep(2 * time.Millisecond)
	}

	reopened := s.Flow()
	if reopened.State() != flow.StateIdle {
		t.Fatalf("state = %q, a reopened session must start from a fresh Idle flow", reopened.State())
	}
	if !s.Selection.IsSelected("image-a.jpg") {
		t.Error("closing the popup must not drop the selection")
	}
}

func TestRegistry_GetCreatesOnce(t *testing.T) {
	r := NewRegistry(noopSubmitter{}, 8, time.Millisecond, time.Minute)
	defer r.Close()

	id := uuid.New()
	s1 := r.Get(id)
	s2 := r.Get(id)
	if s1 != s2 {
		t.Fatal("same id must return the same session")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	if _, ok := r.Lookup(uuid.New()); ok {
		t.Error("Lookup must not create sessions")
	}
}

func TestRegistry_ExpiresIdleSessions(t *testing.T) {
	r := NewRegistry(noopSubmitter{}, 8, time.Millisecond, 20*time.Millisecond)
	defer r.Close()

	r.Get(uuid.New())

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && r.Len() != 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if r.Len() != 0 {
		t.Fatal("idle session should have been swept")
	}
}
