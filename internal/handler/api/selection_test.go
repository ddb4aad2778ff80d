package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func toggle(t *testing.T, h http.HandlerFunc, sid uuid.UUID, assetID string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"assetId": "` + assetID + `"}`)
	req := withSessionID(httptest.NewRequest(http.MethodPost, "/selection/toggle", body), sid)
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestToggleSelectionHandler(t *testing.T) {
	reg := newTestRegistry(nil)
	defer reg.Close()
	loader := &mockLoader{catalog: testCatalog(3)}
	h := ToggleSelectionHandler(loader, reg)
	sid := uuid.New()

	rr := toggle(t, h, sid, "image-file0.png")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Selected bool `json:"selected"`
		Count    int  `json:"count"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Selected || out.Count != 1 {
		t.Errorf("first toggle: got selected=%v count=%d", out.Selected, out.Count)
	}

	// toggling again deselects: two toggles are a no-op overall
	rr = toggle(t, h, sid, "image-file0.png")
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Selected || out.Count != 0 {
		t.Errorf("second toggle: got selected=%v count=%d", out.Selected, out.Count)
	}
}

func TestToggleSelectionHandler_UnknownAsset(t *testing.T) {
	reg := newTestRegistry(nil)
	defer reg.Close()
	h := ToggleSelectionHandler(&mockLoader{catalog: testCatalog(1)}, reg)

	rr := toggle(t, h, uuid.New(), "image-nope.png")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestToggleSelectionHandler_MissingID(t *testing.T) {
	reg := newTestRegistry(nil)
	defer reg.Close()
	h := ToggleSelectionHandler(&mockLoader{}, reg)

	req := withSessionID(httptest.NewRequest(http.MethodPost, "/selection/toggle", strings.NewReader(`{}`)), uuid.New())
	rr := httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestRemoveAndGetSelectionHandlers(t *testing.T) {
	reg := newTestRegistry(nil)
	defer reg.Close()
	loader := &mockLoader{catalog: testCatalog(3)}
	sid := uuid.New()

	toggle(t, ToggleSelectionHandler(loader, reg), sid, "image-file0.png")
	toggle(t, ToggleSelectionHandler(loader, reg), sid, "image-file1.mp4")

	// remove one through the router so the URL param is populated
	r := chi.NewRouter()
	r.Delete("/selection/{assetId}", RemoveSelectionHandler(reg))
	req := withSessionID(httptest.NewRequest(http.MethodDelete, "/selection/image-file0.png", nil), sid)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", rr.Code)
	}

	req = withSessionID(httptest.NewRequest(http.MethodGet, "/selection", nil), sid)
	rr = httptest.NewRecorder()
	GetSelectionHandler(reg)(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}

	var out selectionResponse
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Assets) != 1 || out.Assets[0].ID != "image-file1.mp4" {
		t.Errorf("unexpected selection after remove: %+v", out)
	}
}
