package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/flow"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/request"
	"github.com/fhuszti/asset-portal-go/internal/session"
	"github.com/google/uuid"
)

func flowState(t *testing.T, reg *session.Registry, sid uuid.UUID) flowResponse {
	t.Helper()
	req := withSessionID(httptest.NewRequest(http.MethodGet, "/flow", nil), sid)
	rr := httptest.NewRecorder()
	GetFlowHandler(reg)(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get flow: expected 200, got %d", rr.Code)
	}
	var out flowResponse
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func postFlow(t *testing.T, h http.HandlerFunc, sid uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := withSessionID(httptest.NewRequest(http.MethodPost, "/flow", strings.NewReader(body)), sid)
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestOpenCartHandler_EmptySelection(t *testing.T) {
	reg := newTestRegistry(nil)
	defer reg.Close()
	sid := uuid.New()

	rr := postFlow(t, OpenCartHandler(reg), sid, "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}

	out := flowState(t, reg, sid)
	if out.State != flow.StateIdle {
		t.Errorf("state must not change on a guarded rejection, got %q", out.State)
	}
	if out.LastError == "" {
		t.Error("expected an inline warning in lastError")
	}
}

func TestFlowHandlers_HappyPath(t *testing.T) {
	sub := &mockSubmitter{}
	reg := newTestRegistry(sub)
	defer reg.Close()
	sid := uuid.New()

	reg.Get(sid).Selection.Toggle(model.Asset{ID: "image-a.png", SizeBytes: 10})

	if rr := postFlow(t, OpenCartHandler(reg), sid, ""); rr.Code != http.StatusOK {
		t.Fatalf("open cart: got %d: %s", rr.Code, rr.Body.String())
	}
	if rr := postFlow(t, ContinueToFormHandler(reg), sid, ""); rr.Code != http.StatusOK {
		t.Fatalf("continue: got %d", rr.Code)
	}

	draft := `{"requesterName":"Jane Doe","requesterEmail":"jane@example.com",` +
		`"purpose":"Marketing campaign assets","deadline":"` + time.Now().Format("2006-01-02") + `"}`
	rr := postFlow(t, SubmitFlowHandler(reg), sid, draft)
	if rr.Code != http.StatusOK {
		t.Fatalf("submit: got %d: %s", rr.Code, rr.Body.String())
	}

	var out flowResponse
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.State != flow.StateConfirmed {
		t.Errorf("expected confirmed, got %q", out.State)
	}
	if sub.calls != 1 || len(sub.ids) != 1 || sub.ids[0] != "image-a.png" {
		t.Errorf("unexpected submission: calls=%d ids=%v", sub.calls, sub.ids)
	}
	if reg.Get(sid).Selection.Count() != 0 {
		t.Error("selection must be cleared after a successful submission")
	}
}

func TestSubmitFlowHandler_ValidationFailure(t *testing.T) {
	sub := &mockSubmitter{err: &request.ValidationError{Fields: map[string]string{
		"requesterEmail": "email",
		"purpose":        "trimmedmin",
	}}}
	reg := newTestRegistry(sub)
	defer reg.Close()
	sid := uuid.New()

	reg.Get(sid).Selection.Toggle(model.Asset{ID: "image-a.png"})
	postFlow(t, OpenCartHandler(reg), sid, "")
	postFlow(t, ContinueToFormHandler(reg), sid, "")

	rr := postFlow(t, SubmitFlowHandler(reg), sid, `{"requesterName":"Jane Doe","requesterEmail":"nope","purpose":"short","deadline":"2030-01-01"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}

	var out struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Fields["requesterEmail"] != "email" || out.Fields["purpose"] != "trimmedmin" {
		t.Errorf("unexpected field errors: %v", out.Fields)
	}

	// the flow returns to the form with the draft preserved
	state := flowState(t, reg, sid)
	if state.State != flow.StateForm {
		t.Errorf("expected form after a failed submission, got %q", state.State)
	}
	if state.Draft == nil || state.Draft.RequesterName != "Jane Doe" {
		t.Errorf("draft must survive a failed submission, got %+v", state.Draft)
	}
}

func TestSubmitFlowHandler_InvalidTransition(t *testing.T) {
	reg := newTestRegistry(nil)
	defer reg.Close()
	sid := uuid.New()

	rr := postFlow(t, SubmitFlowHandler(reg), sid, `{"requesterName":"Jane Doe"}`)
	if rr.Code != http.StatusConflict {
		t.Errorf("submit outside the form must be a 409, got %d", rr.Code)
	}
}

func TestCloseFlowHandler_TwoPhase(t *testing.T) {
	reg := newTestRegistry(nil)
	defer reg.Close()
	sid := uuid.New()

	reg.Get(sid).Selection.Toggle(model.Asset{ID: "image-a.png"})
	postFlow(t, OpenCartHandler(reg), sid, "")

	rr := postFlow(t, CloseFlowHandler(reg), sid, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("close: got %d", rr.Code)
	}
	var out flowResponse
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.State != flow.StateClosing {
		t.Errorf("close must report closing synchronously, got %q", out.State)
	}

	// after the close delay the session hands out a fresh idle flow
	deadline := time.Now().Add(time.Second)
	for {
		if s := flowState(t, reg, sid); s.State == flow.StateIdle {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("flow never settled back to idle after the close delay")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if reg.Get(sid).Selection.Count() != 1 {
		t.Error("closing the flow must not drop the selection")
	}
}
