package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/asset-portal-go/internal/api_context"
	guuid "github.com/google/uuid"
)

func sessionProbe(t *testing.T) (http.Handler, *guuid.UUID) {
	t.Helper()
	var seen guuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			t.Error("expected a session id in context")
		}
		seen = sid
		w.WriteHeader(http.StatusOK)
	})
	return WithSession()(next), &seen
}

func TestWithSession_IssuesCookie(t *testing.T) {
	h, seen := sessionProbe(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/gallery", nil))

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("expected one %s cookie, got %v", SessionCookie, cookies)
	}
	if cookies[0].Value != seen.String() {
		t.Errorf("cookie %q does not match the context id %q", cookies[0].Value, seen)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestWithSession_ReusesValidCookie(t *testing.T) {
	h, seen := sessionProbe(t)
	sid := guuid.New()

	req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sid.String()})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if *seen != sid {
		t.Errorf("expected the cookie id %s reused, got %s", sid, seen)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("a valid cookie must not be reissued")
	}
}

func TestWithSession_ReplacesInvalidCookie(t *testing.T) {
	h, seen := sessionProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected a fresh cookie, got %v", cookies)
	}
	if cookies[0].Value == "not-a-uuid" || cookies[0].Value != seen.String() {
		t.Errorf("expected a fresh uuid, got %q (context: %s)", cookies[0].Value, seen)
	}
}
