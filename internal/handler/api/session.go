package api

import (
	"net/http"

	"github.com/fhuszti/asset-portal-go/internal/api_context"
	"github.com/fhuszti/asset-portal-go/internal/session"
)

// sessionFor resolves the caller's portal session from the request context.
// Requires the session middleware; a missing id is a wiring bug, answered
// with a 500 so it cannot go unnoticed.
func sessionFor(reg *session.Registry, w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sid, ok := api_context.SessionIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "no session on request", nil)
		return nil, false
	}
	return reg.Get(sid), true
}
