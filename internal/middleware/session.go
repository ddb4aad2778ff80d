package middleware

import (
	"context"
	"net/http"

	"github.com/fhuszti/asset-portal-go/internal/api_context"
	guuid "github.com/google/uuid"
)

// SessionCookie carries the portal session id in the browser.
const SessionCookie = "portal_session"

// WithSession ensures every request carries a session id: an existing valid
// cookie is reused, anything else gets a fresh id set on the response. The
// id is stashed in context for handlers and the logger.
func WithSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid guuid.UUID

			cookie, err := r.Cookie(SessionCookie)
			if err == nil {
				sid, err = guuid.Parse(cookie.Value)
			}
			if err != nil {
				sid = guuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sid.String(),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.SessionIDKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
