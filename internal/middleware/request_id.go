package middleware

import (
	"context"
	"net/http"

	"github.com/fhuszti/asset-portal-go/internal/api_context"
	"github.com/fhuszti/asset-portal-go/internal/handler/api"
	"github.com/go-chi/chi/v5"
)

// WithRequestID extracts the {id} URL param of an asset request. Backend
// request ids are opaque strings, so only presence is checked.
func WithRequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, "request ID is required", nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.RequestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
