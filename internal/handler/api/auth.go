package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/asset-portal-go/internal/port"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLoginHandler proxies the admin login to the backend. The outcome is
// always a 200 with {success, message}; only transport failures are errors.
func AdminLoginHandler(backend port.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		res, err := backend.AdminLogin(r.Context(), creds.Email, creds.Password)
		if err != nil {
			WriteError(w, http.StatusBadGateway, "Could not reach the authentication service", err)
			return
		}
		RespondJSON(w, http.StatusOK, res)
	}
}

// AdminCreateHandler proxies the admin account creation to the backend.
func AdminCreateHandler(backend port.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		res, err := backend.AdminCreate(r.Context(), creds.Email, creds.Password)
		if err != nil {
			WriteError(w, http.StatusBadGateway, "Could not reach the authentication service", err)
			return
		}
		RespondJSON(w, http.StatusOK, res)
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		WriteError(w, http.StatusBadRequest, "email and password are required", err)
		return creds, false
	}
	return creds, true
}
