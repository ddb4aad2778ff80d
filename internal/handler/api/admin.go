package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/asset-portal-go/internal/admin"
	"github.com/fhuszti/asset-portal-go/internal/api_context"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/notify"
)

type setStatusRequest struct {
	Status model.RequestStatus `json:"status"`
}

// ListRequestsHandler fetches the current request list from the backend and
// returns it together with the ids that have a pending status change, so the
// UI can disable their buttons.
func ListRequestsHandler(coord *admin.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := coord.Refresh(r.Context()); err != nil {
			WriteError(w, http.StatusBadGateway, "Could not fetch the request list", err)
			return
		}

		reqs := coord.Requests()
		inFlight := make([]string, 0)
		for _, req := range reqs {
			if coord.IsInFlight(req.ID) {
				inFlight = append(inFlight, req.ID)
			}
		}

		RespondJSON(w, http.StatusOK, map[string]any{
			"requests": reqs,
			"inFlight": inFlight,
		})
	}
}

// SetRequestStatusHandler approves or rejects one request. A second call for
// the same id while the first is pending is answered with a 409 and performs
// no backend call.
func SetRequestStatusHandler(coord *admin.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, ok := api_context.RequestIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusInternalServerError, "no request id on request", nil)
			return
		}

		var in setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteError(w, http.StatusBadRequest, "Could not parse the status change", err)
			return
		}

		err := coord.SetStatus(r.Context(), requestID, in.Status)
		switch {
		case err == nil:
			RespondJSON(w, http.StatusOK, map[string]any{"id": requestID, "status": in.Status})
		case errors.Is(err, admin.ErrActionInFlight):
			WriteError(w, http.StatusConflict, "An update is already in progress for this request", err)
		case errors.Is(err, admin.ErrUnsupportedStatus):
			WriteError(w, http.StatusBadRequest, "Status must be Approved or Rejected", err)
		default:
			WriteError(w, http.StatusBadGateway, "Could not update the request. Please try again.", err)
		}
	}
}

// ListNotificationsHandler returns the currently visible notifications,
// oldest first.
func ListNotificationsHandler(center *notify.Center) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusOK, map[string]any{
			"notifications": center.Snapshot(),
		})
	}
}

// DismissNotificationHandler removes one notification by id.
func DismissNotificationHandler(center *notify.Center) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ID == "" {
			WriteError(w, http.StatusBadRequest, "id is required", err)
			return
		}

		center.Dismiss(in.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}
