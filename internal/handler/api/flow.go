package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/asset-portal-go/internal/flow"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/request"
	"github.com/fhuszti/asset-portal-go/internal/session"
)

type flowResponse struct {
	State     flow.State          `json:"state"`
	LastError string              `json:"lastError,omitempty"`
	Draft     *model.RequestDraft `json:"draft,omitempty"`
}

func flowStateOf(sess *session.Session) flowResponse {
	ctl := sess.Flow()

	out := flowResponse{State: ctl.State(), LastError: ctl.LastError()}
	if draft, ok := ctl.Draft(); ok {
		out.Draft = &draft
	}
	return out
}

// GetFlowHandler reports the current flow state, its draft and the latest
// user-visible error.
func GetFlowHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		RespondJSON(w, http.StatusOK, flowStateOf(sess))
	}
}

// OpenCartHandler moves the flow from Idle to Cart.
func OpenCartHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		if err := sess.Flow().OpenCart(); err != nil {
			writeFlowError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, flowStateOf(sess))
	}
}

// ContinueToFormHandler moves the flow from Cart to Form.
func ContinueToFormHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		if err := sess.Flow().Continue(); err != nil {
			writeFlowError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, flowStateOf(sess))
	}
}

// BackToCartHandler moves the flow from Form back to Cart, discarding the
// draft.
func BackToCartHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		if err := sess.Flow().Back(); err != nil {
			writeFlowError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, flowStateOf(sess))
	}
}

// SubmitFlowHandler submits the form draft. Validation failures come back as
// a 422 with the per-field rules; the flow itself stays on Form with the
// draft preserved so the user can correct and resubmit.
func SubmitFlowHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		var draft model.RequestDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			WriteError(w, http.StatusBadRequest, "Could not parse the request draft", err)
			return
		}

		if err := sess.Flow().Submit(r.Context(), draft); err != nil {
			writeFlowError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, flowStateOf(sess))
	}
}

// CloseFlowHandler starts the two-phase close. The response reports Closing;
// the flow settles on Closed after the close delay.
func CloseFlowHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		if err := sess.Flow().RequestClose(); err != nil {
			writeFlowError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, flowStateOf(sess))
	}
}

// writeFlowError maps flow and submission errors to HTTP statuses. Guard
// rejections are conflicts, draft problems are unprocessable, anything else
// is the backend failing on us.
func writeFlowError(w http.ResponseWriter, err error) {
	var vErr *request.ValidationError

	switch {
	case errors.Is(err, flow.ErrSelectionEmpty),
		errors.Is(err, request.ErrEmptySelection):
		WriteError(w, http.StatusConflict, "Please select at least one asset to request.", err)
	case errors.Is(err, flow.ErrCloseWhileSubmitting):
		WriteError(w, http.StatusConflict, "A submission is in progress, please wait.", err)
	case errors.Is(err, flow.ErrInvalidTransition):
		WriteError(w, http.StatusConflict, "This action is not available right now.", err)
	case errors.As(err, &vErr):
		RespondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "The request draft is invalid",
			"fields": vErr.Fields,
		})
	default:
		WriteError(w, http.StatusBadGateway, "Could not submit the request. Please try again.", err)
	}
}
