package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fhuszti/asset-portal-go/internal/logger"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
	"github.com/fhuszti/asset-portal-go/internal/session"
	"github.com/go-chi/chi/v5"
)

type toggleSelectionRequest struct {
	AssetID string `json:"assetId"`
}

type selectionResponse struct {
	Assets         []model.Asset `json:"assets"`
	Count          int           `json:"count"`
	TotalSizeBytes int64         `json:"totalSizeBytes"`
}

// ToggleSelectionHandler flips membership of one catalog asset in the
// session's selection. The full asset is resolved from the catalog before
// storing, so the cart can render without another lookup.
func ToggleSelectionHandler(loader port.CatalogLoader, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		var in toggleSelectionRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.AssetID == "" {
			WriteError(w, http.StatusBadRequest, "assetId is required", err)
			return
		}

		catalog, err := loader.LoadCatalog(r.Context())
		if err != nil {
			WriteError(w, http.StatusBadGateway, "Could not load the asset catalog", err)
			return
		}

		var asset *model.Asset
		for i := range catalog {
			if catalog[i].ID == in.AssetID {
				asset = &catalog[i]
				break
			}
		}
		if asset == nil {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("asset %q is not in the catalog", in.AssetID), nil)
			return
		}

		selected := sess.Selection.Toggle(*asset)
		logger.Debugf(r.Context(), "asset %q toggled, selected=%v", in.AssetID, selected)

		RespondJSON(w, http.StatusOK, map[string]any{
			"selected": selected,
			"count":    sess.Selection.Count(),
		})
	}
}

// RemoveSelectionHandler drops one asset from the selection; unknown ids are
// a no-op.
func RemoveSelectionHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		assetID := chi.URLParam(r, "assetId")
		if assetID == "" {
			WriteError(w, http.StatusBadRequest, "assetId is required", nil)
			return
		}

		sess.Selection.Remove(assetID)
		RespondJSON(w, http.StatusOK, map[string]any{"count": sess.Selection.Count()})
	}
}

// GetSelectionHandler returns the cart contents with their total size.
func GetSelectionHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		RespondJSON(w, http.StatusOK, selectionResponse{
			Assets:         sess.Selection.Assets(),
			Count:          sess.Selection.Count(),
			TotalSizeBytes: sess.Selection.TotalSizeBytes(),
		})
	}
}
