package api

import (
	"net/http"

	"github.com/fhuszti/asset-portal-go/internal/logger"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
	"github.com/fhuszti/asset-portal-go/internal/session"
)

type galleryResponse struct {
	Assets  []model.Asset `json:"assets"`
	Total   int           `json:"total"`
	HasMore bool          `json:"hasMore"`
}

// GetGalleryHandler applies the query filters to the session and returns the
// visible window of the catalog. Changing either filter resets pagination.
func GetGalleryHandler(loader port.CatalogLoader, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		sess.SetFilters(r.URL.Query().Get("ext"), r.URL.Query().Get("q"))

		catalog, err := loader.LoadCatalog(r.Context())
		if err != nil {
			WriteError(w, http.StatusBadGateway, "Could not load the asset catalog", err)
			return
		}

		visible, total, hasMore := sess.GalleryView(catalog)
		RespondJSON(w, http.StatusOK, galleryResponse{Assets: visible, Total: total, HasMore: hasMore})
	}
}

// ShowMoreHandler deepens the gallery window by one page.
func ShowMoreHandler(loader port.CatalogLoader, reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		catalog, err := loader.LoadCatalog(r.Context())
		if err != nil {
			WriteError(w, http.StatusBadGateway, "Could not load the asset catalog", err)
			return
		}

		sess.ShowMore()
		visible, total, hasMore := sess.GalleryView(catalog)
		logger.Debugf(r.Context(), "gallery window deepened to %d of %d", len(visible), total)
		RespondJSON(w, http.StatusOK, galleryResponse{Assets: visible, Total: total, HasMore: hasMore})
	}
}
