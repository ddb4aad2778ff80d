package port

import (
	"context"

	"github.com/fhuszti/asset-portal-go/internal/model"
)

// CatalogLoader fetches and normalizes the list of available media assets.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]model.Asset, error)
}
