package port

import (
	"context"

	"github.com/fhuszti/asset-portal-go/internal/model"
)

// Cache stores the probed asset catalog between loads.
type Cache interface {
	GetCatalog(ctx context.Context) ([]model.Asset, error)
	SetCatalog(ctx context.Context, assets []model.Asset)
	DeleteCatalog(ctx context.Context) error
}
