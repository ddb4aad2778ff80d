package cache

import (
	"context"

	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetCatalog(ctx context.Context) ([]model.Asset, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetCatalog(ctx context.Context, assets []model.Asset) {}

func (n *NoopCache) DeleteCatalog(ctx context.Context) error { return nil }
