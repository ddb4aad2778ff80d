package catalog

import (
	"context"

	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
)

type mockBackend struct {
	manifest    port.Manifest
	manifestErr error

	manifestCalled bool
}

func (m *mockBackend) FetchManifest(ctx context.Context) (port.Manifest, error) {
	m.manifestCalled = true
	if m.manifestErr != nil {
		return port.Manifest{}, m.manifestErr
	}
	return m.manifest, nil
}
func (m *mockBackend) ListRequests(ctx context.Context) ([]model.AssetRequest, error) {
	return nil, nil
}
func (m *mockBackend) CreateRequest(ctx context.Context, in port.CreateRequestInput) error {
	return nil
}
func (m *mockBackend) UpdateRequestStatus(ctx context.Context, id string, status model.RequestStatus, adminComments string) error {
	return nil
}
func (m *mockBackend) FetchSummary(ctx context.Context, id string) (bool, error) {
	return true, nil
}
func (m *mockBackend) AdminLogin(ctx context.Context, email, password string) (port.AuthResult, error) {
	return port.AuthResult{}, nil
}
func (m *mockBackend) AdminCreate(ctx context.Context, email, password string) (port.AuthResult, error) {
	return port.AuthResult{}, nil
}

type mockCache struct {
	catalog []model.Asset
	getErr  error

	setCalled bool
	setWith   []model.Asset
}

func (m *mockCache) GetCatalog(ctx context.Context) ([]model.Asset, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.catalog, nil
}
func (m *mockCache) SetCatalog(ctx context.Context, assets []model.Asset) {
	m.setCalled = true
	m.setWith = assets
}
func (m *mockCache) DeleteCatalog(ctx context.Context) error { return nil }
