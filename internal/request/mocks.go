package request

import (
	"context"

	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
)

type mockBackend struct {
	createErr error

	createCalls int
	createdWith port.CreateRequestInput
}

func (m *mockBackend) CreateRequest(ctx context.Context, in port.CreateRequestInput) error {
	m.createCalls++
	m.createdWith = in
	return m.createErr
}
func (m *mockBackend) FetchManifest(ctx context.Context) (port.Manifest, error) {
	return port.Manifest{}, nil
}
func (m *mockBackend) ListRequests(ctx context.Context) ([]model.AssetRequest, error) {
	return nil, nil
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
