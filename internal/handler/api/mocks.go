package api

import (
	"context"

	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
)

type mockLoader struct {
	catalog []model.Asset
	err     error
	calls   int
}

func (m *mockLoader) LoadCatalog(ctx context.Context) ([]model.Asset, error) {
	m.calls++
	return m.catalog, m.err
}

type mockBackend struct {
	requests    []model.AssetRequest
	listErr     error
	createErr   error
	createdWith port.CreateRequestInput
	createCalls int

	updateErr   error
	updateCalls int

	summaryOK  bool
	summaryErr error

	authResult port.AuthResult
	authErr    error
	authEmail  string
}

func (m *mockBackend) FetchManifest(ctx context.Context) (port.Manifest, error) {
	return port.Manifest{}, nil
}

func (m *mockBackend) ListRequests(ctx context.Context) ([]model.AssetRequest, error) {
	return m.requests, m.listErr
}

func (m *mockBackend) CreateRequest(ctx context.Context, in port.CreateRequestInput) error {
	m.createCalls++
	m.createdWith = in
	return m.createErr
}

func (m *mockBackend) UpdateRequestStatus(ctx context.Context, id string, status model.RequestStatus, adminComments string) error {
	m.updateCalls++
	return m.updateErr
}

func (m *mockBackend) FetchSummary(ctx context.Context, id string) (bool, error) {
	return m.summaryOK, m.summaryErr
}

func (m *mockBackend) AdminLogin(ctx context.Context, email, password string) (port.AuthResult, error) {
	m.authEmail = email
	return m.authResult, m.authErr
}

func (m *mockBackend) AdminCreate(ctx context.Context, email, password string) (port.AuthResult, error) {
	m.authEmail = email
	return m.authResult, m.authErr
}

type mockSubmitter struct {
	err   error
	calls int
	ids   []string
	draft model.RequestDraft
}

func (m *mockSubmitter) Submit(ctx context.Context, draft model.RequestDraft, selectedAssetIDs []string) error {
	m.calls++
	m.draft = draft
	m.ids = selectedAssetIDs
	return m.err
}
