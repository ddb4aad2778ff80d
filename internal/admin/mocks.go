package admin

import (
	"context"
	"sync"

	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
)

type mockBackend struct {
	mu sync.Mutex

	requests   []model.AssetRequest
	listErr    error
	updateErr  error
	summaryOK  bool
	summaryErr error

	updateCalls   int
	updateBlocked chan struct{} // when set, UpdateRequestStatus blocks until closed
	listCalls     int
	summaryCalls  int
	updatedID     string
	updatedStatus model.RequestStatus
	updatedNotes  string
}

func (m *mockBackend) ListRequests(ctx context.Context) ([]model.AssetRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.requests, nil
}

func (m *mockBackend) UpdateRequestStatus(ctx context.Context, id string, status model.RequestStatus, adminComments string) error {
	m.mu.Lock()
	m.updateCalls++
	m.updatedID = id
	m.updatedStatus = status
	m.updatedNotes = adminComments
	blocked := m.updateBlocked
	err := m.updateErr
	m.mu.Unlock()

	if blocked != nil {
		<-blocked
	}
	return err
}

func (m *mockBackend) FetchSummary(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaryCalls++
	if m.summaryErr != nil {
		return false, m.summaryErr
	}
	return m.summaryOK, nil
}

func (m *mockBackend) FetchManifest(ctx context.Context) (port.Manifest, error) {
	return port.Manifest{}, nil
}
func (m *mockBackend) CreateRequest(ctx context.Context, in port.CreateRequestInput) error {
	return nil
}
func (m *mockBackend) AdminLogin(ctx context.Context, email, password string) (port.AuthResult, error) {
	return port.AuthResult{}, nil
}
func (m *mockBackend) AdminCreate(ctx context.Context, email, password string) (port.AuthResult, error) {
	return port.AuthResult{}, nil
}

type mockNotifier struct {
	mu      sync.Mutex
	entries []struct {
		Key     string
		Level   port.NotificationLevel
		Message string
	}
}

func (m *mockNotifier) record(key string, level port.NotificationLevel, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, struct {
		Key     string
		Level   port.NotificationLevel
		Message string
	}{key, level, message})
}

func (m *mockNotifier) Working(key, message string) { m.record(key, port.NotificationWorking, message) }
func (m *mockNotifier) Success(key, message string) { m.record(key, port.NotificationSuccess, message) }
func (m *mockNotifier) Error(key, message string)   { m.record(key, port.NotificationError, message) }

func (m *mockNotifier) levels(key string) []port.NotificationLevel {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []port.NotificationLevel
	for _, e := range m.entries {
		if e.Key == key {
			out = append(out, e.Level)
		}
	}
	return out
}
