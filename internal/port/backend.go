package port

import (
	"context"

	"github.com/fhuszti/asset-portal-go/internal/model"
)

// CreateRequestInput is the exact wire payload of POST /requests. AssetsCount
// is redundant with len(Items) and must stay equal to it; the backend relies
// on it.
type CreateRequestInput struct {
	RequesterName  string   `json:"requesterName"`
	RequesterEmail string   `json:"requesterEmail"`
	Purpose        string   `json:"purpose"`
	Deadline       string   `json:"deadline"`
	Items          []string `json:"items"`
	AssetsCount    int      `json:"assetsCount"`
}

// Manifest lists the static files the catalog is built from, per media kind.
type Manifest struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
	Audios []string `json:"audios"`
}

// AuthResult surfaces only what the UI needs from an admin auth call.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Backend is the client for the external asset/request backend.
type Backend interface {
	FetchManifest(ctx context.Context) (Manifest, error)
	ListRequests(ctx context.Context) ([]model.AssetRequest, error)
	CreateRequest(ctx context.Context, in CreateRequestInput) error
	UpdateRequestStatus(ctx context.Context, id string, status model.RequestStatus, adminComments string) error
	// FetchSummary triggers the notification email side effect of a status
	// change. Its failure must never roll the status change back.
	FetchSummary(ctx context.Context, id string) (bool, error)
	AdminLogin(ctx context.Context, email, password string) (AuthResult, error)
	AdminCreate(ctx context.Context, email, password string) (AuthResult, error)
}
