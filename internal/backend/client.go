package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
)

// Client talks to the external asset/request backend. The *http.Client is
// injected so tests can substitute transports; there is no package-level
// default instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// compile-time check: *Client must satisfy port.Backend
var _ port.Backend = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) FetchManifest(ctx context.Context) (port.Manifest, error) {
	var m port.Manifest
	if err := c.getJSON(ctx, "/assets/manifest", &m); err != nil {
		return port.Manifest{}, fmt.Errorf("could not fetch asset manifest: %w", err)
	}
	return m, nil
}

func (c *Client) ListRequests(ctx context.Context) ([]model.AssetRequest, error) {
	var reqs []model.AssetRequest
	if err := c.getJSON(ctx, "/requests", &reqs); err != nil {
		return nil, fmt.Errorf("could not list requests: %w", err)
	}
	return reqs, nil
}

func (c *Client) CreateRequest(ctx context.Context, in port.CreateRequestInput) error {
	resp, err := c.send(ctx, http.MethodPost, "/requests", in)
	if err != nil {
		return fmt.Errorf("could not submit request: %w", err)
	}
	defer closeBody(resp)

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("request submission refused by backend (status %d)", resp.StatusCode)
	}
	return nil
}

type updateStatusBody struct {
	Status        model.RequestStatus `json:"status"`
	AdminComments string              `json:"adminComments"`
}

func (c *Client) UpdateRequestStatus(ctx context.Context, id string, status model.RequestStatus, adminComments string) error {
	resp, err := c.send(ctx, http.MethodPatch, "/requests/"+id, updateStatusBody{Status: status, AdminComments: adminComments})
	if err != nil {
		return fmt.Errorf("could not update status of request %q: %w", id, err)
	}
	defer closeBody(resp)

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("status update of request %q refused by backend (status %d)", id, resp.StatusCode)
	}
	return nil
}

func (c *Client) FetchSummary(ctx context.Context, id string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.getJSON(ctx, "/requests/"+id+"/summary", &out); err != nil {
		return false, fmt.Errorf("could not fetch summary of request %q: %w", id, err)
	}
	return out.Success, nil
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) AdminLogin(ctx context.Context, email, password string) (port.AuthResult, error) {
	return c.auth(ctx, "/admin/login", email, password)
}

func (c *Client) AdminCreate(ctx context.Context, email, password string) (port.AuthResult, error) {
	return c.auth(ctx, "/admin/create", email, password)
}

func (c *Client) auth(ctx context.Context, path, email, password string) (port.AuthResult, error) {
	resp, err := c.send(ctx, http.MethodPost, path, credentialsBody{Email: email, Password: password})
	if err != nil {
		return port.AuthResult{}, fmt.Errorf("auth call failed: %w", err)
	}
	defer closeBody(resp)

	// 401/404 are expected outcomes of an auth attempt, not transport errors:
	// they surface as success=false with a message.
	switch {
	case is2xx(resp.StatusCode):
		return port.AuthResult{Success: true, Message: "authenticated"}, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return port.AuthResult{Success: false, Message: "invalid credentials"}, nil
	case resp.StatusCode == http.StatusNotFound:
		return port.AuthResult{Success: false, Message: "unknown account"}, nil
	default:
		return port.AuthResult{}, fmt.Errorf("auth call failed with status %d", resp.StatusCode)
	}
}

// --- plumbing ---

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("backend answered with status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("could not decode backend response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("could not encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
