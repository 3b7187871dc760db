// Package identity talks to the external identity provider that mirrors
// local accounts. Account lifecycle operations update both sides; the local
// store remains the source of truth for roles and device entries.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Patch holds the optional fields an identity update may carry.
type Patch struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
}

// Provider is the identity-provider contract consumed by the user module.
type Provider interface {
	CreateIdentity(ctx context.Context, email, password, displayName string) (string, error)
	UpdateIdentity(ctx context.Context, externalID string, patch Patch) error
	DeleteIdentity(ctx context.Context, externalID string) error
	SetDisabled(ctx context.Context, externalID string, disabled bool) error
	RevokeSessions(ctx context.Context, externalID string) error
}

// HTTPProvider is a JSON-over-HTTP Provider implementation.
type HTTPProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTP creates a provider client for the given endpoint.
func NewHTTP(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type createIdentityRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type identityResponse struct {
	ID string `json:"id"`
}

func (p *HTTPProvider) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	var out identityResponse
	err := p.do(ctx, http.MethodPost, "/identities", createIdentityRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("identity provider returned empty id")
	}
	return out.ID, nil
}

func (p *HTTPProvider) UpdateIdentity(ctx context.Context, externalID string, patch Patch) error {
	return p.do(ctx, http.MethodPatch, "/identities/"+externalID, patch, nil)
}

func (p *HTTPProvider) DeleteIdentity(ctx context.Context, externalID string) error {
	return p.do(ctx, http.MethodDelete, "/identities/"+externalID, nil, nil)
}

func (p *HTTPProvider) SetDisabled(ctx context.Context, externalID string, disabled bool) error {
	body := struct {
		Disabled bool `json:"disabled"`
	}{Disabled: disabled}
	return p.do(ctx, http.MethodPost, "/identities/"+externalID+"/disabled", body, nil)
}

func (p *HTTPProvider) RevokeSessions(ctx context.Context, externalID string) error {
	return p.do(ctx, http.MethodPost, "/identities/"+externalID+"/revoke-sessions", nil, nil)
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("identity provider: %s %s returned %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Local is a Provider for deployments without an external identity service.
// It fabricates external IDs and treats every lifecycle call as a no-op.
type Local struct{}

func (Local) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {
	return uuid.New().String(), nil
}

func (Local) UpdateIdentity(ctx context.Context, externalID string, patch Patch) error { return nil }
func (Local) DeleteIdentity(ctx context.Context, externalID string) error              { return nil }
func (Local) SetDisabled(ctx context.Context, externalID string, disabled bool) error  { return nil }
func (Local) RevokeSessions(ctx context.Context, externalID string) error              { return nil }
