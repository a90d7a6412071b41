// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package authgate validates opaque bearer credentials against the
// external identity provider. Verification is one synchronous HTTP call
// per request: no retries, no caching, fail closed.
package authgate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/models"
)

// Identity is the authenticated principal returned by the provider. There
// are no role tiers: any authenticated identity may perform any mutation.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Gate verifies bearer tokens against the identity provider's user
// endpoint (GET {base}/auth/v1/user with Authorization: Bearer <token>).
type Gate struct {
	baseURL string
	client  *http.Client
}

// New creates a gate for the provider at baseURL.
func New(baseURL string) *Gate {
	return &Gate{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Authorize verifies the bearer token and returns the identity it belongs
// to. Absent, malformed, or rejected credentials fail with an unauthorized
// error; so does an unreachable provider, since an identity that cannot be
// verified must not be trusted.
func (g *Gate) Authorize(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, models.NewUnauthorized("missing bearer token")
	}

	url := g.baseURL + "/auth/v1/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("authgate request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &models.Error{
			Kind: models.KindUnauthorized,
			Msg:  "identity provider unreachable",
			Err:  err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("authgate read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// Fall through to decode below.
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, models.NewUnauthorized("credential rejected by identity provider")
	default:
		return nil, &models.Error{
			Kind: models.KindUnauthorized,
			Msg:  fmt.Sprintf("identity provider error (status %d)", resp.StatusCode),
		}
	}

	var identity Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, fmt.Errorf("authgate unmarshal: %w", err)
	}
	if identity.ID == "" {
		return nil, models.NewUnauthorized("identity provider returned no identity")
	}

	return &identity, nil
}
