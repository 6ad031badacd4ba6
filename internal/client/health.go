package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// HealthClient implements letta.HealthClient.
type HealthClient struct {
	httpClient *http.Client
}

// NewHealthClient creates a new health client.
func NewHealthClient(httpClient *http.Client) *HealthClient {
	return &HealthClient{httpClient: httpClient}
}

// Check implements letta.HealthClient.Check.
func (c *HealthClient) Check(ctx context.Context) (*letta.Health, error) {
	health, err := getJSON[letta.Health](ctx, c.httpClient, "v1/health/", nil)
	if err != nil {
		return nil, err
	}

	return &health, nil
}
