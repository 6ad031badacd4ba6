package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// TelemetryClient implements letta.TelemetryClient.
type TelemetryClient struct {
	traces resource[letta.TelemetryTrace]
}

// NewTelemetryClient creates a new telemetry client.
func NewTelemetryClient(httpClient *http.Client) *TelemetryClient {
	return &TelemetryClient{
		traces: newResource[letta.TelemetryTrace](httpClient, "Step", "v1/telemetry"),
	}
}

// GetTrace implements letta.TelemetryClient.GetTrace.
func (c *TelemetryClient) GetTrace(ctx context.Context, stepID string) (*letta.TelemetryTrace, error) {
	return c.traces.get(ctx, stepID)
}
