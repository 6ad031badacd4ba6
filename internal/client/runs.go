package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// RunsClient implements letta.RunsClient.
type RunsClient struct {
	runs resource[letta.Run]
}

// NewRunsClient creates a new runs client.
func NewRunsClient(httpClient *http.Client) *RunsClient {
	return &RunsClient{
		runs: newResource[letta.Run](httpClient, "Run", "v1/runs"),
	}
}

// List implements letta.RunsClient.List.
func (c *RunsClient) List(ctx context.Context, params *letta.ListRunsParams) ([]letta.Run, error) {
	return c.runs.list(ctx, params.ToValues())
}

// ListActive implements letta.RunsClient.ListActive.
func (c *RunsClient) ListActive(ctx context.Context, params *letta.ListRunsParams) ([]letta.Run, error) {
	return getJSON[[]letta.Run](ctx, c.runs.httpClient, c.runs.base+"/active", params.ToValues())
}

// Get implements letta.RunsClient.Get.
func (c *RunsClient) Get(ctx context.Context, id string) (*letta.Run, error) {
	return c.runs.get(ctx, id)
}

// Delete implements letta.RunsClient.Delete.
func (c *RunsClient) Delete(ctx context.Context, id string) (*letta.Run, error) {
	return deleteReturning(ctx, c.runs, id)
}

// ListMessages implements letta.RunsClient.ListMessages.
func (c *RunsClient) ListMessages(ctx context.Context, runID string, params *letta.ListParams) ([]letta.LettaMessage, error) {
	err := requireID("id", runID)
	if err != nil {
		return nil, err
	}

	messages, err := getJSON[[]letta.LettaMessage](ctx, c.runs.httpClient, c.runs.itemPath(runID, "messages"), params.ToValues())
	if err != nil {
		return nil, c.runs.refine(err, runID)
	}

	return messages, nil
}

// ListSteps implements letta.RunsClient.ListSteps.
func (c *RunsClient) ListSteps(ctx context.Context, runID string, params *letta.ListParams) ([]letta.Step, error) {
	err := requireID("id", runID)
	if err != nil {
		return nil, err
	}

	steps, err := getJSON[[]letta.Step](ctx, c.runs.httpClient, c.runs.itemPath(runID, "steps"), params.ToValues())
	if err != nil {
		return nil, c.runs.refine(err, runID)
	}

	return steps, nil
}
