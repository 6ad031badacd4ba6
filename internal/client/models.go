package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// ModelsClient implements letta.ModelsClient.
type ModelsClient struct {
	httpClient *http.Client
}

// NewModelsClient creates a new models client.
func NewModelsClient(httpClient *http.Client) *ModelsClient {
	return &ModelsClient{httpClient: httpClient}
}

// List implements letta.ModelsClient.List.
func (c *ModelsClient) List(ctx context.Context, params *letta.ListModelsParams) ([]letta.Model, error) {
	return getJSON[[]letta.Model](ctx, c.httpClient, "v1/models", params.ToValues())
}

// ListEmbedding implements letta.ModelsClient.ListEmbedding.
func (c *ModelsClient) ListEmbedding(ctx context.Context, params *letta.ListModelsParams) ([]letta.EmbeddingModel, error) {
	return getJSON[[]letta.EmbeddingModel](ctx, c.httpClient, "v1/models/embedding", params.ToValues())
}
