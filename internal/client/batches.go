package client

import (
	"context"
	nethttp "net/http"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

type batchMessages struct {
	Messages []letta.Message `json:"messages"`
}

// BatchesClient implements letta.BatchesClient.
type BatchesClient struct {
	httpClient *http.Client
	batches    resource[letta.BatchRun]
}

// NewBatchesClient creates a new message batches client.
func NewBatchesClient(httpClient *http.Client) *BatchesClient {
	return &BatchesClient{
		httpClient: httpClient,
		batches:    newResource[letta.BatchRun](httpClient, "Batch", "v1/messages/batches"),
	}
}

// List implements letta.BatchesClient.List.
func (c *BatchesClient) List(ctx context.Context) ([]letta.BatchRun, error) {
	return c.batches.list(ctx, nil)
}

// Create implements letta.BatchesClient.Create.
func (c *BatchesClient) Create(ctx context.Context, request *letta.CreateBatchRequest) (*letta.BatchRun, error) {
	return c.batches.create(ctx, request)
}

// Get implements letta.BatchesClient.Get.
func (c *BatchesClient) Get(ctx context.Context, id string) (*letta.BatchRun, error) {
	return c.batches.get(ctx, id)
}

// Cancel implements letta.BatchesClient.Cancel.
func (c *BatchesClient) Cancel(ctx context.Context, id string) (*letta.BatchRun, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	batch, err := http.Send[letta.BatchRun](ctx, c.httpClient, &http.Request{
		Method: nethttp.MethodPatch,
		Path:   c.batches.itemPath(id, "cancel"),
	})
	if err != nil {
		return nil, c.batches.refine(err, id)
	}

	return &batch, nil
}

// ListMessages implements letta.BatchesClient.ListMessages.
func (c *BatchesClient) ListMessages(ctx context.Context, id string, params *letta.ListBatchMessagesParams) ([]letta.Message, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	page, err := getJSON[batchMessages](ctx, c.httpClient, c.batches.itemPath(id, "messages"), params.ToValues())
	if err != nil {
		return nil, c.batches.refine(err, id)
	}

	return page.Messages, nil
}
