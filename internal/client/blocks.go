package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// BlocksClient implements letta.BlocksClient.
type BlocksClient struct {
	blocks resource[letta.Block]
}

// NewBlocksClient creates a new blocks client.
func NewBlocksClient(httpClient *http.Client) *BlocksClient {
	return &BlocksClient{
		blocks: newResource[letta.Block](httpClient, "Block", "v1/blocks/"),
	}
}

// List implements letta.BlocksClient.List.
func (c *BlocksClient) List(ctx context.Context, params *letta.ListBlocksParams) ([]letta.Block, error) {
	return c.blocks.list(ctx, params.ToValues())
}

// ListStream implements letta.BlocksClient.ListStream.
func (c *BlocksClient) ListStream(params *letta.ListBlocksParams) *letta.Stream[letta.Block] {
	base := letta.ListBlocksParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[letta.Block], error) {
		pageParams := base
		pageParams.ListParams = cursor

		blocks, err := c.List(ctx, &pageParams)
		if err != nil {
			return letta.Page[letta.Block]{}, err
		}

		return letta.IDCursor(blocks, func(block letta.Block) string { return block.ID }, cursor.Limit), nil
	})
}

// Get implements letta.BlocksClient.Get.
func (c *BlocksClient) Get(ctx context.Context, id string) (*letta.Block, error) {
	return c.blocks.get(ctx, id)
}

// Create implements letta.BlocksClient.Create.
func (c *BlocksClient) Create(ctx context.Context, request *letta.CreateBlockRequest) (*letta.Block, error) {
	return c.blocks.create(ctx, request)
}

// Update implements letta.BlocksClient.Update.
func (c *BlocksClient) Update(ctx context.Context, id string, request *letta.UpdateBlockRequest) (*letta.Block, error) {
	return c.blocks.update(ctx, id, request)
}

// Delete implements letta.BlocksClient.Delete.
func (c *BlocksClient) Delete(ctx context.Context, id string) error {
	return c.blocks.delete(ctx, id)
}

// Count implements letta.BlocksClient.Count.
func (c *BlocksClient) Count(ctx context.Context) (int, error) {
	return c.blocks.count(ctx)
}
