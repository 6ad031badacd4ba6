package client

import (
	"context"
	nethttp "net/http"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// MemoryClient implements letta.MemoryClient.
type MemoryClient struct {
	httpClient *http.Client
	agents     resource[letta.Agent]
}

// NewMemoryClient creates a new memory client.
func NewMemoryClient(httpClient *http.Client) *MemoryClient {
	return &MemoryClient{
		httpClient: httpClient,
		agents:     newResource[letta.Agent](httpClient, "Agent", "v1/agents"),
	}
}

// Core implements letta.MemoryClient.Core.
func (c *MemoryClient) Core(ctx context.Context, agentID string) (*letta.Memory, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	memory, err := getJSON[letta.Memory](ctx, c.httpClient, c.agents.itemPath(agentID, "core-memory"), nil)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return &memory, nil
}

// ListBlocks implements letta.MemoryClient.ListBlocks.
func (c *MemoryClient) ListBlocks(ctx context.Context, agentID string) ([]letta.Block, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	blocks, err := getJSON[[]letta.Block](ctx, c.httpClient, c.agents.itemPath(agentID, "core-memory", "blocks"), nil)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return blocks, nil
}

// GetBlock implements letta.MemoryClient.GetBlock.
func (c *MemoryClient) GetBlock(ctx context.Context, agentID, label string) (*letta.Block, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	err = requireID("label", label)
	if err != nil {
		return nil, err
	}

	block, err := getJSON[letta.Block](ctx, c.httpClient, c.agents.itemPath(agentID, "core-memory", "blocks", label), nil)
	if err != nil {
		return nil, refineNotFound(err, "Block", label)
	}

	return &block, nil
}

// UpdateBlock implements letta.MemoryClient.UpdateBlock.
func (c *MemoryClient) UpdateBlock(ctx context.Context, agentID, label string, request *letta.UpdateBlockRequest) (*letta.Block, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	err = requireID("label", label)
	if err != nil {
		return nil, err
	}

	block, err := sendJSON[letta.Block](ctx, c.httpClient, nethttp.MethodPatch, c.agents.itemPath(agentID, "core-memory", "blocks", label), request)
	if err != nil {
		return nil, refineNotFound(err, "Block", label)
	}

	return &block, nil
}

// AttachBlock implements letta.MemoryClient.AttachBlock.
func (c *MemoryClient) AttachBlock(ctx context.Context, agentID, blockID string) (*letta.Agent, error) {
	return c.modifyBlock(ctx, agentID, blockID, "attach")
}

// DetachBlock implements letta.MemoryClient.DetachBlock.
func (c *MemoryClient) DetachBlock(ctx context.Context, agentID, blockID string) (*letta.Agent, error) {
	return c.modifyBlock(ctx, agentID, blockID, "detach")
}

func (c *MemoryClient) modifyBlock(ctx context.Context, agentID, blockID, action string) (*letta.Agent, error) {
	return linkAgent(ctx, c.agents, agentID, "block_id", blockID, "core-memory", "blocks", action)
}

// ListPassages implements letta.MemoryClient.ListPassages.
func (c *MemoryClient) ListPassages(ctx context.Context, agentID string, params *letta.ListPassagesParams) ([]letta.Passage, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	passages, err := getJSON[[]letta.Passage](ctx, c.httpClient, c.agents.itemPath(agentID, "archival-memory"), params.ToValues())
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return passages, nil
}

// PassagesStream implements letta.MemoryClient.PassagesStream.
func (c *MemoryClient) PassagesStream(agentID string, params *letta.ListPassagesParams) *letta.Stream[letta.Passage] {
	base := letta.ListPassagesParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[letta.Passage], error) {
		pageParams := base
		pageParams.ListParams = cursor

		passages, err := c.ListPassages(ctx, agentID, &pageParams)
		if err != nil {
			return letta.Page[letta.Passage]{}, err
		}

		return letta.IDCursor(passages, func(passage letta.Passage) string { return passage.ID }, cursor.Limit), nil
	})
}

// CreatePassage implements letta.MemoryClient.CreatePassage. The server may
// split long text, so every created passage is returned.
func (c *MemoryClient) CreatePassage(ctx context.Context, agentID string, request *letta.CreatePassageRequest) ([]letta.Passage, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	passages, err := sendJSON[[]letta.Passage](ctx, c.httpClient, nethttp.MethodPost, c.agents.itemPath(agentID, "archival-memory"), request)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return passages, nil
}

// UpdatePassage implements letta.MemoryClient.UpdatePassage.
func (c *MemoryClient) UpdatePassage(ctx context.Context, agentID, passageID string, request *letta.UpdatePassageRequest) ([]letta.Passage, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	err = requireID("passage_id", passageID)
	if err != nil {
		return nil, err
	}

	err = requireRequest(request)
	if err != nil {
		return nil, err
	}

	body := *request
	if body.ID == "" {
		body.ID = passageID
	}

	passages, err := sendJSON[[]letta.Passage](ctx, c.httpClient, nethttp.MethodPatch, c.agents.itemPath(agentID, "archival-memory", passageID), &body)
	if err != nil {
		return nil, refineNotFound(err, "Passage", passageID)
	}

	return passages, nil
}

// DeletePassage implements letta.MemoryClient.DeletePassage.
func (c *MemoryClient) DeletePassage(ctx context.Context, agentID, passageID string) error {
	err := requireID("id", agentID)
	if err != nil {
		return err
	}

	err = requireID("passage_id", passageID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, c.agents.itemPath(agentID, "archival-memory", passageID))
	if err != nil {
		return refineNotFound(err, "Passage", passageID)
	}

	return nil
}
