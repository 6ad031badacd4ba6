package client

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// AgentsClient implements letta.AgentsClient.
type AgentsClient struct {
	httpClient *http.Client
	agents     resource[letta.Agent]
}

// NewAgentsClient creates a new agents client.
func NewAgentsClient(httpClient *http.Client) *AgentsClient {
	return &AgentsClient{
		httpClient: httpClient,
		agents:     newResource[letta.Agent](httpClient, "Agent", "v1/agents"),
	}
}

// List implements letta.AgentsClient.List.
func (c *AgentsClient) List(ctx context.Context, params *letta.ListAgentsParams) ([]letta.Agent, error) {
	return c.agents.list(ctx, params.ToValues())
}

// ListStream implements letta.AgentsClient.ListStream.
func (c *AgentsClient) ListStream(params *letta.ListAgentsParams) *letta.Stream[letta.Agent] {
	base := letta.ListAgentsParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[letta.Agent], error) {
		pageParams := base
		pageParams.ListParams = cursor

		agents, err := c.List(ctx, &pageParams)
		if err != nil {
			return letta.Page[letta.Agent]{}, err
		}

		return letta.IDCursor(agents, func(agent letta.Agent) string { return agent.ID }, cursor.Limit), nil
	})
}

// Get implements letta.AgentsClient.Get.
func (c *AgentsClient) Get(ctx context.Context, id string) (*letta.Agent, error) {
	return c.agents.get(ctx, id)
}

// Create implements letta.AgentsClient.Create.
func (c *AgentsClient) Create(ctx context.Context, request *letta.CreateAgentRequest) (*letta.Agent, error) {
	return c.agents.create(ctx, request)
}

// Update implements letta.AgentsClient.Update.
func (c *AgentsClient) Update(ctx context.Context, id string, request *letta.UpdateAgentRequest) (*letta.Agent, error) {
	return c.agents.update(ctx, id, request)
}

// Delete implements letta.AgentsClient.Delete.
func (c *AgentsClient) Delete(ctx context.Context, id string) error {
	return c.agents.delete(ctx, id)
}

// Count implements letta.AgentsClient.Count.
func (c *AgentsClient) Count(ctx context.Context) (int, error) {
	return c.agents.count(ctx)
}

// Export implements letta.AgentsClient.Export. The serialized agent is
// returned verbatim so it can be written to a file and imported elsewhere.
func (c *AgentsClient) Export(ctx context.Context, id string) (json.RawMessage, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	exported, err := getJSON[json.RawMessage](ctx, c.httpClient, c.agents.itemPath(id, "export"), nil)
	if err != nil {
		return nil, c.agents.refine(err, id)
	}

	return exported, nil
}

// Search implements letta.AgentsClient.Search.
func (c *AgentsClient) Search(ctx context.Context, request *letta.AgentsSearchRequest) (*letta.AgentsSearchResponse, error) {
	result, err := sendJSON[letta.AgentsSearchResponse](ctx, c.httpClient, nethttp.MethodPost, "v1/agents/search", request)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Summarize implements letta.AgentsClient.Summarize. It asks the server to
// compact the agent's message history down to maxMessageLength messages.
func (c *AgentsClient) Summarize(ctx context.Context, id string, maxMessageLength int) (*letta.Agent, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	if maxMessageLength <= 0 {
		return nil, &letta.InvalidConfigError{Field: "max_message_length", Reason: "must be greater than 0"}
	}

	query := url.Values{}
	query.Set("max_message_length", strconv.Itoa(maxMessageLength))

	agent, err := http.Send[letta.Agent](ctx, c.httpClient, &http.Request{
		Method: nethttp.MethodPost,
		Path:   c.agents.itemPath(id, "summarize"),
		Query:  query,
	})
	if err != nil {
		return nil, c.agents.refine(err, id)
	}

	return &agent, nil
}

// Import implements letta.AgentsClient.Import.
func (c *AgentsClient) Import(ctx context.Context, request *letta.ImportAgentRequest) (*letta.Agent, error) {
	err := requireRequest(request)
	if err != nil {
		return nil, err
	}

	if len(request.Data) == 0 {
		return nil, &letta.InvalidConfigError{Field: "file", Reason: letta.ErrEmptyPayload.Error()}
	}

	fileName := request.FileName
	if fileName == "" {
		fileName = "agent.af"
	}

	agent, err := http.Send[letta.Agent](ctx, c.httpClient, &http.Request{
		Method: nethttp.MethodPost,
		Path:   "v1/agents/import",
		Query:  request.ToValues(),
		Body: &http.MultipartBody{Files: []http.FileField{{
			FieldName:   "file",
			FileName:    fileName,
			ContentType: "application/json",
			Data:        request.Data,
		}}},
	})
	if err != nil {
		return nil, err
	}

	return &agent, nil
}
