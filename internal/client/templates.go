package client

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/url"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

type agentsCreated struct {
	Agents []letta.Agent `json:"agents"`
}

type migratedAgent struct {
	Agent letta.Agent `json:"agent"`
}

type memoryVariables struct {
	Variables map[string]string `json:"variables"`
}

// TemplatesClient implements letta.TemplatesClient. Templates exist on
// Letta Cloud only.
type TemplatesClient struct {
	httpClient *http.Client
	agents     resource[letta.Agent]
}

// NewTemplatesClient creates a new templates client.
func NewTemplatesClient(httpClient *http.Client) *TemplatesClient {
	return &TemplatesClient{
		httpClient: httpClient,
		agents:     newResource[letta.Agent](httpClient, "Agent", "v1/agents"),
	}
}

// List implements letta.TemplatesClient.List.
func (c *TemplatesClient) List(ctx context.Context, params *letta.ListTemplatesParams) (*letta.TemplatesPage, error) {
	page, err := getJSON[letta.TemplatesPage](ctx, c.httpClient, "v1/templates", params.ToValues())
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// ListStream implements letta.TemplatesClient.ListStream.
func (c *TemplatesClient) ListStream(params *letta.ListTemplatesParams) *letta.Stream[letta.Template] {
	base := letta.ListTemplatesParams{}
	if params != nil {
		base = *params
	}

	return letta.NewOffsetStream(base.Offset, base.Limit, func(ctx context.Context, offset int, limit *int) ([]letta.Template, bool, error) {
		pageParams := base
		pageParams.Offset = offset
		pageParams.Limit = limit

		page, err := c.List(ctx, &pageParams)
		if err != nil {
			return nil, false, err
		}

		return page.Templates, page.HasNextPage, nil
	})
}

// CreateFromAgent implements letta.TemplatesClient.CreateFromAgent.
func (c *TemplatesClient) CreateFromAgent(ctx context.Context, agentID string, request *letta.CreateTemplateRequest) (*letta.TemplateCreated, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	if request == nil {
		request = &letta.CreateTemplateRequest{}
	}

	created, err := sendJSON[letta.TemplateCreated](ctx, c.httpClient, nethttp.MethodPost, c.agents.itemPath(agentID, "template"), request)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return &created, nil
}

// Version implements letta.TemplatesClient.Version. The raw answer is the
// new version name, or the agent state when returnAgentState is set.
func (c *TemplatesClient) Version(ctx context.Context, agentID string, request *letta.VersionTemplateRequest, returnAgentState bool) (json.RawMessage, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	if request == nil {
		request = &letta.VersionTemplateRequest{}
	}

	var query url.Values
	if returnAgentState {
		query = url.Values{"return_agent_state": []string{"true"}}
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodPost,
		Path:   c.agents.itemPath(agentID, "version-template"),
		Query:  query,
		Body:   request,
	})
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return json.RawMessage(resp.Body), nil
}

// MigrateAgent implements letta.TemplatesClient.MigrateAgent.
func (c *TemplatesClient) MigrateAgent(ctx context.Context, agentID string, request *letta.MigrateAgentRequest) (*letta.Agent, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	migrated, err := sendJSON[migratedAgent](ctx, c.httpClient, nethttp.MethodPost, c.agents.itemPath(agentID, "migrate"), request)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return &migrated.Agent, nil
}

// CreateAgents implements letta.TemplatesClient.CreateAgents.
// templateVersion has the form "name:version" or "name:latest".
func (c *TemplatesClient) CreateAgents(ctx context.Context, project, templateVersion string, request *letta.CreateAgentsFromTemplateRequest) ([]letta.Agent, error) {
	err := requireID("project", project)
	if err != nil {
		return nil, err
	}

	err = requireID("template_version", templateVersion)
	if err != nil {
		return nil, err
	}

	if request == nil {
		request = &letta.CreateAgentsFromTemplateRequest{}
	}

	created, err := sendJSON[agentsCreated](ctx, c.httpClient, nethttp.MethodPost, joinPath("v1/templates", project, templateVersion, "agents"), request)
	if err != nil {
		return nil, refineNotFound(err, "Template", templateVersion)
	}

	return created.Agents, nil
}

// MemoryVariables implements letta.TemplatesClient.MemoryVariables.
func (c *TemplatesClient) MemoryVariables(ctx context.Context, agentID string) (map[string]string, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	variables, err := getJSON[memoryVariables](ctx, c.httpClient, c.agents.itemPath(agentID, "core-memory", "variables"), nil)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return variables.Variables, nil
}
