package client

import (
	"context"
	nethttp "net/http"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

const (
	mcpServersPath = "v1/tools/mcp/servers"
	composioPath   = "v1/tools/composio"
)

// ToolsClient implements letta.ToolsClient.
type ToolsClient struct {
	httpClient *http.Client
	tools      resource[letta.Tool]
	agents     resource[letta.Agent]
}

// NewToolsClient creates a new tools client.
func NewToolsClient(httpClient *http.Client) *ToolsClient {
	return &ToolsClient{
		httpClient: httpClient,
		tools:      newResource[letta.Tool](httpClient, "Tool", "v1/tools/"),
		agents:     newResource[letta.Agent](httpClient, "Agent", "v1/agents"),
	}
}

// List implements letta.ToolsClient.List.
func (c *ToolsClient) List(ctx context.Context, params *letta.ListToolsParams) ([]letta.Tool, error) {
	return c.tools.list(ctx, params.ToValues())
}

// ListStream implements letta.ToolsClient.ListStream.
func (c *ToolsClient) ListStream(params *letta.ListToolsParams) *letta.Stream[letta.Tool] {
	base := letta.ListToolsParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[letta.Tool], error) {
		pageParams := base
		pageParams.ListParams = cursor

		tools, err := c.List(ctx, &pageParams)
		if err != nil {
			return letta.Page[letta.Tool]{}, err
		}

		return letta.IDCursor(tools, func(tool letta.Tool) string { return tool.ID }, cursor.Limit), nil
	})
}

// Get implements letta.ToolsClient.Get.
func (c *ToolsClient) Get(ctx context.Context, id string) (*letta.Tool, error) {
	return c.tools.get(ctx, id)
}

// Create implements letta.ToolsClient.Create.
func (c *ToolsClient) Create(ctx context.Context, request *letta.CreateToolRequest) (*letta.Tool, error) {
	return c.tools.create(ctx, request)
}

// Update implements letta.ToolsClient.Update.
func (c *ToolsClient) Update(ctx context.Context, id string, request *letta.UpdateToolRequest) (*letta.Tool, error) {
	return c.tools.update(ctx, id, request)
}

// Upsert implements letta.ToolsClient.Upsert. A tool with the same name is
// replaced; otherwise a new one is created.
func (c *ToolsClient) Upsert(ctx context.Context, request *letta.CreateToolRequest) (*letta.Tool, error) {
	tool, err := sendJSON[letta.Tool](ctx, c.httpClient, nethttp.MethodPut, c.tools.collection, request)
	if err != nil {
		return nil, err
	}

	return &tool, nil
}

// Delete implements letta.ToolsClient.Delete.
func (c *ToolsClient) Delete(ctx context.Context, id string) error {
	return c.tools.delete(ctx, id)
}

// Count implements letta.ToolsClient.Count.
func (c *ToolsClient) Count(ctx context.Context) (int, error) {
	return c.tools.count(ctx)
}

// Run implements letta.ToolsClient.Run. The source is executed by the
// server without being saved.
func (c *ToolsClient) Run(ctx context.Context, request *letta.RunToolRequest) (*letta.ToolReturn, error) {
	result, err := sendJSON[letta.ToolReturn](ctx, c.httpClient, nethttp.MethodPost, "v1/tools/run", request)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AddBaseTools implements letta.ToolsClient.AddBaseTools.
func (c *ToolsClient) AddBaseTools(ctx context.Context) ([]letta.Tool, error) {
	return http.Send[[]letta.Tool](ctx, c.httpClient, &http.Request{
		Method: nethttp.MethodPost,
		Path:   "v1/tools/add-base-tools",
	})
}

// ListForAgent implements letta.ToolsClient.ListForAgent.
func (c *ToolsClient) ListForAgent(ctx context.Context, agentID string) ([]letta.Tool, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	tools, err := getJSON[[]letta.Tool](ctx, c.httpClient, c.agents.itemPath(agentID, "tools"), nil)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return tools, nil
}

// AttachToAgent implements letta.ToolsClient.AttachToAgent.
func (c *ToolsClient) AttachToAgent(ctx context.Context, agentID, toolID string) (*letta.Agent, error) {
	return linkAgent(ctx, c.agents, agentID, "tool_id", toolID, "tools", "attach")
}

// DetachFromAgent implements letta.ToolsClient.DetachFromAgent.
func (c *ToolsClient) DetachFromAgent(ctx context.Context, agentID, toolID string) (*letta.Agent, error) {
	return linkAgent(ctx, c.agents, agentID, "tool_id", toolID, "tools", "detach")
}

// ListMCPServers implements letta.ToolsClient.ListMCPServers. Servers are
// keyed by name.
func (c *ToolsClient) ListMCPServers(ctx context.Context) (map[string]letta.MCPServer, error) {
	return getJSON[map[string]letta.MCPServer](ctx, c.httpClient, mcpServersPath, nil)
}

// AddMCPServer implements letta.ToolsClient.AddMCPServer.
func (c *ToolsClient) AddMCPServer(ctx context.Context, server *letta.MCPServer) ([]letta.MCPServer, error) {
	if server != nil {
		err := requireID("server_name", server.ServerName)
		if err != nil {
			return nil, err
		}
	}

	return sendJSON[[]letta.MCPServer](ctx, c.httpClient, nethttp.MethodPut, mcpServersPath, server)
}

// DeleteMCPServer implements letta.ToolsClient.DeleteMCPServer.
func (c *ToolsClient) DeleteMCPServer(ctx context.Context, serverName string) error {
	err := requireID("server_name", serverName)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, joinPath(mcpServersPath, serverName))
	if err != nil {
		return refineNotFound(err, "MCPServer", serverName)
	}

	return nil
}

// ListMCPTools implements letta.ToolsClient.ListMCPTools.
func (c *ToolsClient) ListMCPTools(ctx context.Context, serverName string) ([]letta.MCPTool, error) {
	err := requireID("server_name", serverName)
	if err != nil {
		return nil, err
	}

	tools, err := getJSON[[]letta.MCPTool](ctx, c.httpClient, joinPath(mcpServersPath, serverName, "tools"), nil)
	if err != nil {
		return nil, refineNotFound(err, "MCPServer", serverName)
	}

	return tools, nil
}

// AddMCPTool implements letta.ToolsClient.AddMCPTool. The MCP tool is
// registered as a Letta tool that agents can attach.
func (c *ToolsClient) AddMCPTool(ctx context.Context, serverName, toolName string) (*letta.Tool, error) {
	err := requireID("server_name", serverName)
	if err != nil {
		return nil, err
	}

	err = requireID("tool_name", toolName)
	if err != nil {
		return nil, err
	}

	tool, err := http.Send[letta.Tool](ctx, c.httpClient, &http.Request{
		Method: nethttp.MethodPost,
		Path:   joinPath(mcpServersPath, serverName, toolName),
	})
	if err != nil {
		return nil, refineNotFound(err, "MCPTool", toolName)
	}

	return &tool, nil
}

// ListComposioApps implements letta.ToolsClient.ListComposioApps.
func (c *ToolsClient) ListComposioApps(ctx context.Context) ([]letta.ComposioApp, error) {
	return getJSON[[]letta.ComposioApp](ctx, c.httpClient, composioPath+"/apps", nil)
}

// ListComposioActions implements letta.ToolsClient.ListComposioActions.
func (c *ToolsClient) ListComposioActions(ctx context.Context, appName string) ([]letta.ComposioAction, error) {
	err := requireID("app_name", appName)
	if err != nil {
		return nil, err
	}

	actions, err := getJSON[[]letta.ComposioAction](ctx, c.httpClient, joinPath(composioPath, "apps", appName, "actions"), nil)
	if err != nil {
		return nil, refineNotFound(err, "ComposioApp", appName)
	}

	return actions, nil
}

// AddComposioTool implements letta.ToolsClient.AddComposioTool.
func (c *ToolsClient) AddComposioTool(ctx context.Context, actionName string) (*letta.Tool, error) {
	err := requireID("action_name", actionName)
	if err != nil {
		return nil, err
	}

	tool, err := http.Send[letta.Tool](ctx, c.httpClient, &http.Request{
		Method: nethttp.MethodPost,
		Path:   joinPath(composioPath, actionName),
	})
	if err != nil {
		return nil, refineNotFound(err, "ComposioAction", actionName)
	}

	return &tool, nil
}
