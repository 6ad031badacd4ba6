package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewToolsCommand creates the tools command group.
func NewToolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tools",
		Aliases: []string{"tool"},
		Short:   "Manage tools",
		Long:    "List, inspect, delete and attach tools, and browse MCP servers",
	}

	cmd.AddCommand(newToolsListCommand())
	cmd.AddCommand(newToolsGetCommand())
	cmd.AddCommand(newToolsDeleteCommand())
	cmd.AddCommand(newToolsAttachCommand())
	cmd.AddCommand(newToolsDetachCommand())
	cmd.AddCommand(newToolsMCPServersCommand())
	cmd.AddCommand(newToolsMCPToolsCommand())

	return cmd
}

func newToolsListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		name          string
		agentID       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tools",
		Long:  "List tools in the organization, or the tools attached to an agent with --agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			var tools []letta.Tool
			if agentID != "" {
				tools, err = client.Tools().ListForAgent(ctx, agentID)
			} else {
				tools, err = client.Tools().List(ctx, &letta.ListToolsParams{
					ListParams: limitParams(limit, before, after),
					Name:       name,
				})
			}

			if err != nil {
				return fmt.Errorf("failed to list tools: %w", err)
			}

			return renderList(cmd, tools, "tools", []string{"ID", "Name", "Type", "Description"}, func(tool letta.Tool) []string {
				return []string{tool.ID, tool.Name, orNotAvailable(string(tool.ToolType)), truncate(tool.Description, constants.TruncateLength)}
			})
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().StringVar(&name, "name", "", "filter by tool name")
	cmd.Flags().StringVar(&agentID, "agent", "", "list the tools attached to this agent")

	return cmd
}

func newToolsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TOOL_ID",
		Short: "Get tool details",
		Long:  "Display detailed information about a specific tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			tool, err := client.Tools().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get tool: %w", err)
			}

			return renderDetails(cmd, tool, func(table *tablewriter.Table) {
				_ = table.Append("ID", tool.ID)
				_ = table.Append("Name", tool.Name)
				appendRow(table, "Type", string(tool.ToolType))
				appendRow(table, "Source Type", tool.SourceType)
				appendRow(table, "Description", tool.Description)
				appendRow(table, "Tags", strings.Join(tool.Tags, ", "))
				_ = table.Append("Created", formatTimestamp(tool.CreatedAt))
				_ = table.Append("Updated", formatTimestamp(tool.UpdatedAt))
			})
		},
	}
}

func newToolsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TOOL_ID...",
		Short: "Delete tools",
		Long:  "Delete one or more tools",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return deleteEach(cmd, "tool", args, func(ctx context.Context, id string) error {
				return client.Tools().Delete(ctx, id)
			})
		},
	}
}

func newToolsAttachCommand() *cobra.Command {
	return newToolLinkCommand("attach", "Attach a tool to an agent", func(ctx context.Context, client letta.Client, agentID, toolID string) (*letta.Agent, error) {
		return client.Tools().AttachToAgent(ctx, agentID, toolID)
	})
}

func newToolsDetachCommand() *cobra.Command {
	return newToolLinkCommand("detach", "Detach a tool from an agent", func(ctx context.Context, client letta.Client, agentID, toolID string) (*letta.Agent, error) {
		return client.Tools().DetachFromAgent(ctx, agentID, toolID)
	})
}

func newToolLinkCommand(verb, short string, link func(ctx context.Context, client letta.Client, agentID, toolID string) (*letta.Agent, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " AGENT_ID TOOL_ID",
		Short: short,
		Long:  short + " and list the agent's tools afterwards",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			agent, err := link(commandContext(cmd), client, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to %s tool: %w", verb, err)
			}

			return renderList(cmd, agent.Tools, "tools", []string{"ID", "Name", "Type"}, func(tool letta.Tool) []string {
				return []string{tool.ID, tool.Name, orNotAvailable(string(tool.ToolType))}
			})
		},
	}
}

func newToolsMCPServersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-servers",
		Short: "List MCP servers",
		Long:  "List the Model Context Protocol servers configured on the Letta server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			servers, err := client.Tools().ListMCPServers(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list MCP servers: %w", err)
			}

			names := make([]string, 0, len(servers))
			for name := range servers {
				names = append(names, name)
			}

			sort.Strings(names)

			list := make([]letta.MCPServer, 0, len(names))
			for _, name := range names {
				list = append(list, servers[name])
			}

			return renderList(cmd, list, "MCP servers", []string{"Name", "Type", "Endpoint"}, func(server letta.MCPServer) []string {
				endpoint := server.ServerURL
				if endpoint == "" {
					endpoint = strings.TrimSpace(server.Command + " " + strings.Join(server.Args, " "))
				}

				return []string{server.ServerName, server.Type, orNotAvailable(endpoint)}
			})
		},
	}
}

func newToolsMCPToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-tools SERVER_NAME",
		Short: "List MCP tools",
		Long:  "List the tools advertised by an MCP server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			tools, err := client.Tools().ListMCPTools(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to list MCP tools: %w", err)
			}

			return renderList(cmd, tools, "MCP tools", []string{"Name", "Description", "Required"}, func(tool letta.MCPTool) []string {
				return []string{
					tool.Name,
					truncate(tool.Description, constants.TruncateLength),
					strings.Join(tool.InputSchema.Required, ", "),
				}
			})
		},
	}
}
