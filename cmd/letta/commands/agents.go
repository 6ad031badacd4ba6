package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewAgentsCommand creates the agents command group.
func NewAgentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agents",
		Aliases: []string{"agent"},
		Short:   "Manage agents",
		Long:    "List, inspect, create, export, import and delete Letta agents",
	}

	cmd.AddCommand(newAgentsListCommand())
	cmd.AddCommand(newAgentsGetCommand())
	cmd.AddCommand(newAgentsCreateCommand())
	cmd.AddCommand(newAgentsDeleteCommand())
	cmd.AddCommand(newAgentsCountCommand())
	cmd.AddCommand(newAgentsExportCommand())
	cmd.AddCommand(newAgentsImportCommand())

	return cmd
}

func newAgentsListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		name          string
		query         string
		tags          []string
		matchAllTags  bool
		all           bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agents",
		Long:  "List agents, optionally filtered by name, tags or free text",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &letta.ListAgentsParams{
				ListParams:   limitParams(limit, before, after),
				Name:         name,
				QueryText:    query,
				Tags:         tags,
				MatchAllTags: matchAllTags,
			}

			ctx := commandContext(cmd)

			var agents []letta.Agent
			if all {
				agents, err = client.Agents().ListStream(params).Collect(ctx)
			} else {
				agents, err = client.Agents().List(ctx, params)
			}

			if err != nil {
				return fmt.Errorf("failed to list agents: %w", err)
			}

			return renderList(cmd, agents, "agents", []string{"ID", "Name", "Type", "Model", "Tags", "Created"}, agentRow)
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().StringVar(&name, "name", "", "filter by agent name")
	cmd.Flags().StringVar(&query, "query", "", "search agent names")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "filter by tags")
	cmd.Flags().BoolVar(&matchAllTags, "match-all-tags", false, "require every tag instead of any")
	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")

	return cmd
}

func agentRow(agent letta.Agent) []string {
	model := NotAvailable
	if agent.LLMConfig != nil && agent.LLMConfig.Model != "" {
		model = agent.LLMConfig.Model
	}

	return []string{
		agent.ID,
		agent.Name,
		orNotAvailable(string(agent.AgentType)),
		model,
		strings.Join(agent.Tags, ", "),
		formatTimestamp(agent.CreatedAt),
	}
}

func newAgentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get AGENT_ID",
		Short: "Get agent details",
		Long:  "Display detailed information about a specific agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			agent, err := client.Agents().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get agent: %w", err)
			}

			return renderDetails(cmd, agent, func(table *tablewriter.Table) {
				addAgentRows(table, agent)
			})
		},
	}
}

func addAgentRows(table *tablewriter.Table, agent *letta.Agent) {
	_ = table.Append("ID", agent.ID)
	_ = table.Append("Name", agent.Name)
	appendRow(table, "Type", string(agent.AgentType))
	appendRow(table, "Description", agent.Description)

	if agent.LLMConfig != nil {
		appendRow(table, "Model", agent.LLMConfig.Model)

		if agent.LLMConfig.ContextWindow > 0 {
			_ = table.Append("Context Window", strconv.Itoa(agent.LLMConfig.ContextWindow))
		}
	}

	if agent.EmbeddingConfig != nil {
		appendRow(table, "Embedding", agent.EmbeddingConfig.EmbeddingModel)
	}

	appendRow(table, "Tags", strings.Join(agent.Tags, ", "))

	if len(agent.Tools) > 0 {
		names := make([]string, 0, len(agent.Tools))
		for _, tool := range agent.Tools {
			names = append(names, tool.Name)
		}

		_ = table.Append("Tools", strings.Join(names, ", "))
	}

	if agent.Memory != nil {
		for _, block := range agent.Memory.Blocks {
			_ = table.Append("Memory: "+block.Label, truncate(block.Value, constants.TruncateLength))
		}
	}

	appendRow(table, "Project", agent.ProjectID)
	_ = table.Append("Created", formatTimestamp(agent.CreatedAt))
	_ = table.Append("Updated", formatTimestamp(agent.UpdatedAt))
}

func newAgentsCreateCommand() *cobra.Command {
	var (
		fromFile    string
		name        string
		model       string
		embedding   string
		system      string
		description string
		agentType   string
		tags        []string
		toolIDs     []string
		blocks      []string
		noBaseTools bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an agent",
		Long: `Create an agent from flags or from a JSON request file.

Memory blocks are given as label=value, e.g. --block human="Name: Sam".
Flags override the corresponding fields of --from-file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &letta.CreateAgentRequest{}

			if fromFile != "" {
				err := readJSONFile(fromFile, request)
				if err != nil {
					return err
				}
			}

			setIfChanged(cmd, "name", &request.Name, name)
			setIfChanged(cmd, "model", &request.Model, model)
			setIfChanged(cmd, "embedding", &request.Embedding, embedding)
			setIfChanged(cmd, "system", &request.System, system)
			setIfChanged(cmd, "description", &request.Description, description)

			if agentType != "" {
				request.AgentType = letta.AgentType(agentType)
			}

			if len(tags) > 0 {
				request.Tags = tags
			}

			if len(toolIDs) > 0 {
				request.ToolIDs = toolIDs
			}

			memoryBlocks, err := parseBlockFlags(blocks)
			if err != nil {
				return err
			}

			request.MemoryBlocks = append(request.MemoryBlocks, memoryBlocks...)

			if noBaseTools {
				request.IncludeBaseTools = letta.Bool(false)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			agent, err := client.Agents().Create(commandContext(cmd), request)
			if err != nil {
				return fmt.Errorf("failed to create agent: %w", err)
			}

			return renderDetails(cmd, agent, func(table *tablewriter.Table) {
				addAgentRows(table, agent)
			})
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON file holding the create request")
	cmd.Flags().StringVar(&name, "name", "", "agent name")
	cmd.Flags().StringVar(&model, "model", "", "model handle, e.g. openai/gpt-4o-mini")
	cmd.Flags().StringVar(&embedding, "embedding", "", "embedding handle, e.g. openai/text-embedding-3-small")
	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	cmd.Flags().StringVar(&description, "description", "", "agent description")
	cmd.Flags().StringVar(&agentType, "type", "", "agent type, e.g. memgpt_agent")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "agent tags")
	cmd.Flags().StringSliceVar(&toolIDs, "tool-id", nil, "ids of tools to attach")
	cmd.Flags().StringArrayVar(&blocks, "block", nil, "memory block as label=value (repeatable)")
	cmd.Flags().BoolVar(&noBaseTools, "no-base-tools", false, "do not attach the base tool set")

	return cmd
}

// parseBlockFlags turns label=value pairs into memory blocks.
func parseBlockFlags(values []string) ([]letta.CreateBlockRequest, error) {
	blocks := make([]letta.CreateBlockRequest, 0, len(values))

	for _, value := range values {
		label, text, found := strings.Cut(value, "=")
		if !found || label == "" {
			return nil, fmt.Errorf("%w: block %q must be label=value", ErrInvalidJSONInput, value)
		}

		blocks = append(blocks, letta.CreateBlockRequest{Label: label, Value: text})
	}

	return blocks, nil
}

func setIfChanged(cmd *cobra.Command, flag string, target *string, value string) {
	if cmd.Flags().Changed(flag) {
		*target = value
	}
}

// readJSONFile decodes a JSON request body from path.
func readJSONFile(path string, v any) error {
	// path is supplied by the user on the command line
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	err = json.Unmarshal(data, v)
	if err != nil {
		return fmt.Errorf("%w in %s: %w", ErrInvalidJSONInput, path, err)
	}

	return nil
}

func newAgentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete AGENT_ID...",
		Short: "Delete agents",
		Long:  "Delete one or more agents. Every id is attempted and failures are reported together",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return deleteEach(cmd, "agent", args, func(ctx context.Context, id string) error {
				return client.Agents().Delete(ctx, id)
			})
		},
	}
}

func newAgentsCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count agents",
		Long:  "Display the number of agents visible to the caller",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			count, err := client.Agents().Count(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to count agents: %w", err)
			}

			return renderDetails(cmd, map[string]int{"count": count}, func(table *tablewriter.Table) {
				_ = table.Append("Agents", strconv.Itoa(count))
			})
		},
	}
}

func newAgentsExportCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export AGENT_ID",
		Short: "Export an agent",
		Long:  "Write the serialized agent file (JSON) to stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := client.Agents().Export(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to export agent: %w", err)
			}

			var pretty bytes.Buffer

			err = json.Indent(&pretty, data, "", jsonIndent)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidJSONInput, err)
			}

			pretty.WriteByte('\n')

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(pretty.Bytes())

				return err
			}

			err = os.WriteFile(outputFile, pretty.Bytes(), constants.ConfigFilePerm)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported agent %s to %s\n", args[0], outputFile)

			return nil
		},
	}

	cmd.Flags().StringVar(&outputFile, "file", "", "write the export to this file")

	return cmd
}

func newAgentsImportCommand() *cobra.Command {
	var (
		projectID        string
		appendCopySuffix bool
		overrideTools    bool
		stripMessages    bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import an agent",
		Long:  "Create an agent from a file written by agents export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			request := &letta.ImportAgentRequest{
				FileName:  filepath.Base(args[0]),
				Data:      data,
				ProjectID: projectID,
			}

			flags := cmd.Flags()
			if flags.Changed("append-copy-suffix") {
				request.AppendCopySuffix = letta.Bool(appendCopySuffix)
			}

			if flags.Changed("override-existing-tools") {
				request.OverrideExistingTools = letta.Bool(overrideTools)
			}

			if flags.Changed("strip-messages") {
				request.StripMessages = letta.Bool(stripMessages)
			}

			agent, err := client.Agents().Import(commandContext(cmd), request)
			if err != nil {
				return fmt.Errorf("failed to import agent: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported agent %s (%s)\n", agent.Name, agent.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "create the agent in this project")
	cmd.Flags().BoolVar(&appendCopySuffix, "append-copy-suffix", true, "append _copy to the agent name")
	cmd.Flags().BoolVar(&overrideTools, "override-existing-tools", true, "replace tools that already exist")
	cmd.Flags().BoolVar(&stripMessages, "strip-messages", false, "drop the message history")

	return cmd
}
