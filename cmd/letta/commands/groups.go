package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Manage multi-agent groups",
		Long:    "List, inspect, reset and delete groups of agents that share a conversation",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsGetCommand())
	cmd.AddCommand(newGroupsResetCommand())
	cmd.AddCommand(newGroupsDeleteCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		managerType   string
		projectID     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long:  "List groups, optionally filtered by manager type or project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			groups, err := client.Groups().List(commandContext(cmd), &letta.ListGroupsParams{
				ListParams:  limitParams(limit, before, after),
				ManagerType: letta.ManagerType(managerType),
				ProjectID:   projectID,
			})
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			return renderList(cmd, groups, "groups", []string{"ID", "Manager", "Agents", "Description"}, func(group letta.Group) []string {
				return []string{
					group.ID,
					string(group.ManagerType),
					strconv.Itoa(len(group.AgentIDs)),
					truncate(group.Description, constants.TruncateLength),
				}
			})
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().StringVar(&managerType, "manager-type", "", "filter by manager type")
	cmd.Flags().StringVar(&projectID, "project-id", "", "filter by project")

	return cmd
}

func newGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUP_ID",
		Short: "Get group details",
		Long:  "Display detailed information about a specific group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			group, err := client.Groups().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get group: %w", err)
			}

			return renderDetails(cmd, group, func(table *tablewriter.Table) {
				appendRow(table, "ID", group.ID)
				appendRow(table, "Manager", string(group.ManagerType))
				appendRow(table, "Manager Agent", group.ManagerAgentID)
				appendRow(table, "Description", group.Description)
				appendRow(table, "Agents", strings.Join(group.AgentIDs, ", "))
				appendRow(table, "Shared Blocks", strings.Join(group.SharedBlockIDs, ", "))

				if group.MaxTurns != nil {
					_ = table.Append("Max Turns", strconv.Itoa(*group.MaxTurns))
				}

				_ = table.Append("Created", formatTimestamp(group.CreatedAt))
			})
		},
	}
}

func newGroupsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset GROUP_ID",
		Short: "Reset group messages",
		Long:  "Delete the conversation history of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Groups().Reset(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to reset group: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reset messages of group %s\n", args[0])

			return nil
		},
	}
}

func newGroupsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete GROUP_ID...",
		Short: "Delete groups",
		Long:  "Delete one or more groups; member agents are kept",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return deleteEach(cmd, "group", args, func(ctx context.Context, id string) error {
				return client.Groups().Delete(ctx, id)
			})
		},
	}
}
