package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewBlocksCommand creates the blocks command group.
func NewBlocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blocks",
		Aliases: []string{"block"},
		Short:   "Manage memory blocks",
		Long:    "List, inspect and delete standalone memory blocks",
	}

	cmd.AddCommand(newBlocksListCommand())
	cmd.AddCommand(newBlocksGetCommand())
	cmd.AddCommand(newBlocksDeleteCommand())

	return cmd
}

func newBlocksListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		label         string
		templates     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blocks",
		Long:  "List memory blocks, optionally filtered by label",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			blocks, err := client.Blocks().List(commandContext(cmd), &letta.ListBlocksParams{
				ListParams:    limitParams(limit, before, after),
				Label:         label,
				TemplatesOnly: templates,
			})
			if err != nil {
				return fmt.Errorf("failed to list blocks: %w", err)
			}

			return renderList(cmd, blocks, "blocks", []string{"ID", "Label", "Value", "Limit"}, func(block letta.Block) []string {
				return append([]string{block.ID}, blockSummaryRow(block)...)
			})
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().StringVar(&label, "label", "", "filter by label")
	cmd.Flags().BoolVar(&templates, "templates", false, "only list templates")

	return cmd
}

func newBlocksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BLOCK_ID",
		Short: "Get block details",
		Long:  "Display detailed information about a specific memory block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			block, err := client.Blocks().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get block: %w", err)
			}

			return renderDetails(cmd, block, func(table *tablewriter.Table) {
				addBlockRows(table, block)
			})
		},
	}
}

func addBlockRows(table *tablewriter.Table, block *letta.Block) {
	appendRow(table, "ID", block.ID)
	_ = table.Append("Label", block.Label)
	appendRow(table, "Name", block.Name)
	appendRow(table, "Description", block.Description)

	if block.Limit != nil {
		_ = table.Append("Limit", strconv.Itoa(*block.Limit))
	}

	_ = table.Append("Characters", strconv.Itoa(len(block.Value)))
	_ = table.Append("Read Only", strconv.FormatBool(block.ReadOnly))
	_ = table.Append("Value", truncate(block.Value, constants.TruncateLength*2))
}

func newBlocksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BLOCK_ID...",
		Short: "Delete blocks",
		Long:  "Delete one or more memory blocks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return deleteEach(cmd, "block", args, func(ctx context.Context, id string) error {
				return client.Blocks().Delete(ctx, id)
			})
		},
	}
}
