package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewMemoryCommand creates the memory command group.
func NewMemoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect agent memory",
		Long:  "Show an agent's core memory and read or edit its blocks",
	}

	cmd.AddCommand(newMemoryShowCommand())
	cmd.AddCommand(newMemoryBlockCommand())
	cmd.AddCommand(newMemoryPassagesCommand())

	return cmd
}

func newMemoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show AGENT_ID",
		Short: "Show core memory",
		Long:  "Display the blocks of an agent's core memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			memory, err := client.Memory().Core(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get core memory: %w", err)
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return renderDetails(cmd, memory, nil)
			}

			return renderList(cmd, memory.Blocks, "memory blocks", []string{"Label", "Value", "Limit"}, blockSummaryRow)
		},
	}
}

func blockSummaryRow(block letta.Block) []string {
	limit := NotAvailable
	if block.Limit != nil {
		limit = strconv.Itoa(*block.Limit)
	}

	return []string{block.Label, truncate(block.Value, constants.TruncateLength), limit}
}

func newMemoryBlockCommand() *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "block AGENT_ID LABEL",
		Short: "Show or set a memory block",
		Long:  "Display the core memory block with LABEL, or replace its value with --set",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			var block *letta.Block
			if cmd.Flags().Changed("set") {
				block, err = client.Memory().UpdateBlock(ctx, args[0], args[1], &letta.UpdateBlockRequest{Value: &value})
			} else {
				block, err = client.Memory().GetBlock(ctx, args[0], args[1])
			}

			if err != nil {
				return fmt.Errorf("failed to access memory block: %w", err)
			}

			return renderDetails(cmd, block, func(table *tablewriter.Table) {
				addBlockRows(table, block)
			})
		},
	}

	cmd.Flags().StringVar(&value, "set", "", "new block value")

	return cmd
}

func newMemoryPassagesCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		search        string
	)

	cmd := &cobra.Command{
		Use:   "passages AGENT_ID",
		Short: "List archival memory",
		Long:  "List or search the passages in an agent's archival memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			passages, err := client.Memory().ListPassages(commandContext(cmd), args[0], &letta.ListPassagesParams{
				ListParams: limitParams(limit, before, after),
				Search:     search,
			})
			if err != nil {
				return fmt.Errorf("failed to list passages: %w", err)
			}

			return renderList(cmd, passages, "passages", []string{"ID", "Text", "Created"}, func(p letta.Passage) []string {
				return []string{p.ID, truncate(p.Text, constants.TruncateLength), formatTimestamp(p.CreatedAt)}
			})
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().StringVar(&search, "search", "", "semantic search query")

	return cmd
}
