package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewBatchesCommand creates the batches command group.
func NewBatchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "batches",
		Aliases: []string{"batch"},
		Short:   "Inspect message batches",
		Long:    "List, inspect and cancel message batches sent to many agents at once",
	}

	cmd.AddCommand(newBatchesListCommand())
	cmd.AddCommand(newBatchesGetCommand())
	cmd.AddCommand(newBatchesCancelCommand())

	return cmd
}

func newBatchesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List batches",
		Long:  "List message batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			batches, err := client.Batches().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list batches: %w", err)
			}

			return renderList(cmd, batches, "batches", []string{"ID", "Status", "Created", "Completed"}, func(batch letta.BatchRun) []string {
				return []string{batch.ID, string(batch.Status), formatTimestamp(batch.CreatedAt), formatTimestamp(batch.CompletedAt)}
			})
		},
	}
}

func newBatchesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BATCH_ID",
		Short: "Get batch details",
		Long:  "Display the status of a message batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			batch, err := client.Batches().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get batch: %w", err)
			}

			return renderDetails(cmd, batch, func(table *tablewriter.Table) {
				addBatchRows(table, batch)
			})
		},
	}
}

func newBatchesCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel BATCH_ID",
		Short: "Cancel a batch",
		Long:  "Cancel a message batch that has not completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			batch, err := client.Batches().Cancel(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to cancel batch: %w", err)
			}

			return renderDetails(cmd, batch, func(table *tablewriter.Table) {
				addBatchRows(table, batch)
			})
		},
	}
}

func addBatchRows(table *tablewriter.Table, batch *letta.BatchRun) {
	appendRow(table, "ID", batch.ID)
	appendRow(table, "Status", string(batch.Status))
	appendRow(table, "Callback URL", batch.CallbackURL)
	appendRow(table, "Callback Error", batch.CallbackError)
	_ = table.Append("Created", formatTimestamp(batch.CreatedAt))
	_ = table.Append("Completed", formatTimestamp(batch.CompletedAt))
}
