package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewRunsCommand creates the runs command group.
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "runs",
		Aliases: []string{"run"},
		Short:   "Inspect agent runs",
		Long:    "List and inspect the runs created by asynchronous agent messages",
	}

	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsGetCommand())
	cmd.AddCommand(newRunsStepsCommand())

	return cmd
}

func newRunsListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		agentIDs      []string
		active        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		Long:  "List runs, optionally filtered by agent or limited to active runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &letta.ListRunsParams{
				ListParams: limitParams(limit, before, after),
				AgentIDs:   agentIDs,
			}

			ctx := commandContext(cmd)

			var runs []letta.Run
			if active {
				runs, err = client.Runs().ListActive(ctx, params)
			} else {
				runs, err = client.Runs().List(ctx, params)
			}

			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			return renderList(cmd, runs, "runs", jobHeader, jobRow)
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().StringSliceVar(&agentIDs, "agent", nil, "only list runs of these agents")
	cmd.Flags().BoolVar(&active, "active", false, "only list pending and running runs")

	return cmd
}

func newRunsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RUN_ID",
		Short: "Get run details",
		Long:  "Display detailed information about a specific run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			run, err := client.Runs().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get run: %w", err)
			}

			return renderDetails(cmd, run, func(table *tablewriter.Table) {
				addJobRows(table, run)
			})
		},
	}
}

func newRunsStepsCommand() *cobra.Command {
	var (
		limit         int
		before, after string
	)

	cmd := &cobra.Command{
		Use:   "steps RUN_ID",
		Short: "List run steps",
		Long:  "List the steps an agent took during a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := limitParams(limit, before, after)

			steps, err := client.Runs().ListSteps(commandContext(cmd), args[0], &params)
			if err != nil {
				return fmt.Errorf("failed to list run steps: %w", err)
			}

			return renderList(cmd, steps, "steps", stepHeader, stepRow)
		},
	}

	addListFlags(cmd, &limit, &before, &after)

	return cmd
}
