package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Manage background jobs",
		Long:    "List, inspect, delete and wait for background jobs such as file uploads",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsGetCommand())
	cmd.AddCommand(newJobsDeleteCommand())
	cmd.AddCommand(newJobsPollCommand())

	return cmd
}

func newJobsListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		active        bool
		sourceID      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Long:  "List jobs, optionally only the ones still pending or running",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &letta.ListJobsParams{
				ListParams: limitParams(limit, before, after),
				SourceID:   sourceID,
			}

			ctx := commandContext(cmd)

			var jobs []letta.Job
			if active {
				jobs, err = client.Jobs().ListActive(ctx, params)
			} else {
				jobs, err = client.Jobs().List(ctx, params)
			}

			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			return renderList(cmd, jobs, "jobs", jobHeader, jobRow)
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().BoolVar(&active, "active", false, "only list pending and running jobs")
	cmd.Flags().StringVar(&sourceID, "source", "", "only list jobs for this source")

	return cmd
}

var jobHeader = []string{"ID", "Type", "Status", "Created", "Completed"}

func jobRow(job letta.Job) []string {
	return []string{
		job.ID,
		orNotAvailable(job.JobType),
		string(job.Status),
		formatTimestamp(job.CreatedAt),
		formatTimestamp(job.CompletedAt),
	}
}

// addJobRows fills a details table for a job or run.
func addJobRows(table *tablewriter.Table, job *letta.Job) {
	_ = table.Append("ID", job.ID)
	appendRow(table, "Type", job.JobType)
	_ = table.Append("Status", string(job.Status))
	appendRow(table, "Callback URL", job.CallbackURL)

	if job.CallbackStatusCode != nil {
		_ = table.Append("Callback Status", strconv.Itoa(*job.CallbackStatusCode))
	}

	appendRow(table, "Callback Error", job.CallbackError)
	_ = table.Append("Created", formatTimestamp(job.CreatedAt))
	_ = table.Append("Updated", formatTimestamp(job.UpdatedAt))
	_ = table.Append("Completed", formatTimestamp(job.CompletedAt))
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get JOB_ID",
		Short: "Get job details",
		Long:  "Display detailed information about a specific job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			job, err := client.Jobs().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get job: %w", err)
			}

			return renderDetails(cmd, job, func(table *tablewriter.Table) {
				addJobRows(table, job)
			})
		},
	}
}

func newJobsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete JOB_ID...",
		Short: "Delete jobs",
		Long:  "Delete one or more jobs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return deleteEach(cmd, "job", args, func(ctx context.Context, id string) error {
				_, err := client.Jobs().Delete(ctx, id)

				return err
			})
		},
	}
}

func newJobsPollCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "poll JOB_ID",
		Short: "Wait for a job to finish",
		Long:  "Poll a job until it reaches a terminal status and display the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			if timeout > 0 {
				var cancel context.CancelFunc

				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			job, err := client.Jobs().PollUntilComplete(ctx, args[0])
			if err != nil && (job == nil || !errors.Is(err, letta.ErrJobFailed)) {
				return fmt.Errorf("failed to poll job: %w", err)
			}

			renderErr := renderDetails(cmd, job, func(table *tablewriter.Table) {
				addJobRows(table, job)
			})
			if renderErr != nil {
				return renderErr
			}

			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "wait", 0, "maximum time to wait; 0 uses the client default")

	return cmd
}
