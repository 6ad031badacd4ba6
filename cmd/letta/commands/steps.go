package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewStepsCommand creates the steps command group.
func NewStepsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "steps",
		Aliases: []string{"step"},
		Short:   "Inspect agent steps",
		Long:    "List and inspect individual agent steps and record feedback on them",
	}

	cmd.AddCommand(newStepsListCommand())
	cmd.AddCommand(newStepsGetCommand())
	cmd.AddCommand(newStepsFeedbackCommand())

	return cmd
}

var stepHeader = []string{"ID", "Agent", "Model", "Tokens", "Stop Reason", "Feedback"}

func stepRow(step letta.Step) []string {
	return []string{
		step.ID,
		orNotAvailable(step.AgentID),
		orNotAvailable(step.Model),
		strconv.Itoa(step.TotalTokens),
		orNotAvailable(step.StopReason),
		orNotAvailable(string(step.Feedback)),
	}
}

func newStepsListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		agentID       string
		runID         string
		model         string
		feedback      string
		all           bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List steps",
		Long:  "List agent steps filtered by agent, run, model or feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			stepFeedback := letta.StepFeedback(feedback)
			if feedback != "" && !stepFeedback.Valid() {
				return fmt.Errorf("%w: %s", ErrInvalidFeedback, feedback)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &letta.ListStepsParams{
				ListParams: limitParams(limit, before, after),
				AgentID:    agentID,
				RunID:      runID,
				Model:      model,
				Feedback:   stepFeedback,
			}

			ctx := commandContext(cmd)

			var steps []letta.Step
			if all {
				steps, err = client.Steps().ListStream(params).Collect(ctx)
			} else {
				steps, err = client.Steps().List(ctx, params)
			}

			if err != nil {
				return fmt.Errorf("failed to list steps: %w", err)
			}

			return renderList(cmd, steps, "steps", stepHeader, stepRow)
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().StringVar(&agentID, "agent", "", "only list steps of this agent")
	cmd.Flags().StringVar(&runID, "run", "", "only list steps of this run")
	cmd.Flags().StringVar(&model, "model", "", "only list steps that used this model")
	cmd.Flags().StringVar(&feedback, "feedback", "", "only list steps with this feedback (positive|negative)")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")

	return cmd
}

func newStepsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get STEP_ID",
		Short: "Get step details",
		Long:  "Display detailed information about a specific step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			step, err := client.Steps().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get step: %w", err)
			}

			return renderDetails(cmd, step, func(table *tablewriter.Table) {
				addStepRows(table, step)
			})
		},
	}
}

func addStepRows(table *tablewriter.Table, step *letta.Step) {
	_ = table.Append("ID", step.ID)
	appendRow(table, "Agent", step.AgentID)
	appendRow(table, "Run", step.RunID)
	appendRow(table, "Provider", step.ProviderName)
	appendRow(table, "Model", step.Model)
	_ = table.Append("Prompt Tokens", strconv.Itoa(step.PromptTokens))
	_ = table.Append("Completion Tokens", strconv.Itoa(step.CompletionTokens))
	_ = table.Append("Total Tokens", strconv.Itoa(step.TotalTokens))
	appendRow(table, "Stop Reason", step.StopReason)
	appendRow(table, "Feedback", string(step.Feedback))
	appendRow(table, "Trace ID", step.TraceID)
	appendRow(table, "Tags", strings.Join(step.Tags, ", "))
	_ = table.Append("Created", formatTimestamp(step.CreatedAt))
}

func newStepsFeedbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "feedback STEP_ID positive|negative",
		Short:     "Record step feedback",
		Long:      "Mark a step as a positive or negative example",
		Args:      cobra.ExactArgs(constants.MinimumArgumentCount),
		ValidArgs: []string{string(letta.FeedbackPositive), string(letta.FeedbackNegative)},
		RunE: func(cmd *cobra.Command, args []string) error {
			feedback := letta.StepFeedback(strings.ToLower(args[1]))
			if !feedback.Valid() {
				return fmt.Errorf("%w: %s", ErrInvalidFeedback, args[1])
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			step, err := client.Steps().Feedback(commandContext(cmd), args[0], feedback)
			if err != nil {
				return fmt.Errorf("failed to record feedback: %w", err)
			}

			return renderDetails(cmd, step, func(table *tablewriter.Table) {
				addStepRows(table, step)
			})
		},
	}
}
