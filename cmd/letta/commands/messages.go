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

// NewMessagesCommand creates the messages command group.
func NewMessagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"message", "msg"},
		Short:   "Read and send agent messages",
		Long:    "List an agent's conversation and send it new messages",
	}

	cmd.AddCommand(newMessagesListCommand())
	cmd.AddCommand(newMessagesSendCommand())
	cmd.AddCommand(newMessagesResetCommand())

	return cmd
}

func newMessagesListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		all           bool
	)

	cmd := &cobra.Command{
		Use:   "list AGENT_ID",
		Short: "List messages",
		Long:  "List the messages in an agent's conversation history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &letta.ListMessagesParams{ListParams: limitParams(limit, before, after)}
			ctx := commandContext(cmd)

			var messages []letta.LettaMessage
			if all {
				messages, err = client.Messages().ListStream(args[0], params).Collect(ctx)
			} else {
				messages, err = client.Messages().List(ctx, args[0], params)
			}

			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			return renderList(cmd, messages, "messages", []string{"ID", "Type", "Text", "Date"}, messageRow)
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")

	return cmd
}

func messageRow(msg letta.LettaMessage) []string {
	return []string{
		msg.ID,
		string(msg.MessageType),
		truncate(msg.Text(), constants.TruncateLength),
		formatTimestamp(msg.Date),
	}
}

func newMessagesSendCommand() *cobra.Command {
	var (
		role     string
		maxSteps int
		async    bool
	)

	cmd := &cobra.Command{
		Use:   "send AGENT_ID MESSAGE...",
		Short: "Send a message",
		Long:  "Send a message to an agent and print its response",
		Args:  cobra.MinimumNArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			message := letta.UserMessage(strings.Join(args[1:], " "))
			message.Role = letta.MessageRole(role)

			request := &letta.SendMessageRequest{Messages: []letta.MessageCreate{message}}
			if maxSteps > 0 {
				request.MaxSteps = letta.Int(maxSteps)
			}

			ctx := commandContext(cmd)

			if async {
				run, err := client.Messages().SendAsync(ctx, args[0], request)
				if err != nil {
					return fmt.Errorf("failed to send message: %w", err)
				}

				return renderDetails(cmd, run, func(table *tablewriter.Table) {
					addJobRows(table, run)
				})
			}

			response, err := client.Messages().Send(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}

			return renderSendResponse(cmd, response)
		},
	}

	cmd.Flags().StringVar(&role, "role", string(letta.RoleUser), "message role (user, system, assistant)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "maximum agent steps (0 uses the server default)")
	cmd.Flags().BoolVar(&async, "async", false, "send in the background and print the run")

	return cmd
}

func renderSendResponse(cmd *cobra.Command, response *letta.LettaResponse) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		return renderDetails(cmd, response, nil)
	}

	err = renderList(cmd, response.Messages, "messages", []string{"ID", "Type", "Text", "Date"}, messageRow)
	if err != nil {
		return err
	}

	stopReason := NotAvailable
	if response.StopReason != nil {
		stopReason = response.StopReason.StopReason
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nStop reason: %s, steps: %d, tokens: %d\n",
		stopReason, response.Usage.StepCount, response.Usage.TotalTokens)

	return nil
}

func newMessagesResetCommand() *cobra.Command {
	var addDefaults bool

	cmd := &cobra.Command{
		Use:   "reset AGENT_ID",
		Short: "Reset messages",
		Long:  "Clear an agent's conversation history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			agent, err := client.Messages().Reset(commandContext(cmd), args[0], addDefaults)
			if err != nil {
				return fmt.Errorf("failed to reset messages: %w", err)
			}

			return renderDetails(cmd, agent, func(table *tablewriter.Table) {
				_ = table.Append("ID", agent.ID)
				_ = table.Append("Name", agent.Name)
				_ = table.Append("Messages", strconv.Itoa(len(agent.MessageIDs)))
			})
		},
	}

	cmd.Flags().BoolVar(&addDefaults, "add-default-messages", false, "re-add the default initial messages")

	return cmd
}
