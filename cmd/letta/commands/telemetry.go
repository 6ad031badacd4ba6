package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
)

// NewTelemetryCommand creates the telemetry command group.
func NewTelemetryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Inspect provider traces",
		Long:  "Show the raw request and response exchanged with the model provider for a step",
	}

	cmd.AddCommand(newTelemetryGetCommand())

	return cmd
}

func newTelemetryGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get STEP_ID",
		Short: "Get a step's provider trace",
		Long:  "Display the provider request and response recorded for a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			trace, err := client.Telemetry().GetTrace(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get trace: %w", err)
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return renderDetails(cmd, trace, nil)
			}

			out := cmd.OutOrStdout()

			_, _ = fmt.Fprintf(out, "Step: %s\n", trace.StepID)
			_, _ = fmt.Fprintf(out, "Created: %s\n\nRequest:\n%s\n\nResponse:\n%s\n",
				formatTimestamp(trace.CreatedAt), indentJSON(trace.RequestJSON), indentJSON(trace.ResponseJSON))

			return nil
		},
	}
}

// indentJSON pretty-prints raw, returning it unchanged when it is not JSON.
func indentJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return NotAvailable
	}

	var buf bytes.Buffer

	err := json.Indent(&buf, raw, "", jsonIndent)
	if err != nil {
		return string(raw)
	}

	return buf.String()
}
