package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// Common constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formatting.
	jsonIndent = "  "
	yamlIndent = 2

	dateTimeFormat = "2006-01-02 15:04:05"
)

// Common static errors used throughout the commands package.
var (
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrEmptyAPIKey         = errors.New("API key must not be empty")
	ErrInvalidOutputFormat = errors.New("invalid output format, use table, json or yaml")
	ErrInvalidFeedback     = errors.New("feedback must be 'positive' or 'negative'")
	ErrInvalidJSONInput    = errors.New("invalid JSON input")
	ErrProviderRejected    = errors.New("provider credentials rejected")
)

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))
	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidOutputFormat, format)
	}
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", jsonIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderDetails writes one resource: JSON or YAML as is, or a Property/Value
// table filled by rows.
func renderDetails[T any](cmd *cobra.Command, data T, rows func(table *tablewriter.Table)) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch format {
	case constants.FormatJSON:
		return StandardJSONRenderer(out, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(out, data)
	default:
		table := tablewriter.NewWriter(out)
		table.Header("Property", "Value")
		rows(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// renderList writes a collection: JSON or YAML as is, or a table with one
// row per item.
func renderList[T any](cmd *cobra.Command, items []T, noun string, header []string, row func(T) []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch format {
	case constants.FormatJSON:
		return StandardJSONRenderer(out, items)
	case constants.FormatYAML:
		return StandardYAMLRenderer(out, items)
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintf(out, "No %s found\n", noun)

		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header(toCells(header)...)

	for _, item := range items {
		_ = table.Append(toCells(row(item))...)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}

	return cells
}

// appendRow adds a Property/Value row, skipping empty values.
func appendRow(table *tablewriter.Table, property, value string) {
	if value == "" {
		return
	}

	_ = table.Append(property, value)
}

// truncate shortens s to the table cell width.
func truncate(s string, length int) string {
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	if length <= 3 {
		return string(runes[:length])
	}

	return string(runes[:length-3]) + "..."
}

// formatTimestamp renders an optional timestamp for tables.
func formatTimestamp(ts *letta.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return NotAvailable
	}

	return ts.Format(dateTimeFormat)
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}

// limitParams builds the cursor shared by list commands.
func limitParams(limit int, before, after string) letta.ListParams {
	params := letta.ListParams{Before: before, After: after}
	if limit > 0 {
		params.Limit = letta.Int(limit)
	}

	return params
}

// addListFlags registers --limit, --before and --after.
func addListFlags(cmd *cobra.Command, limit *int, before, after *string) {
	cmd.Flags().IntVar(limit, "limit", constants.DefaultPageSize, "maximum number of results")
	cmd.Flags().StringVar(before, "before", "", "return results before this id")
	cmd.Flags().StringVar(after, "after", "", "return results after this id")
}

// printDeleted reports a successful deletion in table mode only.
func printDeleted(cmd *cobra.Command, noun, id string) {
	format, _ := outputFormat()
	if format != constants.FormatTable {
		return
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", noun, id)
}

// deleteEach deletes every id through a batch executor and aggregates the
// failures, so one missing resource does not stop the rest. Output follows
// the order of ids.
func deleteEach(cmd *cobra.Command, noun string, ids []string, del func(ctx context.Context, id string) error) error {
	builder := letta.NewBatchBuilder()
	for _, id := range ids {
		builder.AddCustom(id, func(ctx context.Context) (interface{}, error) {
			return nil, del(ctx, id)
		})
	}

	results, err := letta.NewBatchExecutor(nil, constants.DefaultBatchConcurrency).Execute(commandContext(cmd), builder.Build())
	if err != nil {
		return err
	}

	var result *multierror.Error

	for _, outcome := range results {
		if !outcome.Success {
			result = multierror.Append(result, fmt.Errorf("deleting %s %s: %w", noun, outcome.ID, outcome.Error))

			continue
		}

		printDeleted(cmd, noun, outcome.ID)
	}

	return result.ErrorOrNil()
}
