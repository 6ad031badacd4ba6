package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewHealthCommand creates the health command.
func NewHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long:  "Report the status and version of the configured Letta server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			health, err := client.Health().Check(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to check health: %w", err)
			}

			return renderDetails(cmd, health, func(table *tablewriter.Table) {
				_ = table.Append("Base URL", client.Config().BaseURL())
				_ = table.Append("Status", health.Status)
				_ = table.Append("Version", health.Version)
			})
		},
	}
}
