package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewTemplatesCommand creates the templates command group.
func NewTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Browse agent templates",
		Long:    "List Letta Cloud agent templates",
	}

	cmd.AddCommand(newTemplatesListCommand())

	return cmd
}

func newTemplatesListCommand() *cobra.Command {
	var (
		name      string
		projectID string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Long:  "List agent templates, following pages up to --limit results",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &letta.ListTemplatesParams{Name: name, ProjectID: projectID}

			templates, err := client.Templates().ListStream(params).Take(commandContext(cmd), limit)
			if err != nil {
				return fmt.Errorf("failed to list templates: %w", err)
			}

			return renderList(cmd, templates, "templates", []string{"ID", "Name"}, func(template letta.Template) []string {
				return []string{template.ID, template.Name}
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by template name")
	cmd.Flags().StringVar(&projectID, "project-id", "", "filter by project")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "maximum number of results")

	return cmd
}
