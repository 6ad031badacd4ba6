package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewProjectsCommand creates the projects command.
func NewProjectsCommand() *cobra.Command {
	var (
		name   string
		offset int
		limit  int
		all    bool
	)

	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "List Letta Cloud projects",
		Long:    "List the projects of the Letta Cloud organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &letta.ListProjectsParams{Name: name, Offset: offset}
			if limit > 0 {
				params.Limit = letta.Int(limit)
			}

			ctx := commandContext(cmd)

			var projects []letta.Project
			if all {
				projects, err = client.Projects().ListStream(params).Collect(ctx)
			} else {
				var page *letta.ProjectsPage

				page, err = client.Projects().List(ctx, params)
				if page != nil {
					projects = page.Projects
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return renderList(cmd, projects, "projects", []string{"ID", "Name", "Slug"}, func(project letta.Project) []string {
				return []string{project.ID, project.Name, project.Slug}
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by project name")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of projects to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results per page")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")

	return cmd
}
