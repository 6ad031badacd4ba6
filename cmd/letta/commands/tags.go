package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewTagsCommand creates the tags command.
func NewTagsCommand() *cobra.Command {
	var (
		limit int
		after string
		query string
		all   bool
	)

	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "List agent tags",
		Long:    "List the distinct tags used across agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &letta.ListTagsParams{
				ListParams: limitParams(limit, "", after),
				QueryText:  query,
			}

			ctx := commandContext(cmd)

			var tags []string
			if all {
				tags, err = client.Tags().ListStream(params).Collect(ctx)
			} else {
				tags, err = client.Tags().List(ctx, params)
			}

			if err != nil {
				return fmt.Errorf("failed to list tags: %w", err)
			}

			return renderList(cmd, tags, "tags", []string{"Tag"}, func(tag string) []string {
				return []string{tag}
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	cmd.Flags().StringVar(&after, "after", "", "return results after this tag")
	cmd.Flags().StringVar(&query, "query", "", "only list tags containing this text")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")

	return cmd
}
