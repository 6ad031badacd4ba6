package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewModelsCommand creates the models command group.
func NewModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "models",
		Aliases: []string{"model"},
		Short:   "List available models",
		Long:    "List the LLM and embedding models the server can use",
	}

	cmd.AddCommand(newModelsListCommand())
	cmd.AddCommand(newModelsEmbeddingCommand())

	return cmd
}

func modelsParams(categories []string, provider string) *letta.ListModelsParams {
	params := &letta.ListModelsParams{ProviderName: provider}
	for _, category := range categories {
		params.ProviderCategories = append(params.ProviderCategories, letta.ProviderCategory(category))
	}

	return params
}

func newModelsListCommand() *cobra.Command {
	var (
		categories []string
		provider   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List LLM models",
		Long:  "List the language models available to agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			models, err := client.Models().List(commandContext(cmd), modelsParams(categories, provider))
			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}

			return renderList(cmd, models, "models", []string{"Handle", "Model", "Provider", "Context Window"}, func(model letta.Model) []string {
				return []string{
					orNotAvailable(model.Handle),
					model.Model,
					orNotAvailable(model.ProviderName),
					strconv.Itoa(model.ContextWindow),
				}
			})
		},
	}

	cmd.Flags().StringSliceVar(&categories, "provider-category", nil, "filter by provider category (base, byok)")
	cmd.Flags().StringVar(&provider, "provider", "", "filter by provider name")

	return cmd
}

func newModelsEmbeddingCommand() *cobra.Command {
	var (
		categories []string
		provider   string
	)

	cmd := &cobra.Command{
		Use:   "embedding",
		Short: "List embedding models",
		Long:  "List the embedding models available to sources and archival memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			models, err := client.Models().ListEmbedding(commandContext(cmd), modelsParams(categories, provider))
			if err != nil {
				return fmt.Errorf("failed to list embedding models: %w", err)
			}

			return renderList(cmd, models, "embedding models", []string{"Handle", "Model", "Endpoint Type", "Dimensions"}, func(model letta.EmbeddingModel) []string {
				return []string{
					orNotAvailable(model.Handle),
					model.EmbeddingModel,
					orNotAvailable(model.EmbeddingEndpointType),
					strconv.Itoa(model.EmbeddingDim),
				}
			})
		},
	}

	cmd.Flags().StringSliceVar(&categories, "provider-category", nil, "filter by provider category (base, byok)")
	cmd.Flags().StringVar(&provider, "provider", "", "filter by provider name")

	return cmd
}
