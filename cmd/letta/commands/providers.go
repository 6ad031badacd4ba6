package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewProvidersCommand creates the providers command group.
func NewProvidersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "providers",
		Aliases: []string{"provider"},
		Short:   "Manage model providers",
		Long:    "List, check and delete custom LLM provider accounts",
	}

	cmd.AddCommand(newProvidersListCommand())
	cmd.AddCommand(newProvidersCheckCommand())
	cmd.AddCommand(newProvidersDeleteCommand())

	return cmd
}

func newProvidersListCommand() *cobra.Command {
	var (
		limit         int
		before, after string
		providerType  string
		category      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List providers",
		Long:  "List configured providers; secrets are never shown",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			providers, err := client.Providers().List(commandContext(cmd), &letta.ListProvidersParams{
				ListParams:       limitParams(limit, before, after),
				ProviderType:     letta.ProviderType(providerType),
				ProviderCategory: letta.ProviderCategory(category),
			})
			if err != nil {
				return fmt.Errorf("failed to list providers: %w", err)
			}

			for i := range providers {
				providers[i].APIKey = ""
				providers[i].AccessKey = ""
				providers[i].SecretKey = ""
			}

			return renderList(cmd, providers, "providers", []string{"ID", "Name", "Type", "Category", "Base URL"}, func(provider letta.Provider) []string {
				return []string{
					provider.ID,
					provider.Name,
					string(provider.ProviderType),
					string(provider.ProviderCategory),
					orNotAvailable(provider.BaseURL),
				}
			})
		},
	}

	addListFlags(cmd, &limit, &before, &after)
	cmd.Flags().StringVar(&providerType, "type", "", "filter by provider type")
	cmd.Flags().StringVar(&category, "category", "", "filter by category (base or byok)")

	return cmd
}

func newProvidersCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check PROVIDER_ID",
		Short: "Check provider credentials",
		Long:  "Ask the server to validate a provider's credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			check, err := client.Providers().Check(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to check provider: %w", err)
			}

			if !check.Status {
				return fmt.Errorf("%w: %s", ErrProviderRejected, orNotAvailable(check.Error))
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Provider %s credentials are valid\n", args[0])

			return nil
		},
	}
}

func newProvidersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROVIDER_ID...",
		Short: "Delete providers",
		Long:  "Delete one or more custom providers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return deleteEach(cmd, "provider", args, func(ctx context.Context, id string) error {
				return client.Providers().Delete(ctx, id)
			})
		},
	}
}
