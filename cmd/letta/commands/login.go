package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiKey     string
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a Letta API key",
		Long:  "Prompt for a Letta API key, verify it against the API and save it to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				key, err := promptAPIKey(cmd)
				if err != nil {
					return err
				}

				apiKey = key
			}

			apiKey = strings.TrimSpace(apiKey)
			if apiKey == "" {
				return ErrEmptyAPIKey
			}

			if !skipVerify {
				err := verifyAPIKey(cmd, apiKey)
				if err != nil {
					return err
				}
			}

			baseURL := viper.GetString("base_url")

			return updateConfigFile(cmd, func(config *Config) {
				config.APIKey = apiKey
				if baseURL != "" {
					config.BaseURL = baseURL
				}
			}, "Saved API key "+letta.Redact(apiKey))
		},
	}

	cmd.Flags().StringVar(&apiKey, "key", "", "API key (prompted when omitted)")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save the key without calling the API")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		Long:  "Remove the Letta API key from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigFile(cmd, func(config *Config) {
				config.APIKey = ""
			}, "Removed API key")
		},
	}
}

// promptAPIKey reads the key without echo on a terminal, or a line from
// stdin otherwise.
func promptAPIKey(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd()) // #nosec G115 -- file descriptors fit in int

	if term.IsTerminal(fd) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API key: ")

		key, err := term.ReadPassword(fd)

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		return string(key), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return line, nil
}

// verifyAPIKey lists a single agent with the key to prove it is accepted.
func verifyAPIKey(cmd *cobra.Command, apiKey string) error {
	viper.Set("api_key", apiKey)

	client, err := CreateClient()
	if err != nil {
		return err
	}

	_, err = client.Agents().List(commandContext(cmd), &letta.ListAgentsParams{
		ListParams: letta.ListParams{Limit: letta.Int(1)},
	})
	if err != nil {
		if letta.IsUnauthorized(err) || letta.IsForbidden(err) {
			return fmt.Errorf("API key rejected: %w", err)
		}

		return fmt.Errorf("failed to connect to API: %w", err)
	}

	return nil
}
