package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// Config is the persisted CLI configuration in ~/.letta/config.yml.
type Config struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"  yaml:"api_key,omitempty"`
	Project string `json:"project,omitempty"  yaml:"project,omitempty"`
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`
	Timeout string `json:"timeout,omitempty"  yaml:"timeout,omitempty"`
}

// configKeys maps settable keys to a validator and a field setter.
var configKeys = map[string]struct {
	validate func(value string) error
	set      func(config *Config, value string)
}{
	"base_url": {
		validate: func(value string) error {
			_, err := letta.NewClientConfig(value)

			return err
		},
		set: func(config *Config, value string) { config.BaseURL = value },
	},
	"api_key": {
		validate: func(value string) error {
			if value == "" {
				return ErrEmptyAPIKey
			}

			return nil
		},
		set: func(config *Config, value string) { config.APIKey = value },
	},
	"project": {
		set: func(config *Config, value string) { config.Project = value },
	},
	"output": {
		validate: func(value string) error {
			switch value {
			case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
				return nil
			default:
				return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, value)
			}
		},
		set: func(config *Config, value string) { config.Output = value },
	},
	"timeout": {
		validate: func(value string) error {
			_, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid timeout: %w", err)
			}

			return nil
		},
		set: func(config *Config, value string) { config.Timeout = value },
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the Letta CLI config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the stored configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			if config.APIKey != "" {
				config.APIKey = letta.Redact(config.APIKey)
			}

			return renderDetails(cmd, config, func(table *tablewriter.Table) {
				_ = table.Append("Config File", path)
				_ = table.Append("Base URL", orNotAvailable(config.BaseURL))
				_ = table.Append("API Key", orNotAvailable(config.APIKey))
				_ = table.Append("Project", orNotAvailable(config.Project))
				_ = table.Append("Output", orNotAvailable(config.Output))
				_ = table.Append("Timeout", orNotAvailable(config.Timeout))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + configKeyList(),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			handler, ok := configKeys[key]
			if !ok {
				return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownConfigKey, key, configKeyList())
			}

			if handler.validate != nil {
				err := handler.validate(value)
				if err != nil {
					return err
				}
			}

			return updateConfigFile(cmd, func(config *Config) {
				handler.set(config, value)
			}, "Set "+key)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + configKeyList(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			handler, ok := configKeys[key]
			if !ok {
				return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownConfigKey, key, configKeyList())
			}

			return updateConfigFile(cmd, func(config *Config) {
				handler.set(config, "")
			}, "Unset "+key)
		},
	}
}

func configKeyList() string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return strings.Join(keys, ", ")
}

// ConfigDir returns ~/.letta.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".letta"), nil
}

// configFilePath returns the file viper loaded, or ~/.letta/config.yml.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.yml"), nil
}

// readConfigFile loads path. A missing file is an empty config.
func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	// path comes from the --config flag or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// saveConfigFile writes config to path with owner-only permissions.
func saveConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// updateConfigFile applies mutate to the stored config and saves it.
func updateConfigFile(cmd *cobra.Command, mutate func(config *Config), action string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	config, err := readConfigFile(path)
	if err != nil {
		return err
	}

	mutate(config)

	err = saveConfigFile(path, config)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s in %s\n", action, path)

	return nil
}
