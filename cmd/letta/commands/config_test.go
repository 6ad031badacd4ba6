package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// useConfigFile points viper at a fresh config file in a temp directory.
func useConfigFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "letta", "config.yml")
	viper.SetConfigFile(path)
	t.Cleanup(viper.Reset)

	return path
}

func loadConfig(t *testing.T, path string) Config {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config Config
	require.NoError(t, yaml.Unmarshal(data, &config))

	return config
}

func TestConfigSetAndUnset(t *testing.T) {
	path := useConfigFile(t)

	set := newConfigSetCommand()
	cmd, buf := captureCommand()

	require.NoError(t, set.RunE(cmd, []string{"base_url", "http://localhost:8283"}))
	require.NoError(t, set.RunE(cmd, []string{"output", "json"}))
	assert.Contains(t, buf.String(), "Set base_url in "+path)

	config := loadConfig(t, path)
	assert.Equal(t, "http://localhost:8283", config.BaseURL)
	assert.Equal(t, "json", config.Output)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	unset := newConfigUnsetCommand()
	require.NoError(t, unset.RunE(cmd, []string{"output"}))

	config = loadConfig(t, path)
	assert.Empty(t, config.Output)
	assert.Equal(t, "http://localhost:8283", config.BaseURL)
}

func TestConfigSetRejectsInvalidValues(t *testing.T) {
	path := useConfigFile(t)

	set := newConfigSetCommand()
	cmd, _ := captureCommand()

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown key",
			args: []string{"colour", "blue"},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrUnknownConfigKey)
				assert.Contains(t, err.Error(), "api_key, base_url, output, project, timeout")
			},
		},
		{
			name:  "bad output",
			args:  []string{"output", "xml"},
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrInvalidOutputFormat) },
		},
		{
			name:  "empty api key",
			args:  []string{"api_key", ""},
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrEmptyAPIKey) },
		},
		{
			name:  "bad timeout",
			args:  []string{"timeout", "soon"},
			check: func(t *testing.T, err error) { require.ErrorContains(t, err, "invalid timeout") },
		},
		{
			name:  "bad base url",
			args:  []string{"base_url", "://nope"},
			check: func(t *testing.T, err error) { require.Error(t, err) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, set.RunE(cmd, tt.args))
		})
	}

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "rejected values must not create the config file")
}

func TestConfigShowMasksAPIKey(t *testing.T) {
	path := useConfigFile(t)
	require.NoError(t, saveConfigFile(path, &Config{APIKey: "sk-let-0123456789abcdef", Project: "proj-1"}))

	viper.Set("output", "json")

	cmd, buf := captureCommand()
	require.NoError(t, newConfigShowCommand().RunE(cmd, nil))

	assert.Contains(t, buf.String(), `"api_key": "sk-l****"`)
	assert.Contains(t, buf.String(), `"project": "proj-1"`)
	assert.NotContains(t, buf.String(), "0123456789abcdef")
}

func TestReadConfigFileMissing(t *testing.T) {
	t.Parallel()

	config, err := readConfigFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, config)
}

func TestReadConfigFileInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated"), 0o600))

	_, err := readConfigFile(path)
	require.ErrorContains(t, err, "failed to parse config file")
}

func TestBuildClientConfig(t *testing.T) {
	tests := []struct {
		name        string
		settings    map[string]any
		wantBaseURL string
		wantAuth    bool
	}{
		{
			name:        "defaults to a local server",
			wantBaseURL: "http://localhost:8283",
		},
		{
			name:        "api key selects cloud",
			settings:    map[string]any{"api_key": "sk-test"},
			wantBaseURL: "https://api.letta.com",
			wantAuth:    true,
		},
		{
			name:        "explicit base url wins",
			settings:    map[string]any{"api_key": "sk-test", "base_url": "http://letta.internal:8283"},
			wantBaseURL: "http://letta.internal:8283",
			wantAuth:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)

			for key, value := range tt.settings {
				viper.Set(key, value)
			}

			cfg, err := buildClientConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.wantBaseURL, cfg.BaseURL())
			assert.Equal(t, tt.wantAuth, !cfg.Auth().IsZero())
		})
	}
}
