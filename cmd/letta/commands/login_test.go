package commands

import (
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func TestLoginSavesVerifiedKey(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-new-key-123456" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	path := useConfigFile(t)
	baseURL := viper.GetString("base_url")

	cmd := NewLoginCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--key", "sk-new-key-123456"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Saved API key sk-n****")

	config := loadConfig(t, path)
	assert.Equal(t, "sk-new-key-123456", config.APIKey)
	assert.Equal(t, baseURL, config.BaseURL)
}

func TestLoginRejectsKey(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid API key"}`))
	})

	path := useConfigFile(t)

	cmd := NewLoginCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--key", "sk-bad"})

	err := cmd.Execute()
	require.ErrorContains(t, err, "API key rejected")

	config, readErr := readConfigFile(path)
	require.NoError(t, readErr)
	assert.Empty(t, config.APIKey)
}

func TestLoginReadsKeyFromStdin(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) { // #nosec G115
		t.Skip("stdin is a terminal; the prompt would read from it")
	}

	path := useConfigFile(t)

	cmd := NewLoginCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("  sk-piped-key-0000  \n"))
	cmd.SetArgs([]string{"--skip-verify"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "sk-piped-key-0000", loadConfig(t, path).APIKey)
}

func TestLogoutClearsKey(t *testing.T) {
	path := useConfigFile(t)
	require.NoError(t, saveConfigFile(path, &Config{APIKey: "sk-old", BaseURL: "http://localhost:8283"}))

	cmd := NewLogoutCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Removed API key in "+path)

	config := loadConfig(t, path)
	assert.Empty(t, config.APIKey)
	assert.Equal(t, "http://localhost:8283", config.BaseURL)
}
