package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useServer points the CLI at a test server for one test.
func useServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "sk-test")
	t.Cleanup(viper.Reset)
}

func TestAgentsListCommand(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []string
	)

	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()

		if r.URL.Path != "/v1/agents" || r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusBadRequest)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"agent-1","name":"support","tags":["prod"]},{"id":"agent-2","name":"triage"}]`))
	})
	viper.Set("output", "json")

	cmd := newAgentsListCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--limit", "2", "--tags", "prod"})

	require.NoError(t, cmd.Execute())

	var agents []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &agents))
	require.Len(t, agents, 2)
	assert.Equal(t, "support", agents[0].Name)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], "limit=2")
	assert.Contains(t, queries[0], "tags=prod")
}

func TestAgentsListCommandTable(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	cmd := newAgentsListCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No agents found\n", buf.String())
}

func TestAgentsDeleteCommandReportsEveryFailure(t *testing.T) {
	var (
		mu      sync.Mutex
		deleted []string
	)

	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)

			return
		}

		mu.Lock()
		deleted = append(deleted, r.URL.Path)
		mu.Unlock()

		if r.URL.Path == "/v1/agents/agent-missing" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Agent not found"}`))

			return
		}

		w.WriteHeader(http.StatusOK)
	})

	cmd := newAgentsDeleteCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"agent-1", "agent-missing", "agent-2"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deleting agent agent-missing")

	assert.Equal(t, "Deleted agent agent-1\nDeleted agent agent-2\n", buf.String())

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"/v1/agents/agent-1", "/v1/agents/agent-missing", "/v1/agents/agent-2"}, deleted)
}

func TestAgentsCountCommand(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agents/count" {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`3`))
	})
	viper.Set("output", "json")

	cmd := newAgentsCountCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `{"count":3}`, buf.String())
}

func TestAgentsExportCommandWritesFile(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agents/agent-1/export" {
			w.WriteHeader(http.StatusNotFound)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"agent_type":"memgpt_agent","name":"support"}`))
	})

	path := filepath.Join(t.TempDir(), "agent.json")

	cmd := newAgentsExportCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"agent-1", "--file", path})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"agent_type":"memgpt_agent","name":"support"}`, string(data))
}

func TestStepsFeedbackRejectsUnknownValue(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := newStepsFeedbackCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"step-1", "meh"})

	err := cmd.Execute()
	require.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestAgentsImportCommand(t *testing.T) {
	useServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agents/import" || r.URL.Query().Get("strip_messages") != "true" || r.URL.Query().Has("append_copy_suffix") {
			w.WriteHeader(http.StatusBadRequest)

			return
		}

		file, header, err := r.FormFile("file")
		if err != nil || header.Filename != "support.af" {
			w.WriteHeader(http.StatusBadRequest)

			return
		}
		_ = file.Close()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"agent-9","name":"support"}`))
	})

	path := filepath.Join(t.TempDir(), "support.af")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"support"}`), 0o600))

	cmd := newAgentsImportCommand()
	_, buf := captureCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--strip-messages"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Imported agent support (agent-9)\n", buf.String())
}
