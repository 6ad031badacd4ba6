package lettaclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
	"github.com/fivetwenty-io/letta-client/pkg/lettaclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		cfg, err := letta.NewClientConfig("https://letta.example.com")
		require.NoError(t, err)

		client, err := lettaclient.New(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://letta.example.com", client.Config().BaseURL())
	})

	t.Run("rejects an invalid config", func(t *testing.T) {
		t.Parallel()

		cfg, err := letta.NewClientConfig("https://letta.example.com")
		require.NoError(t, err)

		_, err = lettaclient.New(cfg.WithTimeout(-1))
		require.Error(t, err)
		assert.True(t, letta.IsInvalidConfig(err))
	})
}

func TestCloud(t *testing.T) {
	t.Parallel()

	client, err := lettaclient.Cloud("sk-let-test")
	require.NoError(t, err)
	assert.Equal(t, "https://api.letta.com", client.Config().BaseURL())
	assert.Equal(t, letta.AuthBearer, client.Config().Auth().Kind())

	_, err = lettaclient.Cloud("  ")
	require.Error(t, err)
	assert.True(t, letta.IsInvalidConfig(err))
}

func TestCloudWithProject(t *testing.T) {
	t.Parallel()

	client, err := lettaclient.CloudWithProject("sk-let-test", "project-1")
	require.NoError(t, err)
	assert.Equal(t, "project-1", client.Config().Headers().Get("X-Project"))
}

func TestLocal(t *testing.T) {
	t.Parallel()

	client, err := lettaclient.Local()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8283", client.Config().BaseURL())
	assert.True(t, client.Config().Auth().IsZero())
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	_, err := lettaclient.NewWithEndpoint("localhost:8283", letta.NoAuth())
	require.Error(t, err)
	assert.True(t, letta.IsInvalidConfig(err))
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantBaseURL string
		wantAuth    letta.AuthKind
		wantProject string
		wantErr     bool
	}{
		{
			name:        "nothing set targets a local server",
			wantBaseURL: "http://localhost:8283",
			wantAuth:    letta.AuthNone,
		},
		{
			name:        "api key targets cloud",
			env:         map[string]string{"LETTA_API_KEY": "sk-let-test", "LETTA_PROJECT": "project-1"},
			wantBaseURL: "https://api.letta.com",
			wantAuth:    letta.AuthBearer,
			wantProject: "project-1",
		},
		{
			name:        "explicit base url wins",
			env:         map[string]string{"LETTA_BASE_URL": "http://letta.internal:8283", "LETTA_TOKEN": "secret"},
			wantBaseURL: "http://letta.internal:8283",
			wantAuth:    letta.AuthBearer,
		},
		{
			name:    "invalid base url",
			env:     map[string]string{"LETTA_BASE_URL": "letta.internal"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{"LETTA_BASE_URL", "LETTA_PROJECT", "LETTA_API_KEY", "LETTA_TOKEN", "LETTA_AUTH_TOKEN"} {
				t.Setenv(name, tt.env[name])
			}

			cfg, err := lettaclient.ConfigFromEnv()
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBaseURL, cfg.BaseURL())
			assert.Equal(t, tt.wantAuth, cfg.Auth().Kind())
			assert.Equal(t, tt.wantProject, cfg.Headers().Get("X-Project"))
		})
	}
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/v1/health/":
			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(letta.Health{Version: "0.8.4", Status: "ok"})
		case "/v1/agents/missing-id":
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"detail":"Resource not found","resource_type":"Agent"}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := lettaclient.NewWithEndpoint(server.URL, letta.NoAuth())
	require.NoError(t, err)

	health, err := client.Health().Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "0.8.4", health.Version)

	_, err = client.Agents().Get(context.Background(), "missing-id")

	var notFoundErr *letta.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "Agent", notFoundErr.ResourceType)
	assert.Equal(t, "missing-id", notFoundErr.ID)
}
