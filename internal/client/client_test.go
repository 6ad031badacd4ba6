package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("zero config is rejected", func(t *testing.T) {
		t.Parallel()

		client, err := New(letta.ClientConfig{})
		require.Error(t, err)
		assert.Nil(t, client)
		assert.True(t, letta.IsInvalidConfig(err))
	})

	t.Run("no request at construction", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(unreachableHandler(t))
		defer server.Close()

		config, err := letta.NewClientConfig(server.URL)
		require.NoError(t, err)

		client, err := New(config)
		require.NoError(t, err)
		assert.Equal(t, server.URL, client.Config().BaseURL())
		assert.NotNil(t, client.Agents())
		assert.NotNil(t, client.Voice())
		assert.NotNil(t, client.Groups())
		assert.NotNil(t, client.Batches())
	})

	t.Run("configured headers and auth are sent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "Bearer sk-test", request.Header.Get("Authorization"))
			assert.Equal(t, "proj-1", request.Header.Get("X-Project"))
			writeJSON(writer, http.StatusOK, letta.Health{Status: "ok", Version: "0.6.0"})
		}))
		defer server.Close()

		config, err := letta.NewClientConfig(server.URL)
		require.NoError(t, err)

		client, err := New(config.WithAuth(letta.BearerAuth("sk-test")).WithProject("proj-1"))
		require.NoError(t, err)

		_, err = client.Health().Check(context.Background())
		require.NoError(t, err)
	})
}

func TestHealthClient_Check(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/health/", request.URL.Path)
		assert.Equal(t, http.MethodGet, request.Method)
		writeJSON(writer, http.StatusOK, map[string]string{"version": "0.6.0", "status": "ok"})
	})

	health, err := client.Health().Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "0.6.0", health.Version)
}

func TestResource_NotFoundRefinement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     map[string]string
		wantType string
		wantID   string
	}{
		{
			name:     "resource type hint in body",
			body:     map[string]string{"detail": "Resource not found", "resource_type": "Agent"},
			wantType: "Agent",
			wantID:   "missing-id",
		},
		{
			name:     "no hint falls back to facade resource",
			body:     map[string]string{"detail": "Not Found"},
			wantType: "Agent",
			wantID:   "missing-id",
		},
		{
			name:     "id taken from message",
			body:     map[string]string{"detail": "Agent with ID agent-123 not found"},
			wantType: "Agent",
			wantID:   "agent-123",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				writeJSON(writer, http.StatusNotFound, testCase.body)
			})

			agent, err := client.Agents().Get(context.Background(), "missing-id")
			require.Error(t, err)
			assert.Nil(t, agent)

			var notFound *letta.NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, testCase.wantType, notFound.ResourceType)
			assert.Equal(t, testCase.wantID, notFound.ID)
			assert.True(t, letta.IsNotFound(err))
		})
	}
}

func TestResource_EmptyIDRejectedLocally(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, unreachableHandler(t))
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"agents get", func() error {
			_, err := client.Agents().Get(ctx, "")

			return err
		}},
		{"agents delete", func() error {
			return client.Agents().Delete(ctx, "  ")
		}},
		{"blocks update", func() error {
			_, err := client.Blocks().Update(ctx, "", &letta.UpdateBlockRequest{})

			return err
		}},
		{"memory core", func() error {
			_, err := client.Memory().Core(ctx, "")

			return err
		}},
		{"messages list", func() error {
			_, err := client.Messages().List(ctx, "", nil)

			return err
		}},
		{"steps feedback", func() error {
			_, err := client.Steps().Feedback(ctx, "", letta.FeedbackPositive)

			return err
		}},
		{"telemetry trace", func() error {
			_, err := client.Telemetry().GetTrace(ctx, "")

			return err
		}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.call()
			require.Error(t, err)

			var configErr *letta.InvalidConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, "id", configErr.Field)
		})
	}
}

func TestResource_RequestValidation(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, unreachableHandler(t))
	ctx := context.Background()

	_, err := client.Blocks().Create(ctx, &letta.CreateBlockRequest{Value: "no label"})
	require.Error(t, err)

	var configErr *letta.InvalidConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "label", configErr.Field)

	_, err = client.Agents().Create(ctx, nil)
	require.Error(t, err)
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "request", configErr.Field)
}
