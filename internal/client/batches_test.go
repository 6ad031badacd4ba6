package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestBatchesClient(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/messages/batches", request.URL.Path)
			assert.Equal(t, http.MethodPost, request.Method)

			body := decodeBody[letta.CreateBatchRequest](t, request)
			require.Len(t, body.Requests, 2)
			assert.Equal(t, "agent-2", body.Requests[1].AgentID)

			writeJSON(writer, http.StatusOK, letta.BatchRun{ID: "batch-1", Status: letta.JobCreated, JobType: "batch"})
		})

		batch, err := client.Batches().Create(context.Background(), &letta.CreateBatchRequest{
			Requests: []letta.BatchRequest{
				{AgentID: "agent-1", Messages: []letta.MessageCreate{{Role: letta.RoleUser, Content: "ping"}}},
				{AgentID: "agent-2", Messages: []letta.MessageCreate{{Role: letta.RoleUser, Content: "ping"}}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "batch-1", batch.ID)
	})

	t.Run("create needs a message per request", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, unreachableHandler(t))

		_, err := client.Batches().Create(context.Background(), &letta.CreateBatchRequest{
			Requests: []letta.BatchRequest{{AgentID: "agent-1"}},
		})
		require.Error(t, err)

		var configErr *letta.InvalidConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "requests[0].messages", configErr.Field)
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/messages/batches", request.URL.Path)
			writeJSON(writer, http.StatusOK, []letta.BatchRun{{ID: "batch-1"}, {ID: "batch-2"}})
		})

		batches, err := client.Batches().List(context.Background())
		require.NoError(t, err)
		assert.Len(t, batches, 2)
	})

	t.Run("cancel", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/messages/batches/batch-1/cancel", request.URL.Path)
			assert.Equal(t, http.MethodPatch, request.Method)
			writeJSON(writer, http.StatusOK, letta.BatchRun{ID: "batch-1", Status: letta.JobCancelled})
		})

		batch, err := client.Batches().Cancel(context.Background(), "batch-1")
		require.NoError(t, err)
		assert.Equal(t, letta.JobCancelled, batch.Status)
	})

	t.Run("messages are unwrapped", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/messages/batches/batch-1/messages", request.URL.Path)
			assert.Equal(t, "agent-1", request.URL.Query().Get("agent_id"))
			assert.Equal(t, "true", request.URL.Query().Get("sort_descending"))
			_, _ = writer.Write([]byte(`{"messages":[{"id":"msg-1","role":"assistant","agent_id":"agent-1"}]}`))
		})

		messages, err := client.Batches().ListMessages(context.Background(), "batch-1", &letta.ListBatchMessagesParams{
			AgentID:        "agent-1",
			SortDescending: letta.Bool(true),
		})
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, letta.RoleAssistant, messages[0].Role)
	})
}

func TestBatchesClient_Get(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation[letta.BatchRun]{
		{
			Name:         "found",
			ID:           "batch-1",
			ExpectedPath: "/v1/messages/batches/batch-1",
			StatusCode:   http.StatusOK,
			Response:     letta.BatchRun{ID: "batch-1"},
		},
		{
			Name:         "not found",
			ID:           "batch-9",
			ExpectedPath: "/v1/messages/batches/batch-9",
			StatusCode:   http.StatusNotFound,
			Response:     map[string]string{"detail": "Batch not found"},
			WantKind:     letta.KindNotFound,
		},
	}, func(c *Client) func(context.Context, string) (*letta.BatchRun, error) {
		return c.Batches().Get
	})
}
