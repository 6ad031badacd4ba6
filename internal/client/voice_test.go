package client

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestVoiceClient_ChatCompletions(t *testing.T) {
	t.Parallel()

	t.Run("passes the payload through", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/voice-beta/agent-1/chat/completions", request.URL.Path)
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "user-7", request.Header.Get(constants.HeaderUserID))

			body, err := io.ReadAll(request.Body)
			assert.NoError(t, err)
			assert.JSONEq(t, `{"model":"gpt-4o","messages":[{"role":"user","content":"hi"}]}`, string(body))

			_, _ = writer.Write([]byte(`{"id":"chatcmpl-1","choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
		})

		request, err := letta.NewVoiceChatRequest(map[string]any{
			"model":    "gpt-4o",
			"messages": []map[string]string{{"role": "user", "content": "hi"}},
		})
		require.NoError(t, err)

		response, err := client.Voice().ChatCompletions(context.Background(), "agent-1", request, "user-7")
		require.NoError(t, err)

		var completion struct {
			ID      string `json:"id"`
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}

		require.NoError(t, response.Decode(&completion))
		assert.Equal(t, "chatcmpl-1", completion.ID)
		require.Len(t, completion.Choices, 1)
		assert.Equal(t, "hello", completion.Choices[0].Message.Content)
	})

	t.Run("omits the user header when unset", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.Header.Get(constants.HeaderUserID))
			_, _ = writer.Write([]byte(`{}`))
		})

		_, err := client.Voice().ChatCompletions(context.Background(), "agent-1", &letta.VoiceChatRequest{}, "")
		require.NoError(t, err)
	})

	t.Run("requires a request", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, unreachableHandler(t))

		_, err := client.Voice().ChatCompletions(context.Background(), "agent-1", nil, "")
		require.Error(t, err)
		assert.True(t, letta.IsInvalidConfig(err))
	})
}
