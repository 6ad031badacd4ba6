package client

import (
	"context"
	nethttp "net/http"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// VoiceClient implements letta.VoiceClient.
type VoiceClient struct {
	httpClient *http.Client
}

// NewVoiceClient creates a new voice client.
func NewVoiceClient(httpClient *http.Client) *VoiceClient {
	return &VoiceClient{httpClient: httpClient}
}

// ChatCompletions implements letta.VoiceClient.ChatCompletions. The payload
// follows the OpenAI chat completions schema and is passed through as is.
func (c *VoiceClient) ChatCompletions(ctx context.Context, agentID string, request *letta.VoiceChatRequest, userID string) (*letta.VoiceChatResponse, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	err = requireRequest(request)
	if err != nil {
		return nil, err
	}

	req := &http.Request{
		Method: nethttp.MethodPost,
		Path:   joinPath("v1/voice-beta", agentID, "chat", "completions"),
		Body:   request,
	}

	if userID != "" {
		req.Headers = map[string]string{constants.HeaderUserID: userID}
	}

	response, err := http.Send[letta.VoiceChatResponse](ctx, c.httpClient, req)
	if err != nil {
		return nil, refineNotFound(err, "Agent", agentID)
	}

	return &response, nil
}
