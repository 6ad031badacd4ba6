package client

import (
	"context"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// MessagesClient implements letta.MessagesClient.
type MessagesClient struct {
	httpClient *http.Client
	agents     resource[letta.Agent]
}

// NewMessagesClient creates a new messages client.
func NewMessagesClient(httpClient *http.Client) *MessagesClient {
	return &MessagesClient{
		httpClient: httpClient,
		agents:     newResource[letta.Agent](httpClient, "Agent", "v1/agents"),
	}
}

// List implements letta.MessagesClient.List.
func (c *MessagesClient) List(ctx context.Context, agentID string, params *letta.ListMessagesParams) ([]letta.LettaMessage, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	messages, err := getJSON[[]letta.LettaMessage](ctx, c.httpClient, c.agents.itemPath(agentID, "messages"), params.ToValues())
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return messages, nil
}

// ListStream implements letta.MessagesClient.ListStream.
func (c *MessagesClient) ListStream(agentID string, params *letta.ListMessagesParams) *letta.Stream[letta.LettaMessage] {
	base := letta.ListMessagesParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[letta.LettaMessage], error) {
		pageParams := base
		pageParams.ListParams = cursor

		messages, err := c.List(ctx, agentID, &pageParams)
		if err != nil {
			return letta.Page[letta.LettaMessage]{}, err
		}

		return letta.IDCursor(messages, func(message letta.LettaMessage) string { return message.ID }, cursor.Limit), nil
	})
}

// Send implements letta.MessagesClient.Send. It blocks until the agent has
// finished processing the messages.
func (c *MessagesClient) Send(ctx context.Context, agentID string, request *letta.SendMessageRequest) (*letta.LettaResponse, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	response, err := sendJSON[letta.LettaResponse](ctx, c.httpClient, nethttp.MethodPost, c.agents.itemPath(agentID, "messages"), request)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return &response, nil
}

// SendAsync implements letta.MessagesClient.SendAsync. The returned run can
// be followed through the runs client.
func (c *MessagesClient) SendAsync(ctx context.Context, agentID string, request *letta.SendMessageRequest) (*letta.Run, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	run, err := sendJSON[letta.Run](ctx, c.httpClient, nethttp.MethodPost, c.agents.itemPath(agentID, "messages", "async"), request)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return &run, nil
}

// Update implements letta.MessagesClient.Update.
func (c *MessagesClient) Update(ctx context.Context, agentID, messageID string, request *letta.UpdateMessageRequest) (*letta.LettaMessage, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	err = requireID("message_id", messageID)
	if err != nil {
		return nil, err
	}

	message, err := sendJSON[letta.LettaMessage](ctx, c.httpClient, nethttp.MethodPatch, c.agents.itemPath(agentID, "messages", messageID), request)
	if err != nil {
		return nil, refineNotFound(err, "Message", messageID)
	}

	return &message, nil
}

// Reset implements letta.MessagesClient.Reset.
func (c *MessagesClient) Reset(ctx context.Context, agentID string, addDefaultInitialMessages bool) (*letta.Agent, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("add_default_initial_messages", strconv.FormatBool(addDefaultInitialMessages))

	agent, err := http.Send[letta.Agent](ctx, c.httpClient, &http.Request{
		Method: nethttp.MethodPatch,
		Path:   c.agents.itemPath(agentID, "reset-messages"),
		Query:  query,
	})
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return &agent, nil
}
