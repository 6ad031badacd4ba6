package client

import (
	"context"
	nethttp "net/http"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// GroupsClient implements letta.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
	groups     resource[letta.Group]
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(httpClient *http.Client) *GroupsClient {
	return &GroupsClient{
		httpClient: httpClient,
		groups:     newResource[letta.Group](httpClient, "Group", "v1/groups"),
	}
}

// List implements letta.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context, params *letta.ListGroupsParams) ([]letta.Group, error) {
	return c.groups.list(ctx, params.ToValues())
}

// ListStream implements letta.GroupsClient.ListStream.
func (c *GroupsClient) ListStream(params *letta.ListGroupsParams) *letta.Stream[letta.Group] {
	base := letta.ListGroupsParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[letta.Group], error) {
		pageParams := base
		pageParams.ListParams = cursor

		groups, err := c.List(ctx, &pageParams)
		if err != nil {
			return letta.Page[letta.Group]{}, err
		}

		return letta.IDCursor(groups, func(group letta.Group) string { return group.ID }, cursor.Limit), nil
	})
}

// Get implements letta.GroupsClient.Get.
func (c *GroupsClient) Get(ctx context.Context, id string) (*letta.Group, error) {
	return c.groups.get(ctx, id)
}

// Create implements letta.GroupsClient.Create.
func (c *GroupsClient) Create(ctx context.Context, request *letta.CreateGroupRequest) (*letta.Group, error) {
	return c.groups.create(ctx, request)
}

// Update implements letta.GroupsClient.Update.
func (c *GroupsClient) Update(ctx context.Context, id string, request *letta.UpdateGroupRequest) (*letta.Group, error) {
	return c.groups.update(ctx, id, request)
}

// Delete implements letta.GroupsClient.Delete.
func (c *GroupsClient) Delete(ctx context.Context, id string) error {
	return c.groups.delete(ctx, id)
}

// SendMessage implements letta.GroupsClient.SendMessage. The group's
// manager decides which agents answer.
func (c *GroupsClient) SendMessage(ctx context.Context, groupID string, request *letta.SendMessageRequest) (*letta.LettaResponse, error) {
	err := requireID("id", groupID)
	if err != nil {
		return nil, err
	}

	response, err := sendJSON[letta.LettaResponse](ctx, c.httpClient, nethttp.MethodPost, c.groups.itemPath(groupID, "messages"), request)
	if err != nil {
		return nil, c.groups.refine(err, groupID)
	}

	return &response, nil
}

// ListMessages implements letta.GroupsClient.ListMessages.
func (c *GroupsClient) ListMessages(ctx context.Context, groupID string, params *letta.ListMessagesParams) ([]letta.LettaMessage, error) {
	err := requireID("id", groupID)
	if err != nil {
		return nil, err
	}

	messages, err := getJSON[[]letta.LettaMessage](ctx, c.httpClient, c.groups.itemPath(groupID, "messages"), params.ToValues())
	if err != nil {
		return nil, c.groups.refine(err, groupID)
	}

	return messages, nil
}

// UpdateMessage implements letta.GroupsClient.UpdateMessage.
func (c *GroupsClient) UpdateMessage(ctx context.Context, groupID, messageID string, request *letta.UpdateMessageRequest) (*letta.LettaMessage, error) {
	err := requireID("id", groupID)
	if err != nil {
		return nil, err
	}

	err = requireID("message_id", messageID)
	if err != nil {
		return nil, err
	}

	message, err := sendJSON[letta.LettaMessage](ctx, c.httpClient, nethttp.MethodPatch, c.groups.itemPath(groupID, "messages", messageID), request)
	if err != nil {
		return nil, refineNotFound(err, "Message", messageID)
	}

	return &message, nil
}

// Reset implements letta.GroupsClient.Reset.
func (c *GroupsClient) Reset(ctx context.Context, groupID string) error {
	err := requireID("id", groupID)
	if err != nil {
		return err
	}

	err = http.SendNoContent(ctx, c.httpClient, &http.Request{
		Method: nethttp.MethodPatch,
		Path:   c.groups.itemPath(groupID, "reset-messages"),
	})
	if err != nil {
		return c.groups.refine(err, groupID)
	}

	return nil
}
