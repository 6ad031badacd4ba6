package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// TagsClient implements letta.TagsClient.
type TagsClient struct {
	httpClient *http.Client
}

// NewTagsClient creates a new tags client.
func NewTagsClient(httpClient *http.Client) *TagsClient {
	return &TagsClient{httpClient: httpClient}
}

// List implements letta.TagsClient.List.
func (c *TagsClient) List(ctx context.Context, params *letta.ListTagsParams) ([]string, error) {
	return getJSON[[]string](ctx, c.httpClient, "v1/tags", params.ToValues())
}

// ListStream implements letta.TagsClient.ListStream. Tags are their own
// cursor.
func (c *TagsClient) ListStream(params *letta.ListTagsParams) *letta.Stream[string] {
	base := letta.ListTagsParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[string], error) {
		pageParams := base
		pageParams.ListParams = cursor

		tags, err := c.List(ctx, &pageParams)
		if err != nil {
			return letta.Page[string]{}, err
		}

		return letta.IDCursor(tags, func(tag string) string { return tag }, cursor.Limit), nil
	})
}
