package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// ProjectsClient implements letta.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

// List implements letta.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, params *letta.ListProjectsParams) (*letta.ProjectsPage, error) {
	page, err := getJSON[letta.ProjectsPage](ctx, c.httpClient, "v1/projects", params.ToValues())
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// ListStream implements letta.ProjectsClient.ListStream. Projects page by
// offset and report hasNextPage instead of a cursor.
func (c *ProjectsClient) ListStream(params *letta.ListProjectsParams) *letta.Stream[letta.Project] {
	base := letta.ListProjectsParams{}
	if params != nil {
		base = *params
	}

	return letta.NewOffsetStream(base.Offset, base.Limit, func(ctx context.Context, offset int, limit *int) ([]letta.Project, bool, error) {
		pageParams := base
		pageParams.Offset = offset
		pageParams.Limit = limit

		page, err := c.List(ctx, &pageParams)
		if err != nil {
			return nil, false, err
		}

		return page.Projects, page.HasNextPage, nil
	})
}
