package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// IdentitiesClient implements letta.IdentitiesClient.
type IdentitiesClient struct {
	identities resource[letta.Identity]
}

// NewIdentitiesClient creates a new identities client.
func NewIdentitiesClient(httpClient *http.Client) *IdentitiesClient {
	return &IdentitiesClient{
		identities: newResource[letta.Identity](httpClient, "Identity", "v1/identities/"),
	}
}

// List implements letta.IdentitiesClient.List.
func (c *IdentitiesClient) List(ctx context.Context, params *letta.ListIdentitiesParams) ([]letta.Identity, error) {
	return c.identities.list(ctx, params.ToValues())
}

// Get implements letta.IdentitiesClient.Get.
func (c *IdentitiesClient) Get(ctx context.Context, id string) (*letta.Identity, error) {
	return c.identities.get(ctx, id)
}

// Create implements letta.IdentitiesClient.Create.
func (c *IdentitiesClient) Create(ctx context.Context, request *letta.CreateIdentityRequest) (*letta.Identity, error) {
	return c.identities.create(ctx, request)
}

// Delete implements letta.IdentitiesClient.Delete.
func (c *IdentitiesClient) Delete(ctx context.Context, id string) error {
	return c.identities.delete(ctx, id)
}
