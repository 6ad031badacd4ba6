package client

import (
	"context"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// ProvidersClient implements letta.ProvidersClient.
type ProvidersClient struct {
	httpClient *http.Client
	providers  resource[letta.Provider]
}

// NewProvidersClient creates a new providers client.
func NewProvidersClient(httpClient *http.Client) *ProvidersClient {
	return &ProvidersClient{
		httpClient: httpClient,
		providers:  newResource[letta.Provider](httpClient, "Provider", "v1/providers"),
	}
}

// List implements letta.ProvidersClient.List.
func (c *ProvidersClient) List(ctx context.Context, params *letta.ListProvidersParams) ([]letta.Provider, error) {
	return c.providers.list(ctx, params.ToValues())
}

// ListStream implements letta.ProvidersClient.ListStream. Providers page
// forward only.
func (c *ProvidersClient) ListStream(params *letta.ListProvidersParams) *letta.Stream[letta.Provider] {
	base := letta.ListProvidersParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[letta.Provider], error) {
		pageParams := base
		pageParams.ListParams = cursor

		providers, err := c.List(ctx, &pageParams)
		if err != nil {
			return letta.Page[letta.Provider]{}, err
		}

		return letta.IDCursor(providers, func(provider letta.Provider) string { return provider.ID }, cursor.Limit), nil
	})
}

// Create implements letta.ProvidersClient.Create.
func (c *ProvidersClient) Create(ctx context.Context, request *letta.CreateProviderRequest) (*letta.Provider, error) {
	return c.providers.create(ctx, request)
}

// Update implements letta.ProvidersClient.Update.
func (c *ProvidersClient) Update(ctx context.Context, id string, request *letta.UpdateProviderRequest) (*letta.Provider, error) {
	return c.providers.update(ctx, id, request)
}

// Delete implements letta.ProvidersClient.Delete.
func (c *ProvidersClient) Delete(ctx context.Context, id string) error {
	return c.providers.delete(ctx, id)
}

// Check implements letta.ProvidersClient.Check. A provider whose
// credentials are rejected still answers 2xx with Status false.
func (c *ProvidersClient) Check(ctx context.Context, id string) (*letta.ProviderCheck, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	check, err := getJSON[letta.ProviderCheck](ctx, c.httpClient, c.providers.itemPath(id, "check"), nil)
	if err != nil {
		return nil, c.providers.refine(err, id)
	}

	return &check, nil
}
