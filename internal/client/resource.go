package client

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// resource implements the verbs shared by collection-style endpoints.
type resource[T any] struct {
	name       string
	collection string
	base       string
	httpClient *http.Client
}

// newResource binds T to a collection path such as "v1/blocks/". Item paths
// are built from the collection without its trailing slash.
func newResource[T any](httpClient *http.Client, name, collection string) resource[T] {
	return resource[T]{
		name:       name,
		collection: collection,
		base:       strings.TrimRight(collection, "/"),
		httpClient: httpClient,
	}
}

func (r resource[T]) itemPath(id string, segments ...string) string {
	return joinPath(append([]string{r.base, id}, segments...)...)
}

func (r resource[T]) get(ctx context.Context, id string) (*T, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	item, err := getJSON[T](ctx, r.httpClient, r.itemPath(id), nil)
	if err != nil {
		return nil, r.refine(err, id)
	}

	return &item, nil
}

func (r resource[T]) list(ctx context.Context, query url.Values) ([]T, error) {
	return getJSON[[]T](ctx, r.httpClient, r.collection, query)
}

func (r resource[T]) create(ctx context.Context, request any) (*T, error) {
	item, err := sendJSON[T](ctx, r.httpClient, nethttp.MethodPost, r.collection, request)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r resource[T]) update(ctx context.Context, id string, request any) (*T, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	item, err := sendJSON[T](ctx, r.httpClient, nethttp.MethodPatch, r.itemPath(id), request)
	if err != nil {
		return nil, r.refine(err, id)
	}

	return &item, nil
}

func (r resource[T]) delete(ctx context.Context, id string) error {
	err := requireID("id", id)
	if err != nil {
		return err
	}

	_, err = r.httpClient.Delete(ctx, r.itemPath(id))
	if err != nil {
		return r.refine(err, id)
	}

	return nil
}

func (r resource[T]) count(ctx context.Context) (int, error) {
	return getJSON[int](ctx, r.httpClient, r.base+"/count", nil)
}

func (r resource[T]) refine(err error, id string) error {
	return refineNotFound(err, r.name, id)
}

// refineNotFound resolves a 404 on an id-bearing request to a NotFoundError
// naming the requested id. The body's resource_type hint wins over
// resourceType.
func refineNotFound(err error, resourceType, id string) error {
	var notFoundErr *letta.NotFoundError
	if errors.As(err, &notFoundErr) {
		if notFoundErr.ID == "" {
			notFoundErr.ID = id
		}

		return err
	}

	var apiErr *letta.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == nethttp.StatusNotFound {
		if apiErr.ResourceType != "" {
			resourceType = apiErr.ResourceType
		}

		return &letta.NotFoundError{
			ResourceType: resourceType,
			ID:           id,
			Message:      apiErr.Message,
		}
	}

	return err
}

// requireID rejects blank identifiers before any request is made.
func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return &letta.InvalidConfigError{Field: field, Reason: letta.ErrIDRequired.Error()}
	}

	return nil
}

// requireRequest rejects nil request bodies.
func requireRequest(request any) error {
	if request == nil {
		return &letta.InvalidConfigError{Field: "request", Reason: letta.ErrNilParameters.Error()}
	}

	value := reflect.ValueOf(request)
	if value.Kind() == reflect.Pointer && value.IsNil() {
		return &letta.InvalidConfigError{Field: "request", Reason: letta.ErrNilParameters.Error()}
	}

	return nil
}

// joinPath joins path segments, escaping each one except the first.
func joinPath(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}

	escaped := make([]string, 0, len(segments))
	escaped = append(escaped, segments[0])

	for _, segment := range segments[1:] {
		escaped = append(escaped, url.PathEscape(segment))
	}

	return strings.Join(escaped, "/")
}

func getJSON[T any](ctx context.Context, httpClient *http.Client, path string, query url.Values) (T, error) {
	return http.Send[T](ctx, httpClient, &http.Request{
		Method: nethttp.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// sendJSON validates request and sends it as the JSON body of a method call.
func sendJSON[T any](ctx context.Context, httpClient *http.Client, method, path string, request any) (T, error) {
	var zero T

	err := requireRequest(request)
	if err != nil {
		return zero, err
	}

	err = letta.ValidateRequest(request)
	if err != nil {
		return zero, err
	}

	return http.Send[T](ctx, httpClient, &http.Request{
		Method: method,
		Path:   path,
		Body:   request,
	})
}

// linkAgent issues the body-less PATCH that attaches a resource to an agent
// or detaches it, e.g. v1/agents/{id}/tools/attach/{tool_id}.
func linkAgent(ctx context.Context, agents resource[letta.Agent], agentID, field, targetID string, segments ...string) (*letta.Agent, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	err = requireID(field, targetID)
	if err != nil {
		return nil, err
	}

	agent, err := http.Send[letta.Agent](ctx, agents.httpClient, &http.Request{
		Method: nethttp.MethodPatch,
		Path:   agents.itemPath(agentID, append(segments, targetID)...),
	})
	if err != nil {
		return nil, agents.refine(err, agentID)
	}

	return &agent, nil
}
