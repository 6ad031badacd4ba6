package client

import (
	"context"
	nethttp "net/http"
	"net/url"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// StepsClient implements letta.StepsClient.
type StepsClient struct {
	steps resource[letta.Step]
}

// NewStepsClient creates a new steps client.
func NewStepsClient(httpClient *http.Client) *StepsClient {
	return &StepsClient{
		steps: newResource[letta.Step](httpClient, "Step", "v1/steps/"),
	}
}

// List implements letta.StepsClient.List.
func (c *StepsClient) List(ctx context.Context, params *letta.ListStepsParams) ([]letta.Step, error) {
	return c.steps.list(ctx, params.ToValues())
}

// ListStream implements letta.StepsClient.ListStream.
func (c *StepsClient) ListStream(params *letta.ListStepsParams) *letta.Stream[letta.Step] {
	base := letta.ListStepsParams{}
	if params != nil {
		base = *params
	}

	return letta.NewStream(base.ListParams, func(ctx context.Context, cursor letta.ListParams) (letta.Page[letta.Step], error) {
		pageParams := base
		pageParams.ListParams = cursor

		steps, err := c.List(ctx, &pageParams)
		if err != nil {
			return letta.Page[letta.Step]{}, err
		}

		return letta.IDCursor(steps, func(step letta.Step) string { return step.ID }, cursor.Limit), nil
	})
}

// Get implements letta.StepsClient.Get.
func (c *StepsClient) Get(ctx context.Context, id string) (*letta.Step, error) {
	return c.steps.get(ctx, id)
}

// Feedback implements letta.StepsClient.Feedback.
func (c *StepsClient) Feedback(ctx context.Context, id string, feedback letta.StepFeedback) (*letta.Step, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	if !feedback.Valid() {
		return nil, &letta.InvalidConfigError{Field: "feedback", Reason: "must be one of: positive negative"}
	}

	query := url.Values{}
	query.Set("feedback", string(feedback))

	step, err := http.Send[letta.Step](ctx, c.steps.httpClient, &http.Request{
		Method: nethttp.MethodPatch,
		Path:   c.steps.itemPath(id, "feedback"),
		Query:  query,
	})
	if err != nil {
		return nil, c.steps.refine(err, id)
	}

	return &step, nil
}
