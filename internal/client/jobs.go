package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// JobsClient implements letta.JobsClient.
type JobsClient struct {
	jobs         resource[letta.Job]
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(httpClient *http.Client) *JobsClient {
	return &JobsClient{
		jobs:         newResource[letta.Job](httpClient, "Job", "v1/jobs"),
		pollInterval: constants.DefaultPollInterval,
		pollTimeout:  constants.DefaultJobPollTimeout,
	}
}

// List implements letta.JobsClient.List.
func (c *JobsClient) List(ctx context.Context, params *letta.ListJobsParams) ([]letta.Job, error) {
	return c.jobs.list(ctx, params.ToValues())
}

// ListActive implements letta.JobsClient.ListActive.
func (c *JobsClient) ListActive(ctx context.Context, params *letta.ListJobsParams) ([]letta.Job, error) {
	return getJSON[[]letta.Job](ctx, c.jobs.httpClient, c.jobs.base+"/active", params.ToValues())
}

// Get implements letta.JobsClient.Get.
func (c *JobsClient) Get(ctx context.Context, id string) (*letta.Job, error) {
	return c.jobs.get(ctx, id)
}

// Delete implements letta.JobsClient.Delete. The server answers with the
// deleted job.
func (c *JobsClient) Delete(ctx context.Context, id string) (*letta.Job, error) {
	return deleteReturning(ctx, c.jobs, id)
}

// PollUntilComplete implements letta.JobsClient.PollUntilComplete.
// It polls the job until it reaches a terminal state. Failed, cancelled and
// expired jobs are returned together with an error wrapping ErrJobFailed.
func (c *JobsClient) PollUntilComplete(ctx context.Context, id string) (*letta.Job, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	job, err := c.Get(pollCtx, id)
	if err != nil {
		return nil, pollError(ctx, pollCtx, nil, err)
	}

	for !job.Status.IsTerminal() {
		select {
		case <-pollCtx.Done():
			return job, pollError(ctx, pollCtx, job, pollCtx.Err())
		case <-ticker.C:
			next, err := c.Get(pollCtx, id)
			if err != nil {
				return job, pollError(ctx, pollCtx, job, err)
			}

			job = next
		}
	}

	if job.Status != letta.JobCompleted {
		return job, fmt.Errorf("%w: %s", letta.ErrJobFailed, describeJobFailure(job))
	}

	return job, nil
}

// pollError reports ErrPollTimeout when the poll budget, not the caller,
// ended the wait.
func pollError(parent, pollCtx context.Context, job *letta.Job, err error) error {
	if parent.Err() == nil && errors.Is(pollCtx.Err(), context.DeadlineExceeded) {
		if job != nil {
			return fmt.Errorf("%w: job %s still %s", letta.ErrPollTimeout, job.ID, job.Status)
		}

		return fmt.Errorf("%w: %w", letta.ErrPollTimeout, err)
	}

	return err
}

// describeJobFailure formats the failure details a job carries.
func describeJobFailure(job *letta.Job) string {
	if job.Metadata != nil {
		for _, key := range []string{"error", "error_message", "message"} {
			if msg, ok := job.Metadata[key].(string); ok && msg != "" {
				return fmt.Sprintf("job %s %s: %s", job.ID, job.Status, msg)
			}
		}
	}

	if job.CallbackError != "" {
		return fmt.Sprintf("job %s %s: %s", job.ID, job.Status, job.CallbackError)
	}

	return fmt.Sprintf("job %s %s: no error details available", job.ID, job.Status)
}

// deleteReturning deletes id and decodes the deleted entity from the body.
func deleteReturning[T any](ctx context.Context, r resource[T], id string) (*T, error) {
	err := requireID("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Delete(ctx, r.itemPath(id))
	if err != nil {
		return nil, r.refine(err, id)
	}

	var deleted T

	err = http.Decode(resp.Body, &deleted)
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}
