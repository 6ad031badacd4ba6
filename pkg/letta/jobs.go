package letta

import (
	"encoding/json"

	"github.com/fivetwenty-io/letta-client/internal/constants"
)

// JobStatus is the lifecycle state of a job or run.
type JobStatus string

// Job states.
const (
	JobCreated   JobStatus = constants.JobStatusCreated
	JobPending   JobStatus = constants.JobStatusPending
	JobRunning   JobStatus = constants.JobStatusRunning
	JobCompleted JobStatus = constants.JobStatusCompleted
	JobFailed    JobStatus = constants.JobStatusFailed
	JobCancelled JobStatus = constants.JobStatusCancelled
	JobExpired   JobStatus = constants.JobStatusExpired
)

// IsTerminal reports whether the job will not change state again.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobCompleted, JobFailed, JobCancelled, JobExpired:
		return true
	case JobCreated, JobPending, JobRunning:
		return false
	default:
		return false
	}
}

// Job is a background operation such as a file import.
type Job struct {
	ID                 string          `json:"id"                             yaml:"id"`
	Status             JobStatus       `json:"status"                         yaml:"status"`
	JobType            string          `json:"job_type,omitempty"             yaml:"job_type,omitempty"`
	Metadata           Metadata        `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
	CallbackURL        string          `json:"callback_url,omitempty"         yaml:"callback_url,omitempty"`
	CallbackStatusCode *int            `json:"callback_status_code,omitempty" yaml:"callback_status_code,omitempty"`
	CallbackError      string          `json:"callback_error,omitempty"       yaml:"callback_error,omitempty"`
	CreatedByID        string          `json:"created_by_id,omitempty"        yaml:"created_by_id,omitempty"`
	CreatedAt          *Timestamp      `json:"created_at,omitempty"           yaml:"created_at,omitempty"`
	UpdatedAt          *Timestamp      `json:"updated_at,omitempty"           yaml:"updated_at,omitempty"`
	CompletedAt        *Timestamp      `json:"completed_at,omitempty"         yaml:"completed_at,omitempty"`
	RequestConfig      json.RawMessage `json:"request_config,omitempty"       yaml:"-"`
}

// Run is an asynchronous agent invocation. It shares the job schema.
type Run = Job

// StepFeedback is a user rating of an agent step.
type StepFeedback string

// Step feedback values.
const (
	FeedbackPositive StepFeedback = "positive"
	FeedbackNegative StepFeedback = "negative"
)

// Valid reports whether f is a known feedback value.
func (f StepFeedback) Valid() bool {
	return f == FeedbackPositive || f == FeedbackNegative
}

// Step is one model invocation within a run.
type Step struct {
	ID                 string       `json:"id"                             yaml:"id"`
	RunID              string       `json:"run_id,omitempty"               yaml:"run_id,omitempty"`
	AgentID            string       `json:"agent_id,omitempty"             yaml:"agent_id,omitempty"`
	ProviderName       string       `json:"provider_name,omitempty"        yaml:"provider_name,omitempty"`
	ProviderCategory   string       `json:"provider_category,omitempty"    yaml:"provider_category,omitempty"`
	Model              string       `json:"model,omitempty"                yaml:"model,omitempty"`
	ModelEndpoint      string       `json:"model_endpoint,omitempty"       yaml:"model_endpoint,omitempty"`
	ContextWindowLimit int          `json:"context_window_limit,omitempty" yaml:"context_window_limit,omitempty"`
	CompletionTokens   int          `json:"completion_tokens,omitempty"    yaml:"completion_tokens,omitempty"`
	PromptTokens       int          `json:"prompt_tokens,omitempty"        yaml:"prompt_tokens,omitempty"`
	TotalTokens        int          `json:"total_tokens,omitempty"         yaml:"total_tokens,omitempty"`
	StopReason         string       `json:"stop_reason,omitempty"          yaml:"stop_reason,omitempty"`
	Tags               []string     `json:"tags,omitempty"                 yaml:"tags,omitempty"`
	TraceID            string       `json:"trace_id,omitempty"             yaml:"trace_id,omitempty"`
	Feedback           StepFeedback `json:"feedback,omitempty"             yaml:"feedback,omitempty"`
	ProjectID          string       `json:"project_id,omitempty"           yaml:"project_id,omitempty"`
	Messages           []Message    `json:"messages,omitempty"             yaml:"messages,omitempty"`
	CreatedAt          *Timestamp   `json:"created_at,omitempty"           yaml:"created_at,omitempty"`
}

// TelemetryTrace is the raw provider request and response of a step.
type TelemetryTrace struct {
	ID           string          `json:"id,omitempty"            yaml:"id,omitempty"`
	StepID       string          `json:"step_id,omitempty"       yaml:"step_id,omitempty"`
	RequestJSON  json.RawMessage `json:"request_json"            yaml:"-"`
	ResponseJSON json.RawMessage `json:"response_json"           yaml:"-"`
	CreatedByID  string          `json:"created_by_id,omitempty" yaml:"created_by_id,omitempty"`
	CreatedAt    *Timestamp      `json:"created_at,omitempty"    yaml:"created_at,omitempty"`
	UpdatedAt    *Timestamp      `json:"updated_at,omitempty"    yaml:"updated_at,omitempty"`
}
