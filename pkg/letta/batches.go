package letta

// BatchRun is a message batch submitted through v1/messages/batches. It
// shares the job schema; JobType is "batch".
type BatchRun = Job

// BatchRequest addresses one agent inside a message batch.
type BatchRequest struct {
	AgentID  string          `json:"agent_id" yaml:"agent_id" validate:"required"`
	Messages []MessageCreate `json:"messages" yaml:"messages" validate:"required,min=1,dive"`
}

// CreateBatchRequest is the body of POST v1/messages/batches.
type CreateBatchRequest struct {
	Requests    []BatchRequest `json:"requests"               yaml:"requests"               validate:"required,min=1,dive"`
	CallbackURL string         `json:"callback_url,omitempty" yaml:"callback_url,omitempty" validate:"omitempty,url"`
}
