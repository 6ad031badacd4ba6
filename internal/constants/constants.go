package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Letta endpoints.
const (
	// CloudBaseURL is the hosted Letta API.
	CloudBaseURL = "https://api.letta.com"

	// SelfHostedBaseURL is the default address of a local Letta server.
	SelfHostedBaseURL = "http://localhost:8283"
)

// Request headers.
const (
	// HeaderProject scopes Letta Cloud requests to a project.
	HeaderProject = "X-Project"

	// HeaderUserID identifies the end user for voice and multi-user deployments.
	HeaderUserID = "user-id"

	// HeaderRequestID carries the client-generated request id.
	HeaderRequestID = "X-Request-ID"

	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "letta-client-go"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as health checks.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the initial backoff between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax caps the backoff between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Pagination.
const (
	// DefaultPageSize is the page size the CLI requests when none is given.
	DefaultPageSize = 50
)

// Batch execution.
const (
	// DefaultBatchConcurrency bounds the operations a batch runs at once.
	DefaultBatchConcurrency = 5
)

// Time intervals and delays.
const (
	// DefaultPollInterval is used for polling operations.
	DefaultPollInterval = 2 * time.Second

	// DefaultJobPollTimeout bounds how long job polling waits.
	DefaultJobPollTimeout = 10 * time.Minute
)

// Output formats.
const (
	// FormatJSON is the JSON output format.
	FormatJSON = "json"

	// FormatYAML is the YAML output format.
	FormatYAML = "yaml"

	// FormatTable is the table output format.
	FormatTable = "table"
)

// Job statuses reported by the Letta API.
const (
	JobStatusCreated   = "created"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusPending   = "pending"
	JobStatusCancelled = "cancelled"
	JobStatusExpired   = "expired"
)

// Display limits.
const (
	// TruncateLength is the width at which table cells are shortened.
	TruncateLength = 60

	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2
)
