package client

import (
	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// Client implements the letta.Client interface.
type Client struct {
	httpClient *http.Client
	config     letta.ClientConfig

	// Resource clients
	health     *HealthClient
	agents     *AgentsClient
	messages   *MessagesClient
	memory     *MemoryClient
	blocks     *BlocksClient
	identities *IdentitiesClient
	tools      *ToolsClient
	sources    *SourcesClient
	jobs       *JobsClient
	runs       *RunsClient
	steps      *StepsClient
	telemetry  *TelemetryClient
	models     *ModelsClient
	tags       *TagsClient
	projects   *ProjectsClient
	voice      *VoiceClient
	groups     *GroupsClient
	providers  *ProvidersClient
	templates  *TemplatesClient
	batches    *BatchesClient
}

// New creates a new Letta API client. No request is made until the first
// call on a resource client.
func New(config letta.ClientConfig) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.BaseURL(), config.Auth(), createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		config:     config,
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config letta.ClientConfig) []http.Option {
	httpOpts := []http.Option{
		http.WithRetryConfig(config.MaxRetries(), config.RetryWaitMin(), config.RetryWaitMax()),
		http.WithRetryOn5xx(config.RetryOn5xx()),
		http.WithTimeout(config.Timeout()),
		http.WithHeaders(config.Headers()),
	}

	if config.Logger() != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger()))
	}

	if config.Debug() {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent() != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent()))
	}

	if config.Interceptors() != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors()))
	}

	return httpOpts
}

func (c *Client) initializeResourceClients() {
	c.health = NewHealthClient(c.httpClient)
	c.agents = NewAgentsClient(c.httpClient)
	c.messages = NewMessagesClient(c.httpClient)
	c.memory = NewMemoryClient(c.httpClient)
	c.blocks = NewBlocksClient(c.httpClient)
	c.identities = NewIdentitiesClient(c.httpClient)
	c.tools = NewToolsClient(c.httpClient)
	c.sources = NewSourcesClient(c.httpClient)
	c.jobs = NewJobsClient(c.httpClient)
	c.runs = NewRunsClient(c.httpClient)
	c.steps = NewStepsClient(c.httpClient)
	c.telemetry = NewTelemetryClient(c.httpClient)
	c.models = NewModelsClient(c.httpClient)
	c.tags = NewTagsClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.voice = NewVoiceClient(c.httpClient)
	c.groups = NewGroupsClient(c.httpClient)
	c.providers = NewProvidersClient(c.httpClient)
	c.templates = NewTemplatesClient(c.httpClient)
	c.batches = NewBatchesClient(c.httpClient)
}

// Config implements letta.Client.Config.
func (c *Client) Config() letta.ClientConfig {
	return c.config
}

// Health implements letta.Client.Health.
func (c *Client) Health() letta.HealthClient {
	return c.health
}

// Agents implements letta.Client.Agents.
func (c *Client) Agents() letta.AgentsClient {
	return c.agents
}

// Messages implements letta.Client.Messages.
func (c *Client) Messages() letta.MessagesClient {
	return c.messages
}

// Memory implements letta.Client.Memory.
func (c *Client) Memory() letta.MemoryClient {
	return c.memory
}

// Blocks implements letta.Client.Blocks.
func (c *Client) Blocks() letta.BlocksClient {
	return c.blocks
}

// Identities implements letta.Client.Identities.
func (c *Client) Identities() letta.IdentitiesClient {
	return c.identities
}

// Tools implements letta.Client.Tools.
func (c *Client) Tools() letta.ToolsClient {
	return c.tools
}

// Sources implements letta.Client.Sources.
func (c *Client) Sources() letta.SourcesClient {
	return c.sources
}

// Jobs implements letta.Client.Jobs.
func (c *Client) Jobs() letta.JobsClient {
	return c.jobs
}

// Runs implements letta.Client.Runs.
func (c *Client) Runs() letta.RunsClient {
	return c.runs
}

// Steps implements letta.Client.Steps.
func (c *Client) Steps() letta.StepsClient {
	return c.steps
}

// Telemetry implements letta.Client.Telemetry.
func (c *Client) Telemetry() letta.TelemetryClient {
	return c.telemetry
}

// Models implements letta.Client.Models.
func (c *Client) Models() letta.ModelsClient {
	return c.models
}

// Tags implements letta.Client.Tags.
func (c *Client) Tags() letta.TagsClient {
	return c.tags
}

// Projects implements letta.Client.Projects.
func (c *Client) Projects() letta.ProjectsClient {
	return c.projects
}

// Voice implements letta.Client.Voice.
func (c *Client) Voice() letta.VoiceClient {
	return c.voice
}

var _ letta.Client = (*Client)(nil)

// Groups implements letta.Client.Groups.
func (c *Client) Groups() letta.GroupsClient {
	return c.groups
}

// Providers implements letta.Client.Providers.
func (c *Client) Providers() letta.ProvidersClient {
	return c.providers
}

// Templates implements letta.Client.Templates.
func (c *Client) Templates() letta.TemplatesClient {
	return c.templates
}

// Batches implements letta.Client.Batches.
func (c *Client) Batches() letta.BatchesClient {
	return c.batches
}
