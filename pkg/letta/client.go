package letta

import (
	"context"
	"encoding/json"
)

// AgentResourceClients provides access to agent-scoped resource clients.
type AgentResourceClients interface {
	Agents() AgentsClient
	Messages() MessagesClient
	Memory() MemoryClient
	Blocks() BlocksClient
	Identities() IdentitiesClient
	Groups() GroupsClient
}

// ToolingClients provides access to tool and data source clients.
type ToolingClients interface {
	Tools() ToolsClient
	Sources() SourcesClient
}

// ExecutionClients provides access to background work and its history.
type ExecutionClients interface {
	Jobs() JobsClient
	Runs() RunsClient
	Steps() StepsClient
	Telemetry() TelemetryClient
	Batches() BatchesClient
}

// CatalogClients provides access to catalog and organisation clients.
type CatalogClients interface {
	Models() ModelsClient
	Tags() TagsClient
	Projects() ProjectsClient
	Voice() VoiceClient
	Providers() ProvidersClient
	Templates() TemplatesClient
}

// Client is the entry point to the Letta API. All sub-clients share one
// transport and are safe for concurrent use.
type Client interface {
	AgentResourceClients
	ToolingClients
	ExecutionClients
	CatalogClients

	Health() HealthClient
	Config() ClientConfig
}

// HealthClient checks server liveness.
type HealthClient interface {
	Check(ctx context.Context) (*Health, error)
}

// AgentsClient manages agents.
type AgentsClient interface {
	List(ctx context.Context, params *ListAgentsParams) ([]Agent, error)
	ListStream(params *ListAgentsParams) *Stream[Agent]
	Get(ctx context.Context, id string) (*Agent, error)
	Create(ctx context.Context, request *CreateAgentRequest) (*Agent, error)
	Update(ctx context.Context, id string, request *UpdateAgentRequest) (*Agent, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Export(ctx context.Context, id string) (json.RawMessage, error)
	Search(ctx context.Context, request *AgentsSearchRequest) (*AgentsSearchResponse, error)
	Summarize(ctx context.Context, id string, maxMessageLength int) (*Agent, error)
	Import(ctx context.Context, request *ImportAgentRequest) (*Agent, error)
}

// MessagesClient reads and sends agent messages.
type MessagesClient interface {
	List(ctx context.Context, agentID string, params *ListMessagesParams) ([]LettaMessage, error)
	ListStream(agentID string, params *ListMessagesParams) *Stream[LettaMessage]
	Send(ctx context.Context, agentID string, request *SendMessageRequest) (*LettaResponse, error)
	SendAsync(ctx context.Context, agentID string, request *SendMessageRequest) (*Run, error)
	Update(ctx context.Context, agentID, messageID string, request *UpdateMessageRequest) (*LettaMessage, error)
	Reset(ctx context.Context, agentID string, addDefaultInitialMessages bool) (*Agent, error)
}

// MemoryClient manages an agent's core and archival memory.
type MemoryClient interface {
	Core(ctx context.Context, agentID string) (*Memory, error)
	ListBlocks(ctx context.Context, agentID string) ([]Block, error)
	GetBlock(ctx context.Context, agentID, label string) (*Block, error)
	UpdateBlock(ctx context.Context, agentID, label string, request *UpdateBlockRequest) (*Block, error)
	AttachBlock(ctx context.Context, agentID, blockID string) (*Agent, error)
	DetachBlock(ctx context.Context, agentID, blockID string) (*Agent, error)
	ListPassages(ctx context.Context, agentID string, params *ListPassagesParams) ([]Passage, error)
	PassagesStream(agentID string, params *ListPassagesParams) *Stream[Passage]
	CreatePassage(ctx context.Context, agentID string, request *CreatePassageRequest) ([]Passage, error)
	UpdatePassage(ctx context.Context, agentID, passageID string, request *UpdatePassageRequest) ([]Passage, error)
	DeletePassage(ctx context.Context, agentID, passageID string) error
}

// BlocksClient manages standalone memory blocks.
type BlocksClient interface {
	List(ctx context.Context, params *ListBlocksParams) ([]Block, error)
	ListStream(params *ListBlocksParams) *Stream[Block]
	Get(ctx context.Context, id string) (*Block, error)
	Create(ctx context.Context, request *CreateBlockRequest) (*Block, error)
	Update(ctx context.Context, id string, request *UpdateBlockRequest) (*Block, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ToolsClient manages tools and external tool catalogs.
type ToolsClient interface {
	List(ctx context.Context, params *ListToolsParams) ([]Tool, error)
	ListStream(params *ListToolsParams) *Stream[Tool]
	Get(ctx context.Context, id string) (*Tool, error)
	Create(ctx context.Context, request *CreateToolRequest) (*Tool, error)
	Update(ctx context.Context, id string, request *UpdateToolRequest) (*Tool, error)
	Upsert(ctx context.Context, request *CreateToolRequest) (*Tool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Run(ctx context.Context, request *RunToolRequest) (*ToolReturn, error)
	AddBaseTools(ctx context.Context) ([]Tool, error)

	ListForAgent(ctx context.Context, agentID string) ([]Tool, error)
	AttachToAgent(ctx context.Context, agentID, toolID string) (*Agent, error)
	DetachFromAgent(ctx context.Context, agentID, toolID string) (*Agent, error)

	ListMCPServers(ctx context.Context) (map[string]MCPServer, error)
	AddMCPServer(ctx context.Context, server *MCPServer) ([]MCPServer, error)
	DeleteMCPServer(ctx context.Context, serverName string) error
	ListMCPTools(ctx context.Context, serverName string) ([]MCPTool, error)
	AddMCPTool(ctx context.Context, serverName, toolName string) (*Tool, error)

	ListComposioApps(ctx context.Context) ([]ComposioApp, error)
	ListComposioActions(ctx context.Context, appName string) ([]ComposioAction, error)
	AddComposioTool(ctx context.Context, actionName string) (*Tool, error)
}

// SourcesClient manages data sources and their files.
type SourcesClient interface {
	List(ctx context.Context) ([]Source, error)
	Get(ctx context.Context, id string) (*Source, error)
	GetIDByName(ctx context.Context, name string) (string, error)
	Create(ctx context.Context, request *CreateSourceRequest) (*Source, error)
	Update(ctx context.Context, id string, request *UpdateSourceRequest) (*Source, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	ListFiles(ctx context.Context, sourceID string, params *ListFilesParams) ([]FileMetadata, error)
	UploadFile(ctx context.Context, sourceID string, upload *FileUpload) (*FileUploadResult, error)
	GetFile(ctx context.Context, sourceID, fileID string, includeContent bool) (*FileMetadata, error)
	DeleteFile(ctx context.Context, sourceID, fileID string) error
	ListPassages(ctx context.Context, sourceID string, params *ListPassagesParams) ([]Passage, error)
	ListForAgent(ctx context.Context, agentID string) ([]Source, error)
	AttachToAgent(ctx context.Context, agentID, sourceID string) (*Agent, error)
	DetachFromAgent(ctx context.Context, agentID, sourceID string) (*Agent, error)
}

// JobsClient inspects background jobs.
type JobsClient interface {
	List(ctx context.Context, params *ListJobsParams) ([]Job, error)
	ListActive(ctx context.Context, params *ListJobsParams) ([]Job, error)
	Get(ctx context.Context, id string) (*Job, error)
	Delete(ctx context.Context, id string) (*Job, error)
	PollUntilComplete(ctx context.Context, id string) (*Job, error)
}

// RunsClient inspects asynchronous agent runs.
type RunsClient interface {
	List(ctx context.Context, params *ListRunsParams) ([]Run, error)
	ListActive(ctx context.Context, params *ListRunsParams) ([]Run, error)
	Get(ctx context.Context, id string) (*Run, error)
	Delete(ctx context.Context, id string) (*Run, error)
	ListMessages(ctx context.Context, runID string, params *ListParams) ([]LettaMessage, error)
	ListSteps(ctx context.Context, runID string, params *ListParams) ([]Step, error)
}

// StepsClient inspects agent steps.
type StepsClient interface {
	List(ctx context.Context, params *ListStepsParams) ([]Step, error)
	ListStream(params *ListStepsParams) *Stream[Step]
	Get(ctx context.Context, id string) (*Step, error)
	Feedback(ctx context.Context, id string, feedback StepFeedback) (*Step, error)
}

// TelemetryClient retrieves provider traces.
type TelemetryClient interface {
	GetTrace(ctx context.Context, stepID string) (*TelemetryTrace, error)
}

// ModelsClient lists available models.
type ModelsClient interface {
	List(ctx context.Context, params *ListModelsParams) ([]Model, error)
	ListEmbedding(ctx context.Context, params *ListModelsParams) ([]EmbeddingModel, error)
}

// TagsClient lists agent tags.
type TagsClient interface {
	List(ctx context.Context, params *ListTagsParams) ([]string, error)
	ListStream(params *ListTagsParams) *Stream[string]
}

// ProjectsClient lists Letta Cloud projects.
type ProjectsClient interface {
	List(ctx context.Context, params *ListProjectsParams) (*ProjectsPage, error)
	ListStream(params *ListProjectsParams) *Stream[Project]
}

// IdentitiesClient manages identities.
type IdentitiesClient interface {
	List(ctx context.Context, params *ListIdentitiesParams) ([]Identity, error)
	Get(ctx context.Context, id string) (*Identity, error)
	Create(ctx context.Context, request *CreateIdentityRequest) (*Identity, error)
	Delete(ctx context.Context, id string) error
}

// VoiceClient talks to the voice agent endpoint.
type VoiceClient interface {
	ChatCompletions(ctx context.Context, agentID string, request *VoiceChatRequest, userID string) (*VoiceChatResponse, error)
}

// GroupsClient manages multi-agent groups.
type GroupsClient interface {
	List(ctx context.Context, params *ListGroupsParams) ([]Group, error)
	ListStream(params *ListGroupsParams) *Stream[Group]
	Get(ctx context.Context, id string) (*Group, error)
	Create(ctx context.Context, request *CreateGroupRequest) (*Group, error)
	Update(ctx context.Context, id string, request *UpdateGroupRequest) (*Group, error)
	Delete(ctx context.Context, id string) error
	SendMessage(ctx context.Context, groupID string, request *SendMessageRequest) (*LettaResponse, error)
	ListMessages(ctx context.Context, groupID string, params *ListMessagesParams) ([]LettaMessage, error)
	UpdateMessage(ctx context.Context, groupID, messageID string, request *UpdateMessageRequest) (*LettaMessage, error)
	Reset(ctx context.Context, groupID string) error
}

// ProvidersClient manages custom model providers.
type ProvidersClient interface {
	List(ctx context.Context, params *ListProvidersParams) ([]Provider, error)
	ListStream(params *ListProvidersParams) *Stream[Provider]
	Create(ctx context.Context, request *CreateProviderRequest) (*Provider, error)
	Update(ctx context.Context, id string, request *UpdateProviderRequest) (*Provider, error)
	Delete(ctx context.Context, id string) error
	Check(ctx context.Context, id string) (*ProviderCheck, error)
}

// TemplatesClient manages Letta Cloud agent templates.
type TemplatesClient interface {
	List(ctx context.Context, params *ListTemplatesParams) (*TemplatesPage, error)
	ListStream(params *ListTemplatesParams) *Stream[Template]
	CreateFromAgent(ctx context.Context, agentID string, request *CreateTemplateRequest) (*TemplateCreated, error)
	Version(ctx context.Context, agentID string, request *VersionTemplateRequest, returnAgentState bool) (json.RawMessage, error)
	MigrateAgent(ctx context.Context, agentID string, request *MigrateAgentRequest) (*Agent, error)
	CreateAgents(ctx context.Context, project, templateVersion string, request *CreateAgentsFromTemplateRequest) ([]Agent, error)
	MemoryVariables(ctx context.Context, agentID string) (map[string]string, error)
}

// BatchesClient submits and inspects message batches.
type BatchesClient interface {
	List(ctx context.Context) ([]BatchRun, error)
	Create(ctx context.Context, request *CreateBatchRequest) (*BatchRun, error)
	Get(ctx context.Context, id string) (*BatchRun, error)
	Cancel(ctx context.Context, id string) (*BatchRun, error)
	ListMessages(ctx context.Context, id string, params *ListBatchMessagesParams) ([]Message, error)
}
