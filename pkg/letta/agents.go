package letta

import "encoding/json"

// AgentType selects the agent architecture.
type AgentType string

// Agent types.
const (
	AgentTypeMemGPT         AgentType = "memgpt_agent"
	AgentTypeMemGPTV2       AgentType = "memgpt_v2_agent"
	AgentTypeReact          AgentType = "react_agent"
	AgentTypeWorkflow       AgentType = "workflow_agent"
	AgentTypeSplitThread    AgentType = "split_thread_agent"
	AgentTypeSleeptime      AgentType = "sleeptime_agent"
	AgentTypeVoiceConvo     AgentType = "voice_convo_agent"
	AgentTypeVoiceSleeptime AgentType = "voice_sleeptime_agent"
)

// LLMConfig describes the language model an agent or model listing uses.
type LLMConfig struct {
	Model                  string   `json:"model"                                  yaml:"model"`
	ModelEndpointType      string   `json:"model_endpoint_type"                    yaml:"model_endpoint_type"`
	ModelEndpoint          string   `json:"model_endpoint,omitempty"               yaml:"model_endpoint,omitempty"`
	ContextWindow          int      `json:"context_window,omitempty"               yaml:"context_window,omitempty"`
	ProviderName           string   `json:"provider_name,omitempty"                yaml:"provider_name,omitempty"`
	ProviderCategory       string   `json:"provider_category,omitempty"            yaml:"provider_category,omitempty"`
	ModelWrapper           string   `json:"model_wrapper,omitempty"                yaml:"model_wrapper,omitempty"`
	PutInnerThoughtsInArgs *bool    `json:"put_inner_thoughts_in_kwargs,omitempty" yaml:"put_inner_thoughts_in_kwargs,omitempty"`
	Handle                 string   `json:"handle,omitempty"                       yaml:"handle,omitempty"`
	Temperature            *float64 `json:"temperature,omitempty"                  yaml:"temperature,omitempty"`
	MaxTokens              *int     `json:"max_tokens,omitempty"                   yaml:"max_tokens,omitempty"`
	EnableReasoner         *bool    `json:"enable_reasoner,omitempty"              yaml:"enable_reasoner,omitempty"`
	ReasoningEffort        string   `json:"reasoning_effort,omitempty"             yaml:"reasoning_effort,omitempty"`
	MaxReasoningTokens     *int     `json:"max_reasoning_tokens,omitempty"         yaml:"max_reasoning_tokens,omitempty"`
}

// EmbeddingConfig describes the embedding model used for archival memory.
type EmbeddingConfig struct {
	EmbeddingModel        string `json:"embedding_model,omitempty"         yaml:"embedding_model,omitempty"`
	EmbeddingEndpointType string `json:"embedding_endpoint_type,omitempty" yaml:"embedding_endpoint_type,omitempty"`
	EmbeddingEndpoint     string `json:"embedding_endpoint,omitempty"      yaml:"embedding_endpoint,omitempty"`
	EmbeddingDim          int    `json:"embedding_dim,omitempty"           yaml:"embedding_dim,omitempty"`
	EmbeddingChunkSize    int    `json:"embedding_chunk_size,omitempty"    yaml:"embedding_chunk_size,omitempty"`
	Handle                string `json:"handle,omitempty"                  yaml:"handle,omitempty"`
	AzureEndpoint         string `json:"azure_endpoint,omitempty"          yaml:"azure_endpoint,omitempty"`
	AzureVersion          string `json:"azure_version,omitempty"           yaml:"azure_version,omitempty"`
	AzureDeployment       string `json:"azure_deployment,omitempty"        yaml:"azure_deployment,omitempty"`
}

// ToolRule constrains when an agent may call a tool. The rule body depends
// on Type and is kept raw.
type ToolRule struct {
	Type     string          `json:"type"      yaml:"type"`
	ToolName string          `json:"tool_name" yaml:"tool_name"`
	Raw      json.RawMessage `json:"-"         yaml:"-"`
}

// UnmarshalJSON keeps the full rule alongside the common fields.
func (r *ToolRule) UnmarshalJSON(data []byte) error {
	type plain ToolRule

	var p plain

	err := json.Unmarshal(data, &p)
	if err != nil {
		return err
	}

	*r = ToolRule(p)
	r.Raw = append(json.RawMessage(nil), data...)

	return nil
}

// MarshalJSON writes the raw rule when present.
func (r ToolRule) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}

	type plain ToolRule

	return json.Marshal(plain(r))
}

// AgentEnvironmentVariable is a secret exposed to an agent's tools.
type AgentEnvironmentVariable struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	AgentID     string `json:"agent_id"              yaml:"agent_id"`
	Key         string `json:"key"                   yaml:"key"`
	Value       string `json:"value"                 yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Agent is the state of an agent as returned by the service.
type Agent struct {
	ID                      string                     `json:"id"                                        yaml:"id"`
	Name                    string                     `json:"name"                                      yaml:"name"`
	System                  string                     `json:"system,omitempty"                          yaml:"system,omitempty"`
	AgentType               AgentType                  `json:"agent_type,omitempty"                      yaml:"agent_type,omitempty"`
	Description             string                     `json:"description,omitempty"                     yaml:"description,omitempty"`
	LLMConfig               *LLMConfig                 `json:"llm_config,omitempty"                      yaml:"llm_config,omitempty"`
	EmbeddingConfig         *EmbeddingConfig           `json:"embedding_config,omitempty"                yaml:"embedding_config,omitempty"`
	Memory                  *Memory                    `json:"memory,omitempty"                          yaml:"memory,omitempty"`
	Tools                   []Tool                     `json:"tools,omitempty"                           yaml:"tools,omitempty"`
	Sources                 []Source                   `json:"sources,omitempty"                         yaml:"sources,omitempty"`
	Tags                    []string                   `json:"tags,omitempty"                            yaml:"tags,omitempty"`
	ToolRules               []ToolRule                 `json:"tool_rules,omitempty"                      yaml:"tool_rules,omitempty"`
	MessageIDs              []string                   `json:"message_ids,omitempty"                     yaml:"message_ids,omitempty"`
	IdentityIDs             []string                   `json:"identity_ids,omitempty"                    yaml:"identity_ids,omitempty"`
	ToolExecEnvironmentVars []AgentEnvironmentVariable `json:"tool_exec_environment_variables,omitempty" yaml:"tool_exec_environment_variables,omitempty"`
	Metadata                Metadata                   `json:"metadata,omitempty"                        yaml:"metadata,omitempty"`
	ProjectID               string                     `json:"project_id,omitempty"                      yaml:"project_id,omitempty"`
	TemplateID              string                     `json:"template_id,omitempty"                     yaml:"template_id,omitempty"`
	BaseTemplateID          string                     `json:"base_template_id,omitempty"                yaml:"base_template_id,omitempty"`
	OrganizationID          string                     `json:"organization_id,omitempty"                 yaml:"organization_id,omitempty"`
	Timezone                string                     `json:"timezone,omitempty"                        yaml:"timezone,omitempty"`
	EnableSleeptime         *bool                      `json:"enable_sleeptime,omitempty"                yaml:"enable_sleeptime,omitempty"`
	MessageBufferAutoclear  *bool                      `json:"message_buffer_autoclear,omitempty"        yaml:"message_buffer_autoclear,omitempty"`
	LastRunCompletion       *Timestamp                 `json:"last_run_completion,omitempty"             yaml:"last_run_completion,omitempty"`
	LastRunDurationMS       *int64                     `json:"last_run_duration_ms,omitempty"            yaml:"last_run_duration_ms,omitempty"`
	CreatedByID             string                     `json:"created_by_id,omitempty"                   yaml:"created_by_id,omitempty"`
	LastUpdatedByID         string                     `json:"last_updated_by_id,omitempty"              yaml:"last_updated_by_id,omitempty"`
	CreatedAt               *Timestamp                 `json:"created_at,omitempty"                      yaml:"created_at,omitempty"`
	UpdatedAt               *Timestamp                 `json:"updated_at,omitempty"                      yaml:"updated_at,omitempty"`
}

// CreateAgentRequest is the body of POST v1/agents.
type CreateAgentRequest struct {
	Name                    string               `json:"name,omitempty"                            yaml:"name,omitempty"`
	System                  string               `json:"system,omitempty"                          yaml:"system,omitempty"`
	AgentType               AgentType            `json:"agent_type,omitempty"                      yaml:"agent_type,omitempty"`
	Description             string               `json:"description,omitempty"                     yaml:"description,omitempty"`
	Model                   string               `json:"model,omitempty"                           yaml:"model,omitempty"`
	Embedding               string               `json:"embedding,omitempty"                       yaml:"embedding,omitempty"`
	LLMConfig               *LLMConfig           `json:"llm_config,omitempty"                      yaml:"llm_config,omitempty"`
	EmbeddingConfig         *EmbeddingConfig     `json:"embedding_config,omitempty"                yaml:"embedding_config,omitempty"`
	MemoryBlocks            []CreateBlockRequest `json:"memory_blocks,omitempty"                   yaml:"memory_blocks,omitempty" validate:"omitempty,dive"`
	Tools                   []string             `json:"tools,omitempty"                           yaml:"tools,omitempty"`
	ToolIDs                 []string             `json:"tool_ids,omitempty"                        yaml:"tool_ids,omitempty"`
	SourceIDs               []string             `json:"source_ids,omitempty"                      yaml:"source_ids,omitempty"`
	BlockIDs                []string             `json:"block_ids,omitempty"                       yaml:"block_ids,omitempty"`
	IdentityIDs             []string             `json:"identity_ids,omitempty"                    yaml:"identity_ids,omitempty"`
	Tags                    []string             `json:"tags,omitempty"                            yaml:"tags,omitempty"`
	ToolRules               []ToolRule           `json:"tool_rules,omitempty"                      yaml:"tool_rules,omitempty"`
	Metadata                Metadata             `json:"metadata,omitempty"                        yaml:"metadata,omitempty"`
	Timezone                string               `json:"timezone,omitempty"                        yaml:"timezone,omitempty"`
	IncludeBaseTools        *bool                `json:"include_base_tools,omitempty"              yaml:"include_base_tools,omitempty"`
	IncludeMultiAgentTools  *bool                `json:"include_multi_agent_tools,omitempty"       yaml:"include_multi_agent_tools,omitempty"`
	ToolExecEnvironmentVars map[string]string    `json:"tool_exec_environment_variables,omitempty" yaml:"tool_exec_environment_variables,omitempty"`
	ContextWindowLimit      *int                 `json:"context_window_limit,omitempty"            yaml:"context_window_limit,omitempty"`
	EmbeddingChunkSize      *int                 `json:"embedding_chunk_size,omitempty"            yaml:"embedding_chunk_size,omitempty"`
	MaxTokens               *int                 `json:"max_tokens,omitempty"                      yaml:"max_tokens,omitempty"`
	EnableSleeptime         *bool                `json:"enable_sleeptime,omitempty"                yaml:"enable_sleeptime,omitempty"`
	FromTemplate            string               `json:"from_template,omitempty"                   yaml:"from_template,omitempty"`
	MemoryVariables         map[string]string    `json:"memory_variables,omitempty"                yaml:"memory_variables,omitempty"`
	ProjectID               string               `json:"project_id,omitempty"                      yaml:"project_id,omitempty"`
}

// UpdateAgentRequest is the body of PATCH v1/agents/{id}. Only set fields
// are changed.
type UpdateAgentRequest struct {
	Name            string           `json:"name,omitempty"             yaml:"name,omitempty"`
	System          string           `json:"system,omitempty"           yaml:"system,omitempty"`
	Description     string           `json:"description,omitempty"      yaml:"description,omitempty"`
	LLMConfig       *LLMConfig       `json:"llm_config,omitempty"       yaml:"llm_config,omitempty"`
	EmbeddingConfig *EmbeddingConfig `json:"embedding_config,omitempty" yaml:"embedding_config,omitempty"`
	ToolIDs         []string         `json:"tool_ids,omitempty"         yaml:"tool_ids,omitempty"`
	SourceIDs       []string         `json:"source_ids,omitempty"       yaml:"source_ids,omitempty"`
	BlockIDs        []string         `json:"block_ids,omitempty"        yaml:"block_ids,omitempty"`
	Tags            []string         `json:"tags,omitempty"             yaml:"tags,omitempty"`
	Metadata        Metadata         `json:"metadata,omitempty"         yaml:"metadata,omitempty"`
	Model           string           `json:"model,omitempty"            yaml:"model,omitempty"`
	Embedding       string           `json:"embedding,omitempty"        yaml:"embedding,omitempty"`
	Timezone        string           `json:"timezone,omitempty"         yaml:"timezone,omitempty"`
}

// AgentsSearchRequest is the body of POST v1/agents/search.
type AgentsSearchRequest struct {
	Search     []json.RawMessage `json:"search,omitempty"     yaml:"search,omitempty"`
	ProjectID  string            `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Combinator string            `json:"combinator,omitempty" yaml:"combinator,omitempty"`
	Limit      *int              `json:"limit,omitempty"      yaml:"limit,omitempty"`
	After      string            `json:"after,omitempty"      yaml:"after,omitempty"`
	SortBy     string            `json:"sortBy,omitempty"     yaml:"sortBy,omitempty"`
	Ascending  *bool             `json:"ascending,omitempty"  yaml:"ascending,omitempty"`
}

// AgentsSearchResponse is a page of search results.
type AgentsSearchResponse struct {
	Agents     []Agent `json:"agents"               yaml:"agents"`
	NextCursor string  `json:"nextCursor,omitempty" yaml:"nextCursor,omitempty"`
}

// ImportAgentRequest uploads an agent file produced by Export to
// POST v1/agents/import. The options travel as query parameters.
type ImportAgentRequest struct {
	FileName              string
	Data                  []byte
	AppendCopySuffix      *bool
	OverrideExistingTools *bool
	ProjectID             string
	StripMessages         *bool
}
