package letta

// Template is a versioned agent blueprint on Letta Cloud.
type Template struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TemplatesPage is one offset page of GET v1/templates.
type TemplatesPage struct {
	Templates   []Template `json:"templates"   yaml:"templates"`
	HasNextPage bool       `json:"hasNextPage" yaml:"has_next_page"`
}

// CreateTemplateRequest is the body of POST v1/agents/{id}/template.
type CreateTemplateRequest struct {
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
}

// TemplateCreated identifies a template saved from an agent.
type TemplateCreated struct {
	TemplateName string `json:"template_name" yaml:"template_name"`
	TemplateID   string `json:"template_id"   yaml:"template_id"`
}

// VersionTemplateRequest is the body of POST v1/agents/{id}/version-template.
type VersionTemplateRequest struct {
	MigrateDeployedAgents *bool  `json:"migrate_deployed_agents,omitempty" yaml:"migrate_deployed_agents,omitempty"`
	Message               string `json:"message,omitempty"                 yaml:"message,omitempty"`
}

// MigrateAgentRequest is the body of POST v1/agents/{id}/migrate.
// ToTemplate has the form "name:version".
type MigrateAgentRequest struct {
	ToTemplate           string            `json:"to_template"            yaml:"to_template" validate:"required"`
	PreserveCoreMemories bool              `json:"preserve_core_memories" yaml:"preserve_core_memories"`
	Variables            map[string]string `json:"variables,omitempty"    yaml:"variables,omitempty"`
}

// CreateAgentsFromTemplateRequest is the body of
// POST v1/templates/{project}/{template_version}/agents.
type CreateAgentsFromTemplateRequest struct {
	Tags            []string          `json:"tags,omitempty"             yaml:"tags,omitempty"`
	AgentName       string            `json:"agent_name,omitempty"       yaml:"agent_name,omitempty"`
	MemoryVariables map[string]string `json:"memory_variables,omitempty" yaml:"memory_variables,omitempty"`
	ToolVariables   map[string]string `json:"tool_variables,omitempty"   yaml:"tool_variables,omitempty"`
	IdentityIDs     []string          `json:"identity_ids,omitempty"     yaml:"identity_ids,omitempty"`
}
