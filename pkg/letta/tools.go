package letta

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolType classifies where a tool comes from.
type ToolType string

// Tool types.
const (
	ToolTypeCustom         ToolType = "custom"
	ToolTypeCore           ToolType = "letta_core"
	ToolTypeMemoryCore     ToolType = "letta_memory_core"
	ToolTypeMultiAgentCore ToolType = "letta_multi_agent_core"
	ToolTypeSleeptimeCore  ToolType = "letta_sleeptime_core"
	ToolTypeBuiltin        ToolType = "letta_builtin"
	ToolTypeExternalMCP    ToolType = "external_mcp"
	ToolTypeComposio       ToolType = "external_composio"
)

// PipRequirement is a Python package a tool needs.
type PipRequirement struct {
	Name    string `json:"name"              yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Tool is a function an agent can call.
type Tool struct {
	ID              string           `json:"id"                           yaml:"id"`
	Name            string           `json:"name"                         yaml:"name"`
	Description     string           `json:"description,omitempty"        yaml:"description,omitempty"`
	ToolType        ToolType         `json:"tool_type,omitempty"          yaml:"tool_type,omitempty"`
	SourceType      string           `json:"source_type,omitempty"        yaml:"source_type,omitempty"`
	SourceCode      string           `json:"source_code,omitempty"        yaml:"source_code,omitempty"`
	JSONSchema      json.RawMessage  `json:"json_schema,omitempty"        yaml:"-"`
	ArgsJSONSchema  json.RawMessage  `json:"args_json_schema,omitempty"   yaml:"-"`
	Tags            []string         `json:"tags,omitempty"               yaml:"tags,omitempty"`
	ReturnCharLimit int              `json:"return_char_limit,omitempty"  yaml:"return_char_limit,omitempty"`
	PipRequirements []PipRequirement `json:"pip_requirements,omitempty"   yaml:"pip_requirements,omitempty"`
	Metadata        Metadata         `json:"metadata_,omitempty"          yaml:"metadata,omitempty"`
	OrganizationID  string           `json:"organization_id,omitempty"    yaml:"organization_id,omitempty"`
	CreatedByID     string           `json:"created_by_id,omitempty"      yaml:"created_by_id,omitempty"`
	LastUpdatedByID string           `json:"last_updated_by_id,omitempty" yaml:"last_updated_by_id,omitempty"`
	CreatedAt       *Timestamp       `json:"created_at,omitempty"         yaml:"created_at,omitempty"`
	UpdatedAt       *Timestamp       `json:"updated_at,omitempty"         yaml:"updated_at,omitempty"`
}

// CreateToolRequest is the body of POST and PUT v1/tools/.
type CreateToolRequest struct {
	SourceCode      string           `json:"source_code"                 yaml:"source_code"                 validate:"required"`
	SourceType      string           `json:"source_type,omitempty"       yaml:"source_type,omitempty"`
	Description     string           `json:"description,omitempty"       yaml:"description,omitempty"`
	Tags            []string         `json:"tags,omitempty"              yaml:"tags,omitempty"`
	JSONSchema      json.RawMessage  `json:"json_schema,omitempty"       yaml:"-"`
	ArgsJSONSchema  json.RawMessage  `json:"args_json_schema,omitempty"  yaml:"-"`
	ReturnCharLimit *int             `json:"return_char_limit,omitempty" yaml:"return_char_limit,omitempty" validate:"omitempty,gt=0"`
	PipRequirements []PipRequirement `json:"pip_requirements,omitempty"  yaml:"pip_requirements,omitempty"`
}

// UpdateToolRequest is the body of PATCH v1/tools/{id}.
type UpdateToolRequest struct {
	Description     string           `json:"description,omitempty"       yaml:"description,omitempty"`
	SourceCode      string           `json:"source_code,omitempty"       yaml:"source_code,omitempty"`
	SourceType      string           `json:"source_type,omitempty"       yaml:"source_type,omitempty"`
	Tags            []string         `json:"tags,omitempty"              yaml:"tags,omitempty"`
	JSONSchema      json.RawMessage  `json:"json_schema,omitempty"       yaml:"-"`
	ReturnCharLimit *int             `json:"return_char_limit,omitempty" yaml:"return_char_limit,omitempty" validate:"omitempty,gt=0"`
	PipRequirements []PipRequirement `json:"pip_requirements,omitempty"  yaml:"pip_requirements,omitempty"`
	Metadata        Metadata         `json:"metadata_,omitempty"         yaml:"metadata,omitempty"`
}

// RunToolRequest is the body of POST v1/tools/run, which executes source
// code without registering it.
type RunToolRequest struct {
	SourceCode     string            `json:"source_code"                yaml:"source_code" validate:"required"`
	Args           map[string]any    `json:"args"                       yaml:"args"`
	Name           string            `json:"name,omitempty"             yaml:"name,omitempty"`
	SourceType     string            `json:"source_type,omitempty"      yaml:"source_type,omitempty"`
	EnvVars        map[string]string `json:"env_vars,omitempty"         yaml:"env_vars,omitempty"`
	ArgsJSONSchema json.RawMessage   `json:"args_json_schema,omitempty" yaml:"-"`
}

// ToolReturn is the outcome of running a tool.
type ToolReturn struct {
	ID         string   `json:"id,omitempty"     yaml:"id,omitempty"`
	Status     string   `json:"status"           yaml:"status"`
	ToolReturn string   `json:"tool_return"      yaml:"tool_return"`
	Stdout     []string `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr     []string `json:"stderr,omitempty" yaml:"stderr,omitempty"`
}

// Succeeded reports whether the tool ran without error.
func (r *ToolReturn) Succeeded() bool {
	return r.Status == "success"
}

// MCPServer is a configured Model Context Protocol server.
type MCPServer struct {
	ServerName string            `json:"server_name"          yaml:"server_name"`
	Type       string            `json:"type"                 yaml:"type"`
	ServerURL  string            `json:"server_url,omitempty" yaml:"server_url,omitempty"`
	Command    string            `json:"command,omitempty"    yaml:"command,omitempty"`
	Args       []string          `json:"args,omitempty"       yaml:"args,omitempty"`
	Env        map[string]string `json:"env,omitempty"        yaml:"env,omitempty"`
}

// MCPTool is a tool advertised by an MCP server, in the protocol's schema.
type MCPTool = mcp.Tool

// ComposioApp is an application in the Composio catalog.
type ComposioApp struct {
	Name        string   `json:"name"                 yaml:"name"`
	Key         string   `json:"key"                  yaml:"key"`
	AppID       string   `json:"appId"                yaml:"appId"`
	Description string   `json:"description"          yaml:"description"`
	Categories  []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Enabled     bool     `json:"enabled"              yaml:"enabled"`
}

// ComposioAction is an action of a Composio application.
type ComposioAction struct {
	Name        string          `json:"name"                   yaml:"name"`
	DisplayName string          `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Description string          `json:"description"            yaml:"description"`
	AppName     string          `json:"appName"                yaml:"appName"`
	Parameters  json.RawMessage `json:"parameters,omitempty"   yaml:"-"`
	Enabled     bool            `json:"enabled"                yaml:"enabled"`
}
