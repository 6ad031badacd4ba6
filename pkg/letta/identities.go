package letta

import "encoding/json"

// IdentityType classifies what an identity represents.
type IdentityType string

// Identity types.
const (
	IdentityOrg   IdentityType = "org"
	IdentityUser  IdentityType = "user"
	IdentityOther IdentityType = "other"
)

// IdentityProperty is a typed attribute of an identity.
type IdentityProperty struct {
	Key   string          `json:"key"   yaml:"key"`
	Value json.RawMessage `json:"value" yaml:"-"`
	Type  string          `json:"type"  yaml:"type"`
}

// Identity is an end user or organisation agents act on behalf of.
type Identity struct {
	ID            string             `json:"id"                   yaml:"id"`
	IdentifierKey string             `json:"identifier_key"       yaml:"identifier_key"`
	Name          string             `json:"name"                 yaml:"name"`
	IdentityType  IdentityType       `json:"identity_type"        yaml:"identity_type"`
	ProjectID     string             `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	AgentIDs      []string           `json:"agent_ids,omitempty"  yaml:"agent_ids,omitempty"`
	BlockIDs      []string           `json:"block_ids,omitempty"  yaml:"block_ids,omitempty"`
	Properties    []IdentityProperty `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// CreateIdentityRequest is the body of POST v1/identities/.
type CreateIdentityRequest struct {
	IdentifierKey string             `json:"identifier_key"       yaml:"identifier_key" validate:"required"`
	Name          string             `json:"name"                 yaml:"name"           validate:"required"`
	IdentityType  IdentityType       `json:"identity_type"        yaml:"identity_type"  validate:"required,oneof=org user other"`
	ProjectID     string             `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	AgentIDs      []string           `json:"agent_ids,omitempty"  yaml:"agent_ids,omitempty"`
	BlockIDs      []string           `json:"block_ids,omitempty"  yaml:"block_ids,omitempty"`
	Properties    []IdentityProperty `json:"properties,omitempty" yaml:"properties,omitempty"`
}
