package letta

// ManagerType selects how a group routes a conversation between its agents.
type ManagerType string

// Group manager types.
const (
	ManagerRoundRobin     ManagerType = "round_robin"
	ManagerSupervisor     ManagerType = "supervisor"
	ManagerDynamic        ManagerType = "dynamic"
	ManagerSleeptime      ManagerType = "sleeptime"
	ManagerVoiceSleeptime ManagerType = "voice_sleeptime"
	ManagerSwarm          ManagerType = "swarm"
)

// Group is a set of agents that share one multi-agent conversation.
type Group struct {
	ID                      string      `json:"id"                                  yaml:"id"`
	ManagerType             ManagerType `json:"manager_type"                        yaml:"manager_type"`
	AgentIDs                []string    `json:"agent_ids"                           yaml:"agent_ids"`
	Description             string      `json:"description"                         yaml:"description"`
	SharedBlockIDs          []string    `json:"shared_block_ids,omitempty"          yaml:"shared_block_ids,omitempty"`
	ManagerAgentID          string      `json:"manager_agent_id,omitempty"          yaml:"manager_agent_id,omitempty"`
	TerminationToken        string      `json:"termination_token,omitempty"         yaml:"termination_token,omitempty"`
	MaxTurns                *int        `json:"max_turns,omitempty"                 yaml:"max_turns,omitempty"`
	SleeptimeAgentFrequency *int        `json:"sleeptime_agent_frequency,omitempty" yaml:"sleeptime_agent_frequency,omitempty"`
	TurnsCounter            *int        `json:"turns_counter,omitempty"             yaml:"turns_counter,omitempty"`
	LastProcessedMessageID  string      `json:"last_processed_message_id,omitempty" yaml:"last_processed_message_id,omitempty"`
	MaxMessageBufferLength  *int        `json:"max_message_buffer_length,omitempty" yaml:"max_message_buffer_length,omitempty"`
	MinMessageBufferLength  *int        `json:"min_message_buffer_length,omitempty" yaml:"min_message_buffer_length,omitempty"`
	CreatedByID             string      `json:"created_by_id,omitempty"             yaml:"created_by_id,omitempty"`
	LastUpdatedByID         string      `json:"last_updated_by_id,omitempty"        yaml:"last_updated_by_id,omitempty"`
	CreatedAt               *Timestamp  `json:"created_at,omitempty"                yaml:"created_at,omitempty"`
	UpdatedAt               *Timestamp  `json:"updated_at,omitempty"                yaml:"updated_at,omitempty"`
}

// GroupManagerConfig configures a group's manager. Only the fields that
// apply to ManagerType are sent; round robin groups need no manager agent.
type GroupManagerConfig struct {
	ManagerType             ManagerType `json:"manager_type"                        yaml:"manager_type"                        validate:"required,oneof=round_robin supervisor dynamic sleeptime voice_sleeptime"`
	ManagerAgentID          string      `json:"manager_agent_id,omitempty"          yaml:"manager_agent_id,omitempty"          validate:"required_unless=ManagerType round_robin"`
	TerminationToken        string      `json:"termination_token,omitempty"         yaml:"termination_token,omitempty"`
	MaxTurns                *int        `json:"max_turns,omitempty"                 yaml:"max_turns,omitempty"                 validate:"omitempty,gt=0"`
	SleeptimeAgentFrequency *int        `json:"sleeptime_agent_frequency,omitempty" yaml:"sleeptime_agent_frequency,omitempty" validate:"omitempty,gt=0"`
	MaxMessageBufferLength  *int        `json:"max_message_buffer_length,omitempty" yaml:"max_message_buffer_length,omitempty" validate:"omitempty,gt=0"`
	MinMessageBufferLength  *int        `json:"min_message_buffer_length,omitempty" yaml:"min_message_buffer_length,omitempty" validate:"omitempty,gt=0"`
}

// CreateGroupRequest is the body of POST v1/groups.
type CreateGroupRequest struct {
	AgentIDs       []string            `json:"agent_ids"                  yaml:"agent_ids"   validate:"required,min=1,dive,required"`
	Description    string              `json:"description"                yaml:"description" validate:"required"`
	ManagerConfig  *GroupManagerConfig `json:"manager_config,omitempty"   yaml:"manager_config,omitempty"`
	SharedBlockIDs []string            `json:"shared_block_ids,omitempty" yaml:"shared_block_ids,omitempty"`
}

// GroupManagerUpdate changes part of a group's manager configuration.
type GroupManagerUpdate struct {
	ManagerType             ManagerType `json:"manager_type"                        yaml:"manager_type"                        validate:"required,oneof=round_robin supervisor dynamic sleeptime voice_sleeptime"`
	ManagerAgentID          string      `json:"manager_agent_id,omitempty"          yaml:"manager_agent_id,omitempty"`
	TerminationToken        string      `json:"termination_token,omitempty"         yaml:"termination_token,omitempty"`
	MaxTurns                *int        `json:"max_turns,omitempty"                 yaml:"max_turns,omitempty"                 validate:"omitempty,gt=0"`
	SleeptimeAgentFrequency *int        `json:"sleeptime_agent_frequency,omitempty" yaml:"sleeptime_agent_frequency,omitempty" validate:"omitempty,gt=0"`
	MaxMessageBufferLength  *int        `json:"max_message_buffer_length,omitempty" yaml:"max_message_buffer_length,omitempty" validate:"omitempty,gt=0"`
	MinMessageBufferLength  *int        `json:"min_message_buffer_length,omitempty" yaml:"min_message_buffer_length,omitempty" validate:"omitempty,gt=0"`
}

// UpdateGroupRequest is the body of PATCH v1/groups/{id}.
type UpdateGroupRequest struct {
	AgentIDs       []string            `json:"agent_ids,omitempty"        yaml:"agent_ids,omitempty"`
	Description    string              `json:"description,omitempty"      yaml:"description,omitempty"`
	ManagerConfig  *GroupManagerUpdate `json:"manager_config,omitempty"   yaml:"manager_config,omitempty"`
	SharedBlockIDs []string            `json:"shared_block_ids,omitempty" yaml:"shared_block_ids,omitempty"`
}
