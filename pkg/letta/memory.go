package letta

// Memory is an agent's in-context memory.
type Memory struct {
	Blocks         []Block `json:"blocks"                    yaml:"blocks"`
	FileBlocks     []Block `json:"file_blocks,omitempty"     yaml:"file_blocks,omitempty"`
	PromptTemplate string  `json:"prompt_template,omitempty" yaml:"prompt_template,omitempty"`
}

// Block returns the block labelled label, or nil.
func (m *Memory) Block(label string) *Block {
	if m == nil {
		return nil
	}

	for i := range m.Blocks {
		if m.Blocks[i].Label == label {
			return &m.Blocks[i]
		}
	}

	return nil
}

// Block is a labelled section of core memory.
type Block struct {
	ID                  string     `json:"id,omitempty"                 yaml:"id,omitempty"`
	Label               string     `json:"label"                        yaml:"label"`
	Value               string     `json:"value"                        yaml:"value"`
	Limit               *int       `json:"limit,omitempty"              yaml:"limit,omitempty"`
	Name                string     `json:"name,omitempty"               yaml:"name,omitempty"`
	Description         string     `json:"description,omitempty"        yaml:"description,omitempty"`
	IsTemplate          bool       `json:"is_template"                  yaml:"is_template"`
	PreserveOnMigration bool       `json:"preserve_on_migration"        yaml:"preserve_on_migration"`
	ReadOnly            bool       `json:"read_only"                    yaml:"read_only"`
	Metadata            Metadata   `json:"metadata,omitempty"           yaml:"metadata,omitempty"`
	OrganizationID      string     `json:"organization_id,omitempty"    yaml:"organization_id,omitempty"`
	CreatedByID         string     `json:"created_by_id,omitempty"      yaml:"created_by_id,omitempty"`
	LastUpdatedByID     string     `json:"last_updated_by_id,omitempty" yaml:"last_updated_by_id,omitempty"`
	CreatedAt           *Timestamp `json:"created_at,omitempty"         yaml:"created_at,omitempty"`
	UpdatedAt           *Timestamp `json:"updated_at,omitempty"         yaml:"updated_at,omitempty"`
}

// CreateBlockRequest is the body of POST v1/blocks and of inline memory
// blocks on agent creation.
type CreateBlockRequest struct {
	Label               string   `json:"label"                           yaml:"label"           validate:"required"`
	Value               string   `json:"value"                           yaml:"value"`
	Limit               *int     `json:"limit,omitempty"                 yaml:"limit,omitempty" validate:"omitempty,gt=0"`
	Name                string   `json:"name,omitempty"                  yaml:"name,omitempty"`
	Description         string   `json:"description,omitempty"           yaml:"description,omitempty"`
	IsTemplate          *bool    `json:"is_template,omitempty"           yaml:"is_template,omitempty"`
	PreserveOnMigration *bool    `json:"preserve_on_migration,omitempty" yaml:"preserve_on_migration,omitempty"`
	ReadOnly            *bool    `json:"read_only,omitempty"             yaml:"read_only,omitempty"`
	Metadata            Metadata `json:"metadata,omitempty"              yaml:"metadata,omitempty"`
}

// UpdateBlockRequest is the body of a block PATCH. Only set fields change.
type UpdateBlockRequest struct {
	Label               string   `json:"label,omitempty"                 yaml:"label,omitempty"`
	Value               *string  `json:"value,omitempty"                 yaml:"value,omitempty"`
	Limit               *int     `json:"limit,omitempty"                 yaml:"limit,omitempty" validate:"omitempty,gt=0"`
	Name                string   `json:"name,omitempty"                  yaml:"name,omitempty"`
	Description         string   `json:"description,omitempty"           yaml:"description,omitempty"`
	PreserveOnMigration *bool    `json:"preserve_on_migration,omitempty" yaml:"preserve_on_migration,omitempty"`
	ReadOnly            *bool    `json:"read_only,omitempty"             yaml:"read_only,omitempty"`
	Metadata            Metadata `json:"metadata,omitempty"              yaml:"metadata,omitempty"`
}

// Passage is an archival memory or source passage.
type Passage struct {
	ID              string           `json:"id"                         yaml:"id"`
	Text            string           `json:"text"                       yaml:"text"`
	AgentID         string           `json:"agent_id,omitempty"         yaml:"agent_id,omitempty"`
	SourceID        string           `json:"source_id,omitempty"        yaml:"source_id,omitempty"`
	FileID          string           `json:"file_id,omitempty"          yaml:"file_id,omitempty"`
	FileName        string           `json:"file_name,omitempty"        yaml:"file_name,omitempty"`
	Embedding       []float32        `json:"embedding,omitempty"        yaml:"-"`
	EmbeddingConfig *EmbeddingConfig `json:"embedding_config,omitempty" yaml:"embedding_config,omitempty"`
	Metadata        Metadata         `json:"metadata,omitempty"         yaml:"metadata,omitempty"`
	OrganizationID  string           `json:"organization_id,omitempty"  yaml:"organization_id,omitempty"`
	CreatedAt       *Timestamp       `json:"created_at,omitempty"       yaml:"created_at,omitempty"`
	UpdatedAt       *Timestamp       `json:"updated_at,omitempty"       yaml:"updated_at,omitempty"`
}

// CreatePassageRequest is the body of POST v1/agents/{id}/archival-memory.
type CreatePassageRequest struct {
	Text string `json:"text" yaml:"text" validate:"required"`
}

// UpdatePassageRequest is the body of an archival memory PATCH.
type UpdatePassageRequest struct {
	ID       string   `json:"id"                 yaml:"id"`
	Text     string   `json:"text,omitempty"     yaml:"text,omitempty"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
