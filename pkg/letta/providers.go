package letta

// ProviderType names an LLM vendor integration.
type ProviderType string

// Provider types accepted by the service.
const (
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderAzure      ProviderType = "azure"
	ProviderGoogleAI   ProviderType = "google_ai"
	ProviderGroq       ProviderType = "groq"
	ProviderMistral    ProviderType = "mistral"
	ProviderOllama     ProviderType = "ollama"
	ProviderVLLM       ProviderType = "vllm"
	ProviderTogether   ProviderType = "together"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderBedrock    ProviderType = "bedrock"
)

// Provider is a configured LLM vendor account.
type Provider struct {
	ID               string           `json:"id"                        yaml:"id"`
	Name             string           `json:"name"                      yaml:"name"`
	ProviderType     ProviderType     `json:"provider_type"             yaml:"provider_type"`
	ProviderCategory ProviderCategory `json:"provider_category"         yaml:"provider_category"`
	APIKey           string           `json:"api_key,omitempty"         yaml:"-"`
	BaseURL          string           `json:"base_url,omitempty"        yaml:"base_url,omitempty"`
	AccessKey        string           `json:"access_key,omitempty"      yaml:"-"`
	SecretKey        string           `json:"secret_key,omitempty"      yaml:"-"`
	Region           string           `json:"region,omitempty"          yaml:"region,omitempty"`
	Metadata         Metadata         `json:"metadata,omitempty"        yaml:"metadata,omitempty"`
	OrganizationID   string           `json:"organization_id,omitempty" yaml:"organization_id,omitempty"`
	UpdatedAt        *Timestamp       `json:"updated_at,omitempty"      yaml:"updated_at,omitempty"`
}

// CreateProviderRequest is the body of POST v1/providers.
type CreateProviderRequest struct {
	Name             string           `json:"name"                        yaml:"name"               validate:"required"`
	ProviderType     ProviderType     `json:"provider_type"               yaml:"provider_type"      validate:"required"`
	ProviderCategory ProviderCategory `json:"provider_category,omitempty" yaml:"provider_category,omitempty"`
	APIKey           string           `json:"api_key"                     yaml:"-"                  validate:"required"`
	BaseURL          string           `json:"base_url,omitempty"          yaml:"base_url,omitempty" validate:"omitempty,url"`
	AccessKey        string           `json:"access_key,omitempty"        yaml:"-"`
	SecretKey        string           `json:"secret_key,omitempty"        yaml:"-"`
	Region           string           `json:"region,omitempty"            yaml:"region,omitempty"`
	Metadata         Metadata         `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
}

// UpdateProviderRequest is the body of PATCH v1/providers/{id}.
type UpdateProviderRequest struct {
	APIKey    string `json:"api_key"              yaml:"-" validate:"required"`
	AccessKey string `json:"access_key,omitempty" yaml:"-"`
	Region    string `json:"region,omitempty"     yaml:"region,omitempty"`
}

// ProviderCheck is the result of validating a provider's credentials.
type ProviderCheck struct {
	Status bool   `json:"status"          yaml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}
