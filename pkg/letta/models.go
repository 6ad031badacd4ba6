package letta

// ProviderCategory separates built-in providers from bring-your-own-key ones.
type ProviderCategory string

// Provider categories.
const (
	ProviderBase ProviderCategory = "base"
	ProviderBYOK ProviderCategory = "byok"
)

// Model is an entry of the LLM catalog.
type Model = LLMConfig

// EmbeddingModel is an entry of the embedding catalog.
type EmbeddingModel = EmbeddingConfig

// Project is a Letta Cloud project.
type Project struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// ProjectsPage is one offset page of projects.
type ProjectsPage struct {
	Projects    []Project `json:"projects"    yaml:"projects"`
	HasNextPage bool      `json:"hasNextPage" yaml:"hasNextPage"`
}
