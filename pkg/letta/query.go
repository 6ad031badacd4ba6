package letta

import (
	"net/url"
	"strconv"
	"strings"
)

// Order selects the sort direction of a list endpoint.
type Order int

const (
	// OrderDefault leaves ordering to the server.
	OrderDefault Order = iota
	// OrderAscending sorts oldest first.
	OrderAscending
	// OrderDescending sorts newest first.
	OrderDescending
)

// String returns the order name.
func (o Order) String() string {
	switch o {
	case OrderAscending:
		return "asc"
	case OrderDescending:
		return "desc"
	default:
		return "default"
	}
}

// ListParams is the cursor shared by every paginated endpoint. Unset fields
// are omitted from the query string.
type ListParams struct {
	Limit  *int
	Before string
	After  string
	Order  Order
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{}
}

// Int returns a pointer to n, for optional integer fields such as Limit.
func Int(n int) *int {
	return &n
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// WithLimit sets the page size.
func (p *ListParams) WithLimit(limit int) *ListParams {
	p.Limit = &limit

	return p
}

// WithBefore sets the upper cursor.
func (p *ListParams) WithBefore(before string) *ListParams {
	p.Before = before

	return p
}

// WithAfter sets the lower cursor.
func (p *ListParams) WithAfter(after string) *ListParams {
	p.After = after

	return p
}

// WithOrder sets the sort direction.
func (p *ListParams) WithOrder(order Order) *ListParams {
	p.Order = order

	return p
}

// ToValues converts the cursor to URL values.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)

	return values
}

func (p *ListParams) apply(values url.Values) {
	if p == nil {
		return
	}

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}

	setString(values, "before", p.Before)
	setString(values, "after", p.After)

	switch p.Order {
	case OrderAscending:
		values.Set("ascending", "true")
	case OrderDescending:
		values.Set("ascending", "false")
	case OrderDefault:
	}
}

func setString(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func setBool(values url.Values, key string, value bool) {
	if value {
		values.Set(key, "true")
	}
}

func addAll(values url.Values, key string, items []string) {
	for _, item := range items {
		values.Add(key, item)
	}
}

// ListAgentsParams filters GET v1/agents.
type ListAgentsParams struct {
	ListParams

	Name           string
	Tags           []string
	MatchAllTags   bool
	QueryText      string
	ProjectID      string
	TemplateID     string
	BaseTemplateID string
	IdentityID     string
	IdentifierKeys []string
	IncludeRelated []string
	SortBy         string
}

// ToValues converts the parameters to URL values.
func (p *ListAgentsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "name", p.Name)
	addAll(values, "tags", p.Tags)
	setBool(values, "match_all_tags", p.MatchAllTags)
	setString(values, "query_text", p.QueryText)
	setString(values, "project_id", p.ProjectID)
	setString(values, "template_id", p.TemplateID)
	setString(values, "base_template_id", p.BaseTemplateID)
	setString(values, "identity_id", p.IdentityID)
	addAll(values, "identifier_keys", p.IdentifierKeys)
	addAll(values, "include_relationships", p.IncludeRelated)
	setString(values, "sort_by", p.SortBy)

	return values
}

// ListMessagesParams filters GET v1/agents/{id}/messages.
type ListMessagesParams struct {
	ListParams

	GroupID                   string
	UseAssistantMessage       *bool
	AssistantMessageToolName  string
	AssistantMessageToolKwarg string
	IncludeErr                bool
}

// ToValues converts the parameters to URL values.
func (p *ListMessagesParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "group_id", p.GroupID)

	if p.UseAssistantMessage != nil {
		values.Set("use_assistant_message", strconv.FormatBool(*p.UseAssistantMessage))
	}

	setString(values, "assistant_message_tool_name", p.AssistantMessageToolName)
	setString(values, "assistant_message_tool_kwarg", p.AssistantMessageToolKwarg)
	setBool(values, "include_err", p.IncludeErr)

	return values
}

// ListPassagesParams filters archival memory listings.
type ListPassagesParams struct {
	ListParams

	Search string
}

// ToValues converts the parameters to URL values.
func (p *ListPassagesParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "search", p.Search)

	return values
}

// ListBlocksParams filters GET v1/blocks.
type ListBlocksParams struct {
	ListParams

	Label          string
	Name           string
	TemplatesOnly  bool
	IdentityID     string
	IdentifierKeys []string
}

// ToValues converts the parameters to URL values.
func (p *ListBlocksParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "label", p.Label)
	setString(values, "name", p.Name)
	setBool(values, "templates_only", p.TemplatesOnly)
	setString(values, "identity_id", p.IdentityID)
	addAll(values, "identifier_keys", p.IdentifierKeys)

	return values
}

// ListToolsParams filters GET v1/tools.
type ListToolsParams struct {
	ListParams

	Name string
}

// ToValues converts the parameters to URL values.
func (p *ListToolsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "name", p.Name)

	return values
}

// ListFilesParams filters the files of a source.
type ListFilesParams struct {
	ListParams

	IncludeContent bool
}

// ToValues converts the parameters to URL values.
func (p *ListFilesParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setBool(values, "include_content", p.IncludeContent)

	return values
}

// ListJobsParams filters GET v1/jobs.
type ListJobsParams struct {
	ListParams

	SourceID string
}

// ToValues converts the parameters to URL values.
func (p *ListJobsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "source_id", p.SourceID)

	return values
}

// ListRunsParams filters GET v1/runs.
type ListRunsParams struct {
	ListParams

	AgentIDs   []string
	Background *bool
}

// ToValues converts the parameters to URL values.
func (p *ListRunsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)

	if len(p.AgentIDs) > 0 {
		values.Set("agent_ids", strings.Join(p.AgentIDs, ","))
	}

	if p.Background != nil {
		values.Set("background", strconv.FormatBool(*p.Background))
	}

	return values
}

// ListStepsParams filters GET v1/steps.
type ListStepsParams struct {
	ListParams

	AgentID   string
	RunID     string
	Model     string
	StartDate string
	EndDate   string
	Feedback  StepFeedback
	Tags      []string
}

// ToValues converts the parameters to URL values.
func (p *ListStepsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "agent_id", p.AgentID)
	setString(values, "run_id", p.RunID)
	setString(values, "model", p.Model)
	setString(values, "start_date", p.StartDate)
	setString(values, "end_date", p.EndDate)
	setString(values, "feedback", string(p.Feedback))
	addAll(values, "tags", p.Tags)

	return values
}

// ListModelsParams filters the model catalogs.
type ListModelsParams struct {
	ProviderCategories []ProviderCategory
	ProviderName       string
	ProviderType       string
}

// ToValues converts the parameters to URL values.
func (p *ListModelsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	for _, category := range p.ProviderCategories {
		values.Add("provider_category", string(category))
	}

	setString(values, "provider_name", p.ProviderName)
	setString(values, "provider_type", p.ProviderType)

	return values
}

// ListTagsParams filters GET v1/tags. Only Limit and After of the embedded
// cursor are sent.
type ListTagsParams struct {
	ListParams

	QueryText string
}

// ToValues converts the parameters to URL values.
func (p *ListTagsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}

	setString(values, "after", p.After)
	setString(values, "query_text", p.QueryText)

	return values
}

// ListProjectsParams filters GET v1/projects, which pages by offset.
type ListProjectsParams struct {
	Name   string
	Offset int
	Limit  *int
}

// ToValues converts the parameters to URL values.
func (p *ListProjectsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	setString(values, "name", p.Name)

	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}

	return values
}

// ListIdentitiesParams filters GET v1/identities.
type ListIdentitiesParams struct {
	ListParams

	Name          string
	ProjectID     string
	IdentifierKey string
	IdentityType  IdentityType
}

// ToValues converts the parameters to URL values.
func (p *ListIdentitiesParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "name", p.Name)
	setString(values, "project_id", p.ProjectID)
	setString(values, "identifier_key", p.IdentifierKey)
	setString(values, "identity_type", string(p.IdentityType))

	return values
}

// ListGroupsParams filters GET v1/groups.
type ListGroupsParams struct {
	ListParams

	ManagerType ManagerType
	ProjectID   string
}

// ToValues converts the parameters to URL values.
func (p *ListGroupsParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	p.apply(values)
	setString(values, "manager_type", string(p.ManagerType))
	setString(values, "project_id", p.ProjectID)

	return values
}

// ListProvidersParams filters GET v1/providers. Only Limit and After of the
// embedded cursor are sent.
type ListProvidersParams struct {
	ListParams

	ProviderCategory ProviderCategory
	ProviderType     ProviderType
}

// ToValues converts the parameters to URL values.
func (p *ListProvidersParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}

	setString(values, "after", p.After)
	setString(values, "provider_category", string(p.ProviderCategory))
	setString(values, "provider_type", string(p.ProviderType))

	return values
}

// ListTemplatesParams filters GET v1/templates, which pages by offset.
type ListTemplatesParams struct {
	Name      string
	ProjectID string
	Offset    int
	Limit     *int
}

// ToValues converts the parameters to URL values.
func (p *ListTemplatesParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	setString(values, "name", p.Name)
	setString(values, "project_id", p.ProjectID)

	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}

	return values
}

// ListBatchMessagesParams filters GET v1/messages/batches/{id}/messages.
type ListBatchMessagesParams struct {
	Limit          *int
	Cursor         string
	AgentID        string
	SortDescending *bool
}

// ToValues converts the parameters to URL values.
func (p *ListBatchMessagesParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}

	setString(values, "cursor", p.Cursor)
	setString(values, "agent_id", p.AgentID)

	if p.SortDescending != nil {
		values.Set("sort_descending", strconv.FormatBool(*p.SortDescending))
	}

	return values
}

// ToValues converts the import options to URL values. The file itself
// travels in the multipart body.
func (r *ImportAgentRequest) ToValues() url.Values {
	values := url.Values{}
	if r == nil {
		return values
	}

	setOptionalBool(values, "append_copy_suffix", r.AppendCopySuffix)
	setOptionalBool(values, "override_existing_tools", r.OverrideExistingTools)
	setString(values, "project_id", r.ProjectID)
	setOptionalBool(values, "strip_messages", r.StripMessages)

	return values
}

func setOptionalBool(values url.Values, key string, value *bool) {
	if value != nil {
		values.Set(key, strconv.FormatBool(*value))
	}
}
