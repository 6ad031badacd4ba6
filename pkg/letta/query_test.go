package letta_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   *letta.ListParams
		expected url.Values
	}{
		{
			name:     "nil",
			params:   nil,
			expected: url.Values{},
		},
		{
			name:     "empty",
			params:   letta.NewListParams(),
			expected: url.Values{},
		},
		{
			name:   "cursor ascending",
			params: letta.NewListParams().WithLimit(25).WithAfter("agent-9").WithOrder(letta.OrderAscending),
			expected: url.Values{
				"limit":     []string{"25"},
				"after":     []string{"agent-9"},
				"ascending": []string{"true"},
			},
		},
		{
			name:   "before descending",
			params: letta.NewListParams().WithBefore("agent-1").WithOrder(letta.OrderDescending),
			expected: url.Values{
				"before":    []string{"agent-1"},
				"ascending": []string{"false"},
			},
		},
		{
			name:     "zero limit is still sent",
			params:   letta.NewListParams().WithLimit(0),
			expected: url.Values{"limit": []string{"0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.params.ToValues())
		})
	}
}

func TestListAgentsParams_ToValues(t *testing.T) {
	t.Parallel()

	params := &letta.ListAgentsParams{
		ListParams:     letta.ListParams{Limit: letta.Int(10)},
		Name:           "helper",
		Tags:           []string{"prod", "eu"},
		MatchAllTags:   true,
		IdentifierKeys: []string{"user-1"},
		IncludeRelated: []string{"tools", "sources"},
	}

	values := params.ToValues()

	assert.Equal(t, "10", values.Get("limit"))
	assert.Equal(t, "helper", values.Get("name"))
	assert.Equal(t, []string{"prod", "eu"}, values["tags"])
	assert.Equal(t, "true", values.Get("match_all_tags"))
	assert.Equal(t, []string{"user-1"}, values["identifier_keys"])
	assert.Equal(t, []string{"tools", "sources"}, values["include_relationships"])
	assert.NotContains(t, values, "query_text")
	assert.NotContains(t, values, "ascending")
}

func TestListMessagesParams_ToValues(t *testing.T) {
	t.Parallel()

	values := (&letta.ListMessagesParams{
		UseAssistantMessage: letta.Bool(false),
		IncludeErr:          true,
	}).ToValues()

	assert.Equal(t, "false", values.Get("use_assistant_message"))
	assert.Equal(t, "true", values.Get("include_err"))

	unset := (&letta.ListMessagesParams{}).ToValues()
	assert.NotContains(t, unset, "use_assistant_message")
	assert.NotContains(t, unset, "include_err")
}

func TestListProjectsParams_ToValues(t *testing.T) {
	t.Parallel()

	values := (&letta.ListProjectsParams{Name: "default", Offset: 20, Limit: letta.Int(10)}).ToValues()
	assert.Equal(t, url.Values{
		"name":   []string{"default"},
		"offset": []string{"20"},
		"limit":  []string{"10"},
	}, values)

	assert.Empty(t, (*letta.ListProjectsParams)(nil).ToValues())
}

func TestProviderAndTemplateParams_ToValues(t *testing.T) {
	t.Parallel()

	providers := &letta.ListProvidersParams{
		ListParams:       letta.ListParams{Limit: letta.Int(10), After: "provider-3", Before: "provider-9", Order: letta.OrderAscending},
		ProviderCategory: letta.ProviderBYOK,
		ProviderType:     letta.ProviderOpenAI,
	}
	assert.Equal(t, url.Values{
		"limit":             []string{"10"},
		"after":             []string{"provider-3"},
		"provider_category": []string{"byok"},
		"provider_type":     []string{"openai"},
	}, providers.ToValues())

	templates := &letta.ListTemplatesParams{Name: "support", Offset: 20, Limit: letta.Int(10)}
	assert.Equal(t, url.Values{
		"name":   []string{"support"},
		"offset": []string{"20"},
		"limit":  []string{"10"},
	}, templates.ToValues())

	var nilTemplates *letta.ListTemplatesParams
	assert.Empty(t, nilTemplates.ToValues())
}

func TestImportAgentRequest_ToValues(t *testing.T) {
	t.Parallel()

	request := &letta.ImportAgentRequest{
		Data:          []byte("{}"),
		StripMessages: letta.Bool(true),
		ProjectID:     "proj-1",
	}
	assert.Equal(t, url.Values{
		"strip_messages": []string{"true"},
		"project_id":     []string{"proj-1"},
	}, request.ToValues())
}

func TestOrder_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "default", letta.OrderDefault.String())
	assert.Equal(t, "asc", letta.OrderAscending.String())
	assert.Equal(t, "desc", letta.OrderDescending.String())
}
