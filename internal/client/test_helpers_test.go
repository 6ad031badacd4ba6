package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// NewTestClient creates a client against a test server running handler.
// Retries are disabled so failing handlers are hit exactly once.
func NewTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config, err := letta.NewClientConfig(server.URL)
	require.NoError(t, err)

	client, err := New(config.WithMaxRetries(0).WithTimeout(5 * time.Second))
	require.NoError(t, err)

	return client
}

// writeJSON encodes body with the given status.
func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(writer).Encode(body)
	}
}

// decodeBody decodes the JSON request body into T.
func decodeBody[T any](t *testing.T, request *http.Request) T {
	t.Helper()

	var body T

	err := json.NewDecoder(request.Body).Decode(&body)
	assert.NoError(t, err)

	return body
}

// unreachableHandler fails the test when any request arrives.
func unreachableHandler(t *testing.T) http.HandlerFunc {
	t.Helper()

	return func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
	}
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantKind     letta.Kind
}

// RunGetTests runs a series of get operation tests. A zero WantKind means
// the call must succeed.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)
				writeJSON(writer, testCase.StatusCode, testCase.Response)
			})

			result, err := getFunc(client)(context.Background(), testCase.ID)

			if testCase.WantKind != letta.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, testCase.WantKind, letta.KindOf(err))
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
			}
		})
	}
}

// TestDeleteOperation represents a delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantKind     letta.Kind
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, string) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodDelete, request.Method)
				writeJSON(writer, testCase.StatusCode, testCase.Response)
			})

			err := deleteFunc(client)(context.Background(), testCase.ID)

			if testCase.WantKind != letta.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, testCase.WantKind, letta.KindOf(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestRelationshipOperation represents an attach or detach test case.
type TestRelationshipOperation struct {
	Name             string
	AgentID          string
	TargetID         string
	ExpectedPath     string
	RelationshipFunc func(*Client) func(context.Context, string, string) (*letta.Agent, error)
}

// RunRelationshipTests runs a series of attach/detach tests.
func RunRelationshipTests(t *testing.T, tests []TestRelationshipOperation) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodPatch, request.Method)
				writeJSON(writer, http.StatusOK, letta.Agent{ID: testCase.AgentID, Name: "helper"})
			})

			agent, err := testCase.RelationshipFunc(client)(context.Background(), testCase.AgentID, testCase.TargetID)
			require.NoError(t, err)
			assert.Equal(t, testCase.AgentID, agent.ID)
		})
	}
}

// pagedHandler serves pages of ids in order, recording the after cursor of
// every request it receives.
type pagedHandler struct {
	t      *testing.T
	pages  [][]string
	mu     sync.Mutex
	cursor []string
}

func (h *pagedHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	h.mu.Lock()
	h.cursor = append(h.cursor, request.URL.Query().Get("after"))
	index := len(h.cursor) - 1
	h.mu.Unlock()
	if index >= len(h.pages) {
		h.t.Errorf("unexpected page request %d", index)
		writeJSON(writer, http.StatusOK, []interface{}{})

		return
	}

	items := make([]map[string]string, 0, len(h.pages[index]))
	for _, id := range h.pages[index] {
		items = append(items, map[string]string{"id": id, "name": "item " + id})
	}

	writeJSON(writer, http.StatusOK, items)
}

// cursors returns the after values received so far.
func (h *pagedHandler) cursors() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.cursor...)
}
