package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestSourcesClient_CRUD(t *testing.T) {
	t.Parallel()

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/", request.URL.Path)
			assert.Empty(t, request.URL.RawQuery)
			writeJSON(writer, http.StatusOK, []letta.Source{{ID: "source-1", Name: "handbook"}})
		})

		sources, err := client.Sources().List(context.Background())
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "handbook", sources[0].Name)
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/", request.URL.Path)
			assert.Equal(t, http.MethodPost, request.Method)

			body := decodeBody[letta.CreateSourceRequest](t, request)
			assert.Equal(t, "handbook", body.Name)
			assert.Equal(t, "openai/text-embedding-3-small", body.Embedding)

			writeJSON(writer, http.StatusOK, letta.Source{ID: "source-1", Name: body.Name})
		})

		source, err := client.Sources().Create(context.Background(), &letta.CreateSourceRequest{
			Name:      "handbook",
			Embedding: "openai/text-embedding-3-small",
		})
		require.NoError(t, err)
		assert.Equal(t, "source-1", source.ID)
	})

	t.Run("create requires a name", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, unreachableHandler(t))

		_, err := client.Sources().Create(context.Background(), &letta.CreateSourceRequest{})
		require.Error(t, err)

		var configErr *letta.InvalidConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "name", configErr.Field)
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/source-1", request.URL.Path)
			assert.Equal(t, http.MethodPatch, request.Method)
			writeJSON(writer, http.StatusOK, letta.Source{ID: "source-1", Description: "v2"})
		})

		source, err := client.Sources().Update(context.Background(), "source-1", &letta.UpdateSourceRequest{Description: "v2"})
		require.NoError(t, err)
		assert.Equal(t, "v2", source.Description)
	})

	t.Run("count", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/count", request.URL.Path)
			_, _ = writer.Write([]byte("3"))
		})

		count, err := client.Sources().Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestSourcesClient_Get(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation[letta.Source]{
		{
			Name:         "found",
			ID:           "source-1",
			ExpectedPath: "/v1/sources/source-1",
			StatusCode:   http.StatusOK,
			Response:     letta.Source{ID: "source-1"},
		},
		{
			Name:         "not found",
			ID:           "source-9",
			ExpectedPath: "/v1/sources/source-9",
			StatusCode:   http.StatusNotFound,
			Response:     map[string]string{"detail": "No source found with ID: source-9"},
			WantKind:     letta.KindNotFound,
		},
	}, func(c *Client) func(context.Context, string) (*letta.Source, error) {
		return c.Sources().Get
	})
}

func TestSourcesClient_Delete(t *testing.T) {
	t.Parallel()

	RunDeleteTests(t, []TestDeleteOperation{
		{
			Name:         "deleted",
			ID:           "source-1",
			ExpectedPath: "/v1/sources/source-1",
			StatusCode:   http.StatusOK,
			Response:     map[string]string{},
		},
		{
			Name:         "server error",
			ID:           "source-1",
			ExpectedPath: "/v1/sources/source-1",
			StatusCode:   http.StatusInternalServerError,
			Response:     map[string]string{"detail": "database unavailable"},
			WantKind:     letta.KindAPI,
		},
	}, func(c *Client) func(context.Context, string) error {
		return c.Sources().Delete
	})
}

func TestSourcesClient_GetIDByName(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/sources/name/team handbook", request.URL.Path)
		assert.Equal(t, "/v1/sources/name/team%20handbook", request.URL.EscapedPath())
		_, _ = writer.Write([]byte(`"source-1"`))
	})

	id, err := client.Sources().GetIDByName(context.Background(), "team handbook")
	require.NoError(t, err)
	assert.Equal(t, "source-1", id)
}

func TestSourcesClient_Files(t *testing.T) {
	t.Parallel()

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/source-1/files", request.URL.Path)
			assert.Equal(t, "true", request.URL.Query().Get("include_content"))
			writeJSON(writer, http.StatusOK, []letta.FileMetadata{
				{ID: "file-1", SourceID: "source-1", FileName: "guide.pdf", ProcessingStatus: letta.FileCompleted},
			})
		})

		files, err := client.Sources().ListFiles(context.Background(), "source-1", &letta.ListFilesParams{IncludeContent: true})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, letta.FileCompleted, files[0].ProcessingStatus)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/source-1/file-1", request.URL.Path)
			assert.Equal(t, http.MethodDelete, request.Method)
			writer.WriteHeader(http.StatusNoContent)
		})

		err := client.Sources().DeleteFile(context.Background(), "source-1", "file-1")
		require.NoError(t, err)
	})

	t.Run("delete missing file", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
			writeJSON(writer, http.StatusNotFound, map[string]string{"detail": "File not found"})
		})

		err := client.Sources().DeleteFile(context.Background(), "source-1", "file-9")
		require.Error(t, err)

		var notFoundErr *letta.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "File", notFoundErr.ResourceType)
		assert.Equal(t, "file-9", notFoundErr.ID)
	})

	t.Run("passages", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/source-1/passages", request.URL.Path)
			writeJSON(writer, http.StatusOK, []letta.Passage{{ID: "passage-1", SourceID: "source-1"}})
		})

		passages, err := client.Sources().ListPassages(context.Background(), "source-1", nil)
		require.NoError(t, err)
		assert.Len(t, passages, 1)
	})
}

func TestSourcesClient_Agents(t *testing.T) {
	t.Parallel()

	t.Run("list for agent", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/agents/agent-1/sources", request.URL.Path)
			writeJSON(writer, http.StatusOK, []letta.Source{{ID: "source-1"}})
		})

		sources, err := client.Sources().ListForAgent(context.Background(), "agent-1")
		require.NoError(t, err)
		assert.Len(t, sources, 1)
	})

	RunRelationshipTests(t, []TestRelationshipOperation{
		{
			Name:         "attach source",
			AgentID:      "agent-1",
			TargetID:     "source-1",
			ExpectedPath: "/v1/agents/agent-1/sources/attach/source-1",
			RelationshipFunc: func(c *Client) func(context.Context, string, string) (*letta.Agent, error) {
				return c.Sources().AttachToAgent
			},
		},
		{
			Name:         "detach source",
			AgentID:      "agent-1",
			TargetID:     "source-1",
			ExpectedPath: "/v1/agents/agent-1/sources/detach/source-1",
			RelationshipFunc: func(c *Client) func(context.Context, string, string) (*letta.Agent, error) {
				return c.Sources().DetachFromAgent
			},
		},
	})
}

func TestSourcesClient_UploadFile(t *testing.T) {
	t.Parallel()

	t.Run("self-hosted answers with a job", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/source-1/upload", request.URL.Path)
			assert.Equal(t, http.MethodPost, request.Method)
			assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data; boundary="))

			file, header, err := request.FormFile("file")
			if assert.NoError(t, err) {
				defer file.Close()

				assert.Equal(t, "guide.md", header.Filename)
				assert.Equal(t, "text/markdown", header.Header.Get("Content-Type"))

				content, _ := io.ReadAll(file)
				assert.Equal(t, "# Guide", string(content))
			}

			writeJSON(writer, http.StatusOK, letta.Job{ID: "job-1", Status: letta.JobCreated})
		})

		result, err := client.Sources().UploadFile(context.Background(), "source-1", &letta.FileUpload{
			FileName:    "guide.md",
			ContentType: "text/markdown",
			Data:        []byte("# Guide"),
		})
		require.NoError(t, err)
		require.NotNil(t, result.Job)
		assert.Nil(t, result.File)
		assert.Equal(t, "job-1", result.Job.ID)
	})

	t.Run("cloud answers with file metadata", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			file, header, err := request.FormFile("file")
			if assert.NoError(t, err) {
				defer file.Close()

				assert.Equal(t, "application/octet-stream", header.Header.Get("Content-Type"))
			}

			writeJSON(writer, http.StatusOK, letta.FileMetadata{
				ID:               "file-1",
				SourceID:         "source-1",
				FileName:         "notes.txt",
				ProcessingStatus: letta.FilePending,
			})
		})

		result, err := client.Sources().UploadFile(context.Background(), "source-1", &letta.FileUpload{
			FileName: "notes.txt",
			Reader:   strings.NewReader("remember the milk"),
		})
		require.NoError(t, err)
		require.NotNil(t, result.File)
		assert.Nil(t, result.Job)
		assert.Equal(t, "file-1", result.File.ID)
	})

	t.Run("content is required", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, unreachableHandler(t))

		_, err := client.Sources().UploadFile(context.Background(), "source-1", &letta.FileUpload{FileName: "empty.txt"})
		require.Error(t, err)
		assert.True(t, letta.IsInvalidConfig(err))

		_, err = client.Sources().UploadFile(context.Background(), "source-1", &letta.FileUpload{Data: []byte("x")})
		require.Error(t, err)

		var configErr *letta.InvalidConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "file_name", configErr.Field)
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
			writeJSON(writer, http.StatusNotFound, map[string]string{"detail": "Source not found"})
		})

		_, err := client.Sources().UploadFile(context.Background(), "source-9", &letta.FileUpload{FileName: "a.txt", Data: []byte("a")})
		require.Error(t, err)
		assert.True(t, letta.IsNotFound(err))
	})
}

func TestSourcesClient_GetFile(t *testing.T) {
	t.Parallel()

	t.Run("with content", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/sources/source-1/files/file-1", request.URL.Path)
			assert.Equal(t, "true", request.URL.Query().Get("include_content"))
			writeJSON(writer, http.StatusOK, letta.FileMetadata{ID: "file-1", Content: "# Guide"})
		})

		file, err := client.Sources().GetFile(context.Background(), "source-1", "file-1", true)
		require.NoError(t, err)
		assert.Equal(t, "# Guide", file.Content)
	})

	t.Run("without content", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.URL.RawQuery)
			writeJSON(writer, http.StatusOK, letta.FileMetadata{ID: "file-1"})
		})

		_, err := client.Sources().GetFile(context.Background(), "source-1", "file-1", false)
		require.NoError(t, err)
	})

	t.Run("blank file id", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, unreachableHandler(t))

		_, err := client.Sources().GetFile(context.Background(), "source-1", "", false)
		require.Error(t, err)
		assert.True(t, letta.IsInvalidConfig(err))
	})
}
