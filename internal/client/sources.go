package client

import (
	"context"
	nethttp "net/http"
	"net/url"

	"github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// SourcesClient implements letta.SourcesClient.
type SourcesClient struct {
	httpClient *http.Client
	sources    resource[letta.Source]
	agents     resource[letta.Agent]
}

// NewSourcesClient creates a new sources client.
func NewSourcesClient(httpClient *http.Client) *SourcesClient {
	return &SourcesClient{
		httpClient: httpClient,
		sources:    newResource[letta.Source](httpClient, "Source", "v1/sources/"),
		agents:     newResource[letta.Agent](httpClient, "Agent", "v1/agents"),
	}
}

// List implements letta.SourcesClient.List.
func (c *SourcesClient) List(ctx context.Context) ([]letta.Source, error) {
	return c.sources.list(ctx, nil)
}

// Get implements letta.SourcesClient.Get.
func (c *SourcesClient) Get(ctx context.Context, id string) (*letta.Source, error) {
	return c.sources.get(ctx, id)
}

// GetIDByName implements letta.SourcesClient.GetIDByName.
func (c *SourcesClient) GetIDByName(ctx context.Context, name string) (string, error) {
	err := requireID("name", name)
	if err != nil {
		return "", err
	}

	id, err := getJSON[string](ctx, c.httpClient, joinPath(c.sources.base, "name", name), nil)
	if err != nil {
		return "", refineNotFound(err, "Source", name)
	}

	return id, nil
}

// Create implements letta.SourcesClient.Create.
func (c *SourcesClient) Create(ctx context.Context, request *letta.CreateSourceRequest) (*letta.Source, error) {
	return c.sources.create(ctx, request)
}

// Update implements letta.SourcesClient.Update.
func (c *SourcesClient) Update(ctx context.Context, id string, request *letta.UpdateSourceRequest) (*letta.Source, error) {
	return c.sources.update(ctx, id, request)
}

// Delete implements letta.SourcesClient.Delete.
func (c *SourcesClient) Delete(ctx context.Context, id string) error {
	return c.sources.delete(ctx, id)
}

// Count implements letta.SourcesClient.Count.
func (c *SourcesClient) Count(ctx context.Context) (int, error) {
	return c.sources.count(ctx)
}

// ListFiles implements letta.SourcesClient.ListFiles.
func (c *SourcesClient) ListFiles(ctx context.Context, sourceID string, params *letta.ListFilesParams) ([]letta.FileMetadata, error) {
	err := requireID("id", sourceID)
	if err != nil {
		return nil, err
	}

	files, err := getJSON[[]letta.FileMetadata](ctx, c.httpClient, c.sources.itemPath(sourceID, "files"), params.ToValues())
	if err != nil {
		return nil, c.sources.refine(err, sourceID)
	}

	return files, nil
}

// DeleteFile implements letta.SourcesClient.DeleteFile.
func (c *SourcesClient) DeleteFile(ctx context.Context, sourceID, fileID string) error {
	err := requireID("id", sourceID)
	if err != nil {
		return err
	}

	err = requireID("file_id", fileID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, c.sources.itemPath(sourceID, fileID))
	if err != nil {
		return refineNotFound(err, "File", fileID)
	}

	return nil
}

// ListPassages implements letta.SourcesClient.ListPassages.
func (c *SourcesClient) ListPassages(ctx context.Context, sourceID string, params *letta.ListPassagesParams) ([]letta.Passage, error) {
	err := requireID("id", sourceID)
	if err != nil {
		return nil, err
	}

	passages, err := getJSON[[]letta.Passage](ctx, c.httpClient, c.sources.itemPath(sourceID, "passages"), params.ToValues())
	if err != nil {
		return nil, c.sources.refine(err, sourceID)
	}

	return passages, nil
}

// ListForAgent implements letta.SourcesClient.ListForAgent.
func (c *SourcesClient) ListForAgent(ctx context.Context, agentID string) ([]letta.Source, error) {
	err := requireID("id", agentID)
	if err != nil {
		return nil, err
	}

	sources, err := getJSON[[]letta.Source](ctx, c.httpClient, c.agents.itemPath(agentID, "sources"), nil)
	if err != nil {
		return nil, c.agents.refine(err, agentID)
	}

	return sources, nil
}

// AttachToAgent implements letta.SourcesClient.AttachToAgent.
func (c *SourcesClient) AttachToAgent(ctx context.Context, agentID, sourceID string) (*letta.Agent, error) {
	return linkAgent(ctx, c.agents, agentID, "source_id", sourceID, "sources", "attach")
}

// DetachFromAgent implements letta.SourcesClient.DetachFromAgent.
func (c *SourcesClient) DetachFromAgent(ctx context.Context, agentID, sourceID string) (*letta.Agent, error) {
	return linkAgent(ctx, c.agents, agentID, "source_id", sourceID, "sources", "detach")
}

// uploadShape tells a file answer from a job answer.
type uploadShape struct {
	SourceID string `json:"source_id"`
}

// UploadFile implements letta.SourcesClient.UploadFile.
func (c *SourcesClient) UploadFile(ctx context.Context, sourceID string, upload *letta.FileUpload) (*letta.FileUploadResult, error) {
	err := requireID("id", sourceID)
	if err != nil {
		return nil, err
	}

	if upload == nil || (upload.Data == nil && upload.Reader == nil) {
		return nil, &letta.InvalidConfigError{Field: "file", Reason: letta.ErrEmptyPayload.Error()}
	}

	err = requireID("file_name", upload.FileName)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodPost,
		Path:   c.sources.itemPath(sourceID, "upload"),
		Body: &http.MultipartBody{Files: []http.FileField{{
			FieldName:   "file",
			FileName:    upload.FileName,
			ContentType: upload.ContentType,
			Data:        upload.Data,
			Reader:      upload.Reader,
		}}},
	})
	if err != nil {
		return nil, c.sources.refine(err, sourceID)
	}

	var shape uploadShape

	err = http.Decode(resp.Body, &shape)
	if err != nil {
		return nil, err
	}

	if shape.SourceID != "" {
		var file letta.FileMetadata

		err = http.Decode(resp.Body, &file)
		if err != nil {
			return nil, err
		}

		return &letta.FileUploadResult{File: &file}, nil
	}

	var job letta.Job

	err = http.Decode(resp.Body, &job)
	if err != nil {
		return nil, err
	}

	return &letta.FileUploadResult{Job: &job}, nil
}

// GetFile implements letta.SourcesClient.GetFile.
func (c *SourcesClient) GetFile(ctx context.Context, sourceID, fileID string, includeContent bool) (*letta.FileMetadata, error) {
	err := requireID("id", sourceID)
	if err != nil {
		return nil, err
	}

	err = requireID("file_id", fileID)
	if err != nil {
		return nil, err
	}

	var query url.Values
	if includeContent {
		query = url.Values{"include_content": []string{"true"}}
	}

	file, err := getJSON[letta.FileMetadata](ctx, c.httpClient, c.sources.itemPath(sourceID, "files", fileID), query)
	if err != nil {
		return nil, refineNotFound(err, "File", fileID)
	}

	return &file, nil
}
