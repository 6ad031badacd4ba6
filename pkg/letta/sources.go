package letta

import "io"

// Source is a collection of files an agent can read.
type Source struct {
	ID              string           `json:"id"                           yaml:"id"`
	Name            string           `json:"name"                         yaml:"name"`
	Description     string           `json:"description,omitempty"        yaml:"description,omitempty"`
	Instructions    string           `json:"instructions,omitempty"       yaml:"instructions,omitempty"`
	EmbeddingConfig *EmbeddingConfig `json:"embedding_config,omitempty"   yaml:"embedding_config,omitempty"`
	Metadata        Metadata         `json:"metadata,omitempty"           yaml:"metadata,omitempty"`
	CreatedByID     string           `json:"created_by_id,omitempty"      yaml:"created_by_id,omitempty"`
	LastUpdatedByID string           `json:"last_updated_by_id,omitempty" yaml:"last_updated_by_id,omitempty"`
	CreatedAt       *Timestamp       `json:"created_at,omitempty"         yaml:"created_at,omitempty"`
	UpdatedAt       *Timestamp       `json:"updated_at,omitempty"         yaml:"updated_at,omitempty"`
}

// CreateSourceRequest is the body of POST v1/sources/.
type CreateSourceRequest struct {
	Name               string           `json:"name"                           yaml:"name"                           validate:"required"`
	Description        string           `json:"description,omitempty"          yaml:"description,omitempty"`
	Instructions       string           `json:"instructions,omitempty"         yaml:"instructions,omitempty"`
	Embedding          string           `json:"embedding,omitempty"            yaml:"embedding,omitempty"`
	EmbeddingChunkSize *int             `json:"embedding_chunk_size,omitempty" yaml:"embedding_chunk_size,omitempty" validate:"omitempty,gt=0"`
	EmbeddingConfig    *EmbeddingConfig `json:"embedding_config,omitempty"     yaml:"embedding_config,omitempty"`
	Metadata           Metadata         `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
}

// UpdateSourceRequest is the body of PATCH v1/sources/{id}.
type UpdateSourceRequest struct {
	Name            string           `json:"name,omitempty"             yaml:"name,omitempty"`
	Description     string           `json:"description,omitempty"      yaml:"description,omitempty"`
	Instructions    string           `json:"instructions,omitempty"     yaml:"instructions,omitempty"`
	EmbeddingConfig *EmbeddingConfig `json:"embedding_config,omitempty" yaml:"embedding_config,omitempty"`
	Metadata        Metadata         `json:"metadata,omitempty"         yaml:"metadata,omitempty"`
}

// FileProcessingStatus tracks ingestion of an uploaded file.
type FileProcessingStatus string

// File processing states.
const (
	FilePending   FileProcessingStatus = "pending"
	FileParsing   FileProcessingStatus = "parsing"
	FileEmbedding FileProcessingStatus = "embedding"
	FileCompleted FileProcessingStatus = "completed"
	FileError     FileProcessingStatus = "error"
)

// FileMetadata describes a file attached to a source.
type FileMetadata struct {
	ID               string               `json:"id"                          yaml:"id"`
	SourceID         string               `json:"source_id"                   yaml:"source_id"`
	FileName         string               `json:"file_name,omitempty"         yaml:"file_name,omitempty"`
	FilePath         string               `json:"file_path,omitempty"         yaml:"file_path,omitempty"`
	FileType         string               `json:"file_type,omitempty"         yaml:"file_type,omitempty"`
	FileSize         int64                `json:"file_size,omitempty"         yaml:"file_size,omitempty"`
	ProcessingStatus FileProcessingStatus `json:"processing_status,omitempty" yaml:"processing_status,omitempty"`
	ErrorMessage     string               `json:"error_message,omitempty"     yaml:"error_message,omitempty"`
	TotalChunks      int                  `json:"total_chunks,omitempty"      yaml:"total_chunks,omitempty"`
	ChunksEmbedded   int                  `json:"chunks_embedded,omitempty"   yaml:"chunks_embedded,omitempty"`
	Content          string               `json:"content,omitempty"           yaml:"content,omitempty"`
	CreatedAt        *Timestamp           `json:"created_at,omitempty"        yaml:"created_at,omitempty"`
	UpdatedAt        *Timestamp           `json:"updated_at,omitempty"        yaml:"updated_at,omitempty"`
}

// FileUpload is a file sent to a source as multipart form data. Reader is
// used when Data is nil.
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
	Reader      io.Reader
}

// FileUploadResult is the answer to a source upload. Self-hosted servers
// return the ingestion job, Letta Cloud returns the file metadata; exactly
// one field is set.
type FileUploadResult struct {
	Job  *Job
	File *FileMetadata
}
