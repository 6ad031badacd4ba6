package letta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Metadata is free-form key/value data attached to most resources.
type Metadata map[string]interface{}

// Timestamp accepts the timestamp layouts the service emits, with or
// without a zone offset. Naive timestamps are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses value using any accepted layout.
func ParseTimestamp(value string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return Timestamp{Time: parsed.UTC()}, nil
		}
	}

	return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// MarshalJSON encodes the timestamp as RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON decodes any accepted layout. null leaves the zero value.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}

		return nil
	}

	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	if raw == "" {
		*t = Timestamp{}

		return nil
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// MarshalYAML renders the timestamp as RFC 3339 in YAML output.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}

	return t.UTC().Format(time.RFC3339Nano), nil
}

// UnmarshalYAML decodes any accepted layout.
func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" || node.Tag == "!!null" {
		*t = Timestamp{}

		return nil
	}

	parsed, err := ParseTimestamp(node.Value)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// SplitID splits a Letta id such as "agent-<uuid>" into its prefix and
// UUID. A bare UUID has an empty prefix.
func SplitID(id string) (string, uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err == nil && len(id) == len(parsed.String()) {
		return "", parsed, nil
	}

	prefix, rest, found := strings.Cut(id, "-")
	if !found || prefix == "" {
		return "", uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	parsed, err = uuid.Parse(rest)
	if err != nil || len(rest) != len(parsed.String()) {
		return "", uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return prefix, parsed, nil
}

// IsResourceID reports whether id has the shape of a Letta resource id.
func IsResourceID(id string) bool {
	_, _, err := SplitID(id)

	return err == nil
}

// NewID returns a fresh id with the given prefix, e.g. "message-<uuid>".
// An empty prefix yields a bare UUID.
func NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}

	return prefix + "-" + uuid.NewString()
}

// Health is the response of the health endpoint.
type Health struct {
	Version string `json:"version" yaml:"version"`
	Status  string `json:"status"  yaml:"status"`
}
