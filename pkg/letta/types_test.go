package letta_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	expected := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "RFC 3339 with zone", input: "2025-03-14T09:26:53.589Z"},
		{name: "RFC 3339 with offset", input: "2025-03-14T11:26:53.589+02:00"},
		{name: "naive is UTC", input: "2025-03-14T09:26:53.589"},
		{name: "space separated", input: "2025-03-14 09:26:53.589"},
		{name: "space separated with offset", input: "2025-03-14 09:26:53.589+00:00"},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts, err := letta.ParseTimestamp(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, letta.ErrInvalidTimestamp)

				return
			}

			require.NoError(t, err)
			assert.True(t, expected.Equal(ts.Time), "got %s", ts.Time)
			assert.Equal(t, time.UTC, ts.Location())
		})
	}
}

func TestTimestamp_JSON(t *testing.T) {
	t.Parallel()

	var payload struct {
		CreatedAt letta.Timestamp  `json:"created_at"`
		UpdatedAt *letta.Timestamp `json:"updated_at"`
		DeletedAt letta.Timestamp  `json:"deleted_at"`
	}

	err := json.Unmarshal([]byte(`{"created_at":"2025-01-02T03:04:05","updated_at":null,"deleted_at":""}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), payload.CreatedAt.Time)
	assert.Nil(t, payload.UpdatedAt)
	assert.True(t, payload.DeletedAt.IsZero())

	encoded, err := json.Marshal(payload.CreatedAt)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-01-02T03:04:05Z"`, string(encoded))

	encoded, err = json.Marshal(letta.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(encoded))

	err = json.Unmarshal([]byte(`"not a time"`), &payload.CreatedAt)
	require.ErrorIs(t, err, letta.ErrInvalidTimestamp)
}

func TestTimestamp_YAML(t *testing.T) {
	t.Parallel()

	var payload struct {
		CreatedAt letta.Timestamp `yaml:"created_at"`
	}

	err := yaml.Unmarshal([]byte("created_at: \"2025-01-02 03:04:05\"\n"), &payload)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), payload.CreatedAt.Time)

	out, err := yaml.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(out), "2025-01-02T03:04:05Z")
}

func TestSplitID(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("1d1c2d4e-8f3a-4b7c-9e2f-0a1b2c3d4e5f")

	tests := []struct {
		name       string
		input      string
		wantPrefix string
		wantErr    bool
	}{
		{name: "prefixed", input: "agent-" + id.String(), wantPrefix: "agent"},
		{name: "other prefix", input: "block-" + id.String(), wantPrefix: "block"},
		{name: "bare uuid", input: id.String()},
		{name: "no uuid", input: "agent-1", wantErr: true},
		{name: "missing prefix", input: "-" + id.String(), wantErr: true},
		{name: "name", input: "weather", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prefix, parsed, err := letta.SplitID(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, letta.ErrInvalidID)
				assert.False(t, letta.IsResourceID(tt.input))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, id, parsed)
			assert.True(t, letta.IsResourceID(tt.input))
		})
	}
}

func TestNewID(t *testing.T) {
	t.Parallel()

	id := letta.NewID("message")

	prefix, _, err := letta.SplitID(id)
	require.NoError(t, err)
	assert.Equal(t, "message", prefix)
	assert.NotEqual(t, id, letta.NewID("message"))

	_, err = uuid.Parse(letta.NewID(""))
	require.NoError(t, err)
}
