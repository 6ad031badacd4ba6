package letta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		wantField  string
		wantReason string
	}{
		{
			name: "valid",
			body: &letta.SendMessageRequest{Messages: []letta.MessageCreate{letta.UserMessage("hi")}},
		},
		{
			name:       "empty slice",
			body:       &letta.SendMessageRequest{Messages: []letta.MessageCreate{}},
			wantField:  "messages",
			wantReason: "must contain at least 1 item(s)",
		},
		{
			name: "nested role",
			body: &letta.SendMessageRequest{Messages: []letta.MessageCreate{
				letta.UserMessage("first"),
				{Role: "robot", Content: "second"},
			}},
			wantField:  "messages[1].role",
			wantReason: "must be one of: user system assistant",
		},
		{
			name: "greater than",
			body: &letta.SendMessageRequest{
				Messages: []letta.MessageCreate{letta.UserMessage("hi")},
				MaxSteps: letta.Int(0),
			},
			wantField:  "max_steps",
			wantReason: "must be greater than 0",
		},
		{
			name:       "value receiver",
			body:       letta.UpdateMessageRequest{},
			wantField:  "message_type",
			wantReason: "is required",
		},
		{name: "nil", body: nil},
		{name: "nil pointer", body: (*letta.SendMessageRequest)(nil)},
		{name: "map", body: map[string]string{"value": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := letta.ValidateRequest(tt.body)
			if tt.wantField == "" {
				require.NoError(t, err)

				return
			}

			var configErr *letta.InvalidConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.wantField, configErr.Field)
			assert.Equal(t, tt.wantReason, configErr.Reason)
		})
	}
}
