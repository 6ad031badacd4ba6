package letta_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestLettaMessage_Variants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  string
		wantType letta.MessageType
		wantText string
		wantCall bool
	}{
		{
			name:     "assistant",
			payload:  `{"id":"message-1","message_type":"assistant_message","content":"Hello!"}`,
			wantType: letta.MessageTypeAssistant,
			wantText: "Hello!",
		},
		{
			name:     "reasoning",
			payload:  `{"id":"message-2","message_type":"reasoning_message","reasoning":"User greeted me."}`,
			wantType: letta.MessageTypeReasoning,
			wantText: "User greeted me.",
		},
		{
			name:     "tool call",
			payload:  `{"id":"message-3","message_type":"tool_call_message","tool_call":{"name":"roll_dice","arguments":"{\"sides\":6}","tool_call_id":"call-1"}}`,
			wantType: letta.MessageTypeToolCall,
			wantText: `roll_dice({"sides":6})`,
			wantCall: true,
		},
		{
			name:     "tool return",
			payload:  `{"id":"message-4","message_type":"tool_return_message","tool_return":"4","status":"success"}`,
			wantType: letta.MessageTypeToolReturn,
			wantText: "4",
		},
		{
			name:     "structured content",
			payload:  `{"id":"message-5","message_type":"user_message","content":[{"type":"text","text":"hi"}]}`,
			wantType: letta.MessageTypeUser,
			wantText: `[{"type":"text","text":"hi"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var msg letta.LettaMessage
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &msg))

			assert.Equal(t, tt.wantType, msg.MessageType)
			assert.Equal(t, tt.wantText, msg.Text())

			if tt.wantCall {
				require.NotNil(t, msg.ToolCall())
				assert.Equal(t, "call-1", msg.ToolCall().ToolCallID)
			} else {
				assert.Nil(t, msg.ToolCall())
			}

			encoded, err := json.Marshal(msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.payload, string(encoded))
		})
	}
}

func TestLettaMessage_As(t *testing.T) {
	t.Parallel()

	var msg letta.LettaMessage
	require.NoError(t, json.Unmarshal([]byte(`{"id":"message-1","message_type":"stop_reason","stop_reason":"end_turn"}`), &msg))

	var reason letta.StopReason
	require.NoError(t, msg.As(&reason))
	assert.Equal(t, "end_turn", reason.StopReason)

	var empty letta.LettaMessage

	err := empty.As(&reason)
	require.ErrorIs(t, err, letta.ErrEmptyPayload)
	assert.True(t, letta.IsDecode(err))
}

func TestLettaResponse_AssistantText(t *testing.T) {
	t.Parallel()

	var resp letta.LettaResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"messages": [
			{"id":"m1","message_type":"assistant_message","content":"first"},
			{"id":"m2","message_type":"reasoning_message","reasoning":"thinking"},
			{"id":"m3","message_type":"assistant_message","content":"second"}
		],
		"usage": {"total_tokens": 3}
	}`), &resp))

	assert.Equal(t, "first\nsecond", resp.AssistantText())

	msg := letta.UserMessage("hi")
	assert.Equal(t, letta.RoleUser, msg.Role)
	assert.NotEmpty(t, msg.Otid)
}
