package letta

import (
	"encoding/json"
	"fmt"
)

// MessageRole is the author of a message.
type MessageRole string

// Message roles.
const (
	RoleUser      MessageRole = "user"
	RoleSystem    MessageRole = "system"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// MessageType discriminates the variants of LettaMessage.
type MessageType string

// Message types.
const (
	MessageTypeSystem          MessageType = "system_message"
	MessageTypeUser            MessageType = "user_message"
	MessageTypeAssistant       MessageType = "assistant_message"
	MessageTypeReasoning       MessageType = "reasoning_message"
	MessageTypeHiddenReasoning MessageType = "hidden_reasoning_message"
	MessageTypeToolCall        MessageType = "tool_call_message"
	MessageTypeToolReturn      MessageType = "tool_return_message"
	MessageTypeStopReason      MessageType = "stop_reason"
	MessageTypeUsage           MessageType = "usage_statistics"
)

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	Name       string `json:"name"         yaml:"name"`
	Arguments  string `json:"arguments"    yaml:"arguments"`
	ToolCallID string `json:"tool_call_id" yaml:"tool_call_id"`
}

// Message is a stored message in the OpenAI-like format.
type Message struct {
	ID         string            `json:"id"                     yaml:"id"`
	AgentID    string            `json:"agent_id,omitempty"     yaml:"agent_id,omitempty"`
	Role       MessageRole       `json:"role"                   yaml:"role"`
	Content    []json.RawMessage `json:"content,omitempty"      yaml:"-"`
	Name       string            `json:"name,omitempty"         yaml:"name,omitempty"`
	Model      string            `json:"model,omitempty"        yaml:"model,omitempty"`
	ToolCallID string            `json:"tool_call_id,omitempty" yaml:"tool_call_id,omitempty"`
	StepID     string            `json:"step_id,omitempty"      yaml:"step_id,omitempty"`
	Otid       string            `json:"otid,omitempty"         yaml:"otid,omitempty"`
	GroupID    string            `json:"group_id,omitempty"     yaml:"group_id,omitempty"`
	SenderID   string            `json:"sender_id,omitempty"    yaml:"sender_id,omitempty"`
	CreatedAt  *Timestamp        `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
	UpdatedAt  *Timestamp        `json:"updated_at,omitempty"   yaml:"updated_at,omitempty"`
}

// LettaMessage is one element of a conversation as the service renders it.
// The variant is named by MessageType; the full payload stays in Raw and
// can be decoded with As or read through the typed accessors.
type LettaMessage struct {
	ID          string          `json:"id"                yaml:"id"`
	MessageType MessageType     `json:"message_type"      yaml:"message_type"`
	Date        *Timestamp      `json:"date,omitempty"    yaml:"date,omitempty"`
	Otid        string          `json:"otid,omitempty"    yaml:"otid,omitempty"`
	StepID      string          `json:"step_id,omitempty" yaml:"step_id,omitempty"`
	Raw         json.RawMessage `json:"-"                 yaml:"-"`
}

// UnmarshalJSON decodes the envelope fields and keeps the raw payload.
func (m *LettaMessage) UnmarshalJSON(data []byte) error {
	type envelope LettaMessage

	var e envelope

	err := json.Unmarshal(data, &e)
	if err != nil {
		return err
	}

	*m = LettaMessage(e)
	m.Raw = append(json.RawMessage(nil), data...)

	return nil
}

// MarshalJSON writes the raw payload when present.
func (m LettaMessage) MarshalJSON() ([]byte, error) {
	if len(m.Raw) > 0 {
		return m.Raw, nil
	}

	type envelope LettaMessage

	return json.Marshal(envelope(m))
}

// As decodes the raw payload into v.
func (m *LettaMessage) As(v any) error {
	if len(m.Raw) == 0 {
		return &DecodeError{Target: fmt.Sprintf("%T", v), Err: ErrEmptyPayload}
	}

	err := json.Unmarshal(m.Raw, v)
	if err != nil {
		return &DecodeError{Target: fmt.Sprintf("%T", v), Body: m.Raw, Err: err}
	}

	return nil
}

type messagePayload struct {
	Content    json.RawMessage `json:"content"`
	Reasoning  string          `json:"reasoning"`
	ToolCall   *ToolCall       `json:"tool_call"`
	ToolReturn string          `json:"tool_return"`
	Status     string          `json:"status"`
}

func (m *LettaMessage) payload() messagePayload {
	var p messagePayload

	_ = json.Unmarshal(m.Raw, &p)

	return p
}

// Text returns the human readable text of the message: the content of
// user, system and assistant messages, the reasoning of reasoning
// messages and the return value of tool returns.
func (m *LettaMessage) Text() string {
	p := m.payload()

	switch m.MessageType {
	case MessageTypeReasoning:
		return p.Reasoning
	case MessageTypeToolReturn:
		return p.ToolReturn
	case MessageTypeToolCall:
		if p.ToolCall != nil {
			return p.ToolCall.Name + "(" + p.ToolCall.Arguments + ")"
		}

		return ""
	default:
		var text string
		if json.Unmarshal(p.Content, &text) == nil {
			return text
		}

		return string(p.Content)
	}
}

// ToolCall returns the call carried by a tool_call_message, or nil.
func (m *LettaMessage) ToolCall() *ToolCall {
	if m.MessageType != MessageTypeToolCall {
		return nil
	}

	return m.payload().ToolCall
}

// MessageCreate is one input message of a send request.
type MessageCreate struct {
	Role     MessageRole `json:"role"                yaml:"role"    validate:"required,oneof=user system assistant"`
	Content  string      `json:"content"             yaml:"content" validate:"required"`
	Name     string      `json:"name,omitempty"      yaml:"name,omitempty"`
	Otid     string      `json:"otid,omitempty"      yaml:"otid,omitempty"`
	SenderID string      `json:"sender_id,omitempty" yaml:"sender_id,omitempty"`
	GroupID  string      `json:"group_id,omitempty"  yaml:"group_id,omitempty"`
}

// UserMessage builds a user message with a fresh otid.
func UserMessage(content string) MessageCreate {
	return MessageCreate{Role: RoleUser, Content: content, Otid: NewID("")}
}

// SendMessageRequest is the body of POST v1/agents/{id}/messages.
type SendMessageRequest struct {
	Messages                  []MessageCreate `json:"messages"                               yaml:"messages"            validate:"required,min=1,dive"`
	MaxSteps                  *int            `json:"max_steps,omitempty"                    yaml:"max_steps,omitempty" validate:"omitempty,gt=0"`
	UseAssistantMessage       *bool           `json:"use_assistant_message,omitempty"        yaml:"use_assistant_message,omitempty"`
	AssistantMessageToolName  string          `json:"assistant_message_tool_name,omitempty"  yaml:"assistant_message_tool_name,omitempty"`
	AssistantMessageToolKwarg string          `json:"assistant_message_tool_kwarg,omitempty" yaml:"assistant_message_tool_kwarg,omitempty"`
	IncludeReturnMessageTypes []MessageType   `json:"include_return_message_types,omitempty" yaml:"include_return_message_types,omitempty"`
	EnableThinking            string          `json:"enable_thinking,omitempty"              yaml:"enable_thinking,omitempty"`
}

// UpdateMessageRequest is the body of a message PATCH. The service keys
// the edit on MessageType.
type UpdateMessageRequest struct {
	MessageType MessageType `json:"message_type"        yaml:"message_type" validate:"required"`
	Content     string      `json:"content,omitempty"   yaml:"content,omitempty"`
	Reasoning   string      `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// StopReason reports why the agent stopped stepping.
type StopReason struct {
	MessageType MessageType `json:"message_type,omitempty" yaml:"message_type,omitempty"`
	StopReason  string      `json:"stop_reason"            yaml:"stop_reason"`
}

// UsageStatistics is the token usage of a send.
type UsageStatistics struct {
	CompletionTokens int      `json:"completion_tokens" yaml:"completion_tokens"`
	PromptTokens     int      `json:"prompt_tokens"     yaml:"prompt_tokens"`
	TotalTokens      int      `json:"total_tokens"      yaml:"total_tokens"`
	StepCount        int      `json:"step_count"        yaml:"step_count"`
	RunIDs           []string `json:"run_ids,omitempty" yaml:"run_ids,omitempty"`
}

// LettaResponse is the result of sending messages to an agent.
type LettaResponse struct {
	Messages   []LettaMessage  `json:"messages"              yaml:"messages"`
	StopReason *StopReason     `json:"stop_reason,omitempty" yaml:"stop_reason,omitempty"`
	Usage      UsageStatistics `json:"usage"                 yaml:"usage"`
}

// AssistantText concatenates the text of every assistant message.
func (r *LettaResponse) AssistantText() string {
	var text string

	for i := range r.Messages {
		if r.Messages[i].MessageType != MessageTypeAssistant {
			continue
		}

		if text != "" {
			text += "\n"
		}

		text += r.Messages[i].Text()
	}

	return text
}
