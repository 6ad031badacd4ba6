package letta

import (
	"encoding/json"
	"fmt"
)

// VoiceChatRequest is an OpenAI-compatible chat completion request for the
// voice endpoint. The body is passed through unchanged.
type VoiceChatRequest struct {
	Body json.RawMessage
}

// NewVoiceChatRequest encodes v as the request body.
func NewVoiceChatRequest(v any) (*VoiceChatRequest, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, &InvalidConfigError{Field: "body", Reason: err.Error()}
	}

	return &VoiceChatRequest{Body: body}, nil
}

// MarshalJSON writes the body verbatim.
func (r VoiceChatRequest) MarshalJSON() ([]byte, error) {
	if len(r.Body) == 0 {
		return []byte("{}"), nil
	}

	return r.Body, nil
}

// VoiceChatResponse is the raw completion returned by the voice endpoint.
type VoiceChatResponse struct {
	Body json.RawMessage
}

// UnmarshalJSON keeps the payload verbatim.
func (r *VoiceChatResponse) UnmarshalJSON(data []byte) error {
	r.Body = append(json.RawMessage(nil), data...)

	return nil
}

// Decode unmarshals the payload into v.
func (r *VoiceChatResponse) Decode(v any) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return &DecodeError{Target: fmt.Sprintf("%T", v), Body: r.Body, Err: err}
	}

	return nil
}
