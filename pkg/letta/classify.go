package letta

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ClassifyResponse maps a raw HTTP outcome to one member of the error taxonomy.
// It returns nil for 2xx statuses.
func ClassifyResponse(status int, body []byte, header http.Header) error {
	if status >= 200 && status < 300 {
		return nil
	}

	parsed := parseErrorBody(body)

	message := parsed.message()
	if message == "" {
		message = defaultStatusText(status)
	}

	apiErr := &APIError{
		StatusCode: status,
		Message:    message,
		Code:       parsed.code(),
		Body:       body,
	}

	switch status {
	case http.StatusNotFound:
		resourceType, id := parsed.resource(message)
		if resourceType != "" && id != "" {
			return &NotFoundError{ResourceType: resourceType, ID: id, Message: message}
		}

		apiErr.ResourceType = parsed.str("resource_type")
	case http.StatusUnprocessableEntity:
		apiErr.Field = parsed.validationField(message)
	case http.StatusTooManyRequests:
		apiErr.RetryAfter = parsed.retryAfter(header)
	}

	return apiErr
}

// errorBody is a parsed error payload. fields is nil for non-object bodies.
type errorBody struct {
	fields map[string]interface{}
	text   string
}

func parseErrorBody(body []byte) errorBody {
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err == nil {
		return errorBody{fields: fields}
	}

	text := string(body)

	start := strings.Index(text, "<pre>")
	end := strings.Index(text, "</pre>")

	if start >= 0 && end > start {
		text = text[start+len("<pre>") : end]
	}

	return errorBody{text: strings.TrimSpace(text)}
}

func (b errorBody) str(key string) string {
	if b.fields == nil {
		return ""
	}

	switch v := b.fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (b errorBody) message() string {
	if b.fields == nil {
		return b.text
	}

	for _, key := range []string{"detail", "message", "error"} {
		if msg := b.str(key); msg != "" {
			return msg
		}
	}

	// FastAPI validation errors carry detail as a list of {loc, msg} objects.
	if items, ok := b.fields["detail"].([]interface{}); ok {
		parts := make([]string, 0, len(items))

		for _, item := range items {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}

			msg, _ := entry["msg"].(string)
			if loc := joinLoc(entry["loc"]); loc != "" {
				msg = loc + ": " + msg
			}

			parts = append(parts, msg)
		}

		return strings.Join(parts, "; ")
	}

	return ""
}

func (b errorBody) code() string {
	for _, key := range []string{"code", "error_code", "type"} {
		if code := b.str(key); code != "" {
			return code
		}
	}

	return ""
}

// resource recovers the resource type and id of a 404 from structured fields
// first, then from the message wording the server uses.
func (b errorBody) resource(message string) (string, string) {
	resourceType := b.str("resource_type")

	id := b.str("resource_id")
	if id == "" {
		id = b.str("id")
	}

	msgType, msgID := resourceFromMessage(message)

	if resourceType == "" {
		resourceType = msgType
	}

	if id == "" {
		id = msgID
	}

	return resourceType, id
}

func (b errorBody) validationField(message string) string {
	if field := b.str("field"); field != "" {
		return field
	}

	if b.fields != nil {
		if errs, ok := b.fields["validation_errors"].(map[string]interface{}); ok && len(errs) > 0 {
			keys := make([]string, 0, len(errs))
			for field := range errs {
				keys = append(keys, field)
			}

			sort.Strings(keys)

			return keys[0]
		}

		if items, ok := b.fields["detail"].([]interface{}); ok && len(items) > 0 {
			if entry, ok := items[0].(map[string]interface{}); ok {
				if locs, ok := entry["loc"].([]interface{}); ok && len(locs) > 0 {
					return fmt.Sprint(locs[len(locs)-1])
				}
			}
		}
	}

	const marker = "Field '"
	if start := strings.Index(message, marker); start >= 0 {
		rest := message[start+len(marker):]
		if end := strings.Index(rest, "'"); end >= 0 {
			return rest[:end]
		}
	}

	return ""
}

func (b errorBody) retryAfter(header http.Header) time.Duration {
	if header != nil {
		if raw := header.Get("Retry-After"); raw != "" {
			if secs, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				return time.Duration(secs) * time.Second
			}
		}
	}

	for _, key := range []string{"retry_after", "retryAfter"} {
		if raw := b.str(key); raw != "" {
			if secs, err := strconv.ParseFloat(raw, 64); err == nil {
				return time.Duration(secs * float64(time.Second))
			}
		}
	}

	return 0
}

// resourceFromMessage handles the server's 404 wordings:
//
//	Agent with ID agent-123 not found
//	Tool 'send_message' not found
//	No source found with ID: source-123
func resourceFromMessage(message string) (string, string) {
	lower := strings.ToLower(message)

	if pos := strings.Index(lower, " not found"); pos >= 0 {
		prefix := message[:pos]

		if idx := strings.Index(prefix, " with ID "); idx >= 0 {
			id := strings.Trim(strings.TrimSpace(prefix[idx+len(" with ID "):]), `"'`)

			return strings.TrimSpace(prefix[:idx]), id
		}

		if closing := strings.LastIndex(prefix, "'"); closing >= 0 {
			if opening := strings.LastIndex(prefix[:closing], "'"); opening >= 0 {
				return strings.TrimSpace(prefix[:opening]), prefix[opening+1 : closing]
			}
		}

		return strings.TrimSpace(prefix), ""
	}

	if strings.Contains(lower, " found ") && strings.Contains(lower, " with id:") {
		colon := strings.Index(message, ":")
		id := strings.TrimSpace(message[colon+1:])
		words := strings.Fields(message[:colon])

		for i, word := range words {
			if strings.EqualFold(word, "found") && i > 0 {
				return words[i-1], id
			}
		}
	}

	return "", ""
}

func joinLoc(raw interface{}) string {
	locs, ok := raw.([]interface{})
	if !ok {
		return ""
	}

	parts := make([]string, 0, len(locs))
	for _, loc := range locs {
		parts = append(parts, fmt.Sprint(loc))
	}

	return strings.Join(parts, ".")
}

func defaultStatusText(status int) string {
	switch status {
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusRequestTimeout,
		http.StatusUnprocessableEntity,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return http.StatusText(status)
	default:
		return fmt.Sprintf("HTTP %d", status)
	}
}
