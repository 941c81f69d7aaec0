package frappe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the upstream store. The message is
// passed through to the caller where the upstream supplied one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("frappe: upstream status %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the upstream answered 404.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// extractMessage digs a human-readable message out of a Frappe error body.
// Frappe is inconsistent here: plain {"message": …}, {"exception": …}, and
// the _server_messages JSON-in-JSON encoding all occur in the wild.
func extractMessage(raw []byte) string {
	var body struct {
		Message        string `json:"message"`
		Exception      string `json:"exception"`
		ServerMessages string `json:"_server_messages"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.ServerMessages != "" {
			if msg := firstServerMessage(body.ServerMessages); msg != "" {
				return msg
			}
		}
		if body.Exception != "" {
			return body.Exception
		}
	}
	if s := strings.TrimSpace(string(raw)); s != "" && len(s) < 512 && !strings.HasPrefix(s, "<") {
		return s
	}
	return "upstream request failed"
}

// firstServerMessage unwraps _server_messages: a JSON array of JSON strings,
// each holding an object with a "message" key.
func firstServerMessage(encoded string) string {
	var outer []string
	if err := json.Unmarshal([]byte(encoded), &outer); err != nil || len(outer) == 0 {
		return ""
	}
	var inner struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(outer[0]), &inner); err != nil {
		return ""
	}
	return inner.Message
}
