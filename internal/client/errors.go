package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// APIError is returned for any response whose status code is not 2xx.
// Message is the human-readable text to show the user.
type APIError struct {
	StatusCode int
	// Status is the reason phrase, e.g. "Not Found".
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// success reports whether code is a 2xx status.
func success(code int) bool {
	return code >= 200 && code < 300
}

// statusText returns the reason phrase of resp without the numeric code.
// It falls back to the standard text when the server sent none.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// decodeResponse decodes a 2xx JSON body into T, or turns a failure into
// an *APIError.
func decodeResponse[T any](resp *http.Response) (T, error) {
	var out T
	if !success(resp.StatusCode) {
		return out, errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// errorFromResponse extracts a message from a failed response. Two body
// shapes are understood: {"error":{"message":...}} and {"message":...}.
// Any other JSON falls back to the status text; a missing or unparsable
// body yields "HTTP {code}: {text}".
func errorFromResponse(resp *http.Response) *APIError {
	text := statusText(resp)
	apiErr := &APIError{StatusCode: resp.StatusCode, Status: text}

	raw, err := io.ReadAll(resp.Body)
	var body any
	if err == nil {
		err = json.Unmarshal(raw, &body)
	}
	if err != nil {
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, text)
		return apiErr
	}

	apiErr.Message = text
	if msg := messageFrom(body); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

// messageFrom returns error.message, else message, else "".
func messageFrom(body any) string {
	obj, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	if nested, ok := obj["error"].(map[string]any); ok {
		if msg, ok := nested["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if msg, ok := obj["message"].(string); ok && msg != "" {
		return msg
	}
	return ""
}
