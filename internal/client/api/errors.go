package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Alert texts shown to the user, by error category.
const (
	msgPermissionDenied = "You do not have permission to do that."
	msgNotFound         = "The requested resource was not found."
	msgRateLimited      = "Too many requests. Please wait a few seconds and try again."
	msgGeneric          = "Something went wrong. Please try again."
)

// APIError is one entry of a JSON-API error list:
//
//	{"errors": [{"status": "422", "code": "validation_error", "detail": "..."}]}
type APIError struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// RequestError is a classified transport failure: a non-2xx response or a
// 2xx response whose body was not valid JSON. It carries everything needed
// both for caller-side handling (errors.Is/As) and for the user-facing alert.
type RequestError struct {
	// Status is the HTTP status, or 500 for a malformed success body, or 0
	// when the transport itself failed before any response arrived.
	Status int

	// Method and URL identify the request for debug output.
	Method string
	URL    string

	// Body is the raw response body.
	Body string

	// Errors is the decoded JSON-API error list, if the body carried one.
	Errors []APIError

	// Alert is the derived user-facing message.
	Alert string

	// cause is set for transport-level failures.
	cause error
}

func (e *RequestError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("request %s %s: %v", e.Method, e.URL, e.cause)
	}
	return fmt.Sprintf("request %s %s: status %d", e.Method, e.URL, e.Status)
}

func (e *RequestError) Unwrap() error { return e.cause }

// DebugDetail renders the technical detail revealed behind the alert in
// debug-enabled deployments.
func (e *RequestError) DebugDetail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s -> %d", e.Method, e.URL, e.Status)
	for _, apiErr := range e.Errors {
		fmt.Fprintf(&b, "\n  [%s] %s", apiErr.Code, apiErr.Detail)
	}
	if len(e.Errors) == 0 && e.Body != "" {
		fmt.Fprintf(&b, "\n  %s", e.Body)
	}
	return b.String()
}

// parseAPIErrors decodes a JSON-API error body. Entries are validated
// strictly at this boundary: a body whose "errors" member is not a list of
// objects with string fields yields nil rather than half-guessed entries.
func parseAPIErrors(body []byte) []APIError {
	var envelope struct {
		Errors []json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		return nil
	}

	parsed := make([]APIError, 0, len(envelope.Errors))
	for _, raw := range envelope.Errors {
		var entry APIError
		dec := json.NewDecoder(strings.NewReader(string(raw)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&entry); err != nil {
			// Malformed entry: reject the whole list, don't guess-default.
			return nil
		}
		parsed = append(parsed, entry)
	}
	return parsed
}

// alertMessage derives the user-facing message for a failed request.
//
// Status table:
//
//	422        join of all detail fields from the JSON-API error list
//	401, 403   permission denied
//	404, 410   not found
//	429        rate limited
//	other      generic failure
func alertMessage(status int, apiErrors []APIError) string {
	switch status {
	case 422:
		details := make([]string, 0, len(apiErrors))
		for _, e := range apiErrors {
			if e.Detail != "" {
				details = append(details, e.Detail)
			}
		}
		if len(details) > 0 {
			return strings.Join(details, "\n")
		}
		return msgGeneric
	case 401, 403:
		return msgPermissionDenied
	case 404, 410:
		return msgNotFound
	case 429:
		return msgRateLimited
	default:
		return msgGeneric
	}
}
