// Package api implements the client's request pipeline: it executes a
// described HTTP call against the forum backend, transparently attaching the
// anti-forgery token, translating unsupported methods, parsing the JSON
// response, and converting non-2xx responses into classified,
// user-presentable errors.
package api

import (
	"fmt"

	"github.com/forumkit/forumkit/internal/common"
)

// ErrorHandler decides what happens to a classified request error. Returning
// nil suppresses the error entirely; returning a non-nil error propagates it
// (and lets the pipeline surface an alert). The default handler rethrows.
type ErrorHandler func(err error) error

// Request describes a single API call. It is constructed per call and never
// reused.
type Request struct {
	// Method is the logical HTTP verb. Verbs other than GET and POST are
	// carried on the wire as POST with the real verb in the
	// X-HTTP-Method-Override header.
	Method string

	// Path is resolved against the pipeline's base URL unless it is already
	// absolute.
	Path string

	// Body, when non-nil, is marshalled to JSON and sent with
	// Content-Type: application/json.
	Body any

	// Headers are applied last and may override anything the pipeline set.
	Headers map[string]string

	// Background suppresses the alert side effects (dismiss-previous and
	// show-on-failure). Pass-through flag; it changes no other behavior.
	Background bool

	// ErrorHandler overrides the default rethrow strategy for this call.
	ErrorHandler ErrorHandler
}

var allowedMethods = map[string]struct{}{
	"GET":     {},
	"HEAD":    {},
	"POST":    {},
	"PUT":     {},
	"PATCH":   {},
	"DELETE":  {},
	"OPTIONS": {},
}

// validate checks the descriptor before dispatch.
func (r *Request) validate() error {
	if _, ok := allowedMethods[r.Method]; !ok {
		return fmt.Errorf("%w: unsupported method %q", common.ErrorValidation, r.Method)
	}
	if r.Path == "" {
		return fmt.Errorf("%w: empty request path", common.ErrorValidation)
	}
	return nil
}

// wireMethod returns the method to put on the wire and the value for the
// method-override header ("" when no override is needed).
func (r *Request) wireMethod() (method, override string) {
	if r.Method == "GET" || r.Method == "POST" {
		return r.Method, ""
	}
	return "POST", r.Method
}
