package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/forumkit/forumkit/internal/client/session"
	"github.com/forumkit/forumkit/internal/common"
	"github.com/forumkit/forumkit/internal/logging"
)

// Pipeline executes API requests against the forum backend.
//
// Every outgoing request carries the session's current anti-forgery token;
// every response may rotate it. The pipeline itself has no retry logic: each
// call is exactly-once at this layer, timeouts belong to the http.Client or
// the caller's context, and concurrent calls are independent.
type Pipeline struct {
	base    string
	http    *http.Client
	session *session.Session
	alerts  AlertReporter
	logger  logging.Logger

	// Handle of the last shown request-failure alert. Dismissing it before
	// each new call is a best-effort UX nicety, not a correctness guarantee:
	// concurrent in-flight requests may interleave their dismissals.
	mu         sync.Mutex
	debug      bool
	errorAlert int
}

// SetDebug switches technical detail on failure alerts on or off. The flag
// usually comes from the forum meta, which is only known after boot.
func (p *Pipeline) SetDebug(debug bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.debug = debug
}

// New constructs a Pipeline. base is the backend origin (e.g.
// "http://localhost:8080"); httpClient may be nil, in which case
// http.DefaultClient is used.
func New(base string, httpClient *http.Client, sess *session.Session, alerts AlertReporter, logger logging.Logger, debug bool) *Pipeline {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Pipeline{
		base:    strings.TrimRight(base, "/"),
		http:    httpClient,
		session: sess,
		alerts:  alerts,
		logger:  logger,
		debug:   debug,
	}
}

// Do executes the described request and returns the parsed JSON body.
//
// On failure the returned error is (or wraps) a *RequestError; the error has
// already been offered to the descriptor's ErrorHandler (default: rethrow),
// and, if it propagated, surfaced as a user alert replacing any alert from a
// previous failed call.
func (p *Pipeline) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	// A new call's outcome fully replaces the previous one rather than
	// stacking alerts.
	if !req.Background {
		p.dismissPreviousAlert()
	}

	httpReq, err := p.buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := p.http.Do(httpReq)
	if err != nil {
		reqErr := &RequestError{
			Method: req.Method,
			URL:    httpReq.URL.String(),
			Alert:  msgGeneric,
			cause:  err,
		}
		return nil, p.handleFailure(req, reqErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		reqErr := &RequestError{
			Status: resp.StatusCode,
			Method: req.Method,
			URL:    httpReq.URL.String(),
			Alert:  msgGeneric,
			cause:  err,
		}
		return nil, p.handleFailure(req, reqErr)
	}

	// Token rotation happens on every call, not just login.
	if rotated := resp.Header.Get(common.CSRFTokenHeaderName); rotated != "" {
		p.session.SetCSRFToken(rotated)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if len(bytes.TrimSpace(body)) == 0 {
			return json.RawMessage("null"), nil
		}
		if json.Valid(body) {
			return json.RawMessage(body), nil
		}
		// A malformed success response is not silently swallowed.
		reqErr := &RequestError{
			Status: http.StatusInternalServerError,
			Method: req.Method,
			URL:    httpReq.URL.String(),
			Body:   string(body),
			Alert:  msgGeneric,
		}
		return nil, p.handleFailure(req, reqErr)
	}

	apiErrors := parseAPIErrors(body)
	reqErr := &RequestError{
		Status: resp.StatusCode,
		Method: req.Method,
		URL:    httpReq.URL.String(),
		Body:   string(body),
		Errors: apiErrors,
		Alert:  alertMessage(resp.StatusCode, apiErrors),
	}
	return nil, p.handleFailure(req, reqErr)
}

func (p *Pipeline) buildHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := req.Path
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = p.base + req.Path
	}

	var bodyReader io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	wireMethod, override := req.wireMethod()

	httpReq, err := http.NewRequestWithContext(ctx, wireMethod, target, bodyReader)
	if err != nil {
		return nil, err
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if override != "" {
		httpReq.Header.Set(common.MethodOverrideHeaderName, override)
	}
	if token := p.session.CSRFToken(); token != "" {
		httpReq.Header.Set(common.CSRFTokenHeaderName, token)
	}
	if access := p.session.AccessToken(); access != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, "Token "+access)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// handleFailure runs the error-handler strategy and, when the error
// propagates, surfaces the user alert.
func (p *Pipeline) handleFailure(req Request, reqErr *RequestError) error {
	handler := req.ErrorHandler
	if handler == nil {
		handler = func(err error) error { return err }
	}

	err := handler(reqErr)
	if err == nil {
		// Fully suppressed by the caller's handler.
		return nil
	}

	if p.logger != nil {
		p.logger.Error(context.Background(), "request failed",
			"method", reqErr.Method, "url", reqErr.URL, "status", reqErr.Status)
	}

	if !req.Background {
		p.showErrorAlert(reqErr)
	}
	return err
}

func (p *Pipeline) dismissPreviousAlert() {
	if p.alerts == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.errorAlert != 0 {
		p.alerts.Dismiss(p.errorAlert)
		p.errorAlert = 0
	}
}

func (p *Pipeline) showErrorAlert(reqErr *RequestError) {
	if p.alerts == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	alert := Alert{Type: "error", Message: reqErr.Alert}
	if p.debug {
		alert.Detail = reqErr.DebugDetail()
	}
	p.errorAlert = p.alerts.Show(alert)
}
