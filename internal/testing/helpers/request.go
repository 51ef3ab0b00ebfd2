package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       testing.TB
	method  string
	path    string
	body    interface{}
	headers map[string]string
	session *Session
	guard   string
}

// NewRequest creates a new request builder
func NewRequest(t testing.TB, method, path string) *RequestBuilder {
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithSession authenticates the request as the user acting on guard
func (rb *RequestBuilder) WithSession(s *Session, guard string) *RequestBuilder {
	rb.session = s
	rb.guard = guard
	return rb
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	if rb.body != nil {
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)
	if rb.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}

	if rb.session != nil {
		req.Header.Set("Authorization", "Bearer "+rb.session.Token(rb.guard))
	}

	return req
}
