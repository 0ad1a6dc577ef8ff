// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"net/http"
	"time"

	"github.com/gogama/wrq/request"
)

// A RequestOption sets a per-request option on a request built by one
// of the Client's request builder methods.
type RequestOption func(*requestSettings)

type requestSettings struct {
	header  http.Header
	timeout time.Duration
	json    *bool
}

// WithHeader sets a request header, overriding any default header of
// the same name.
func WithHeader(key, value string) RequestOption {
	return func(s *requestSettings) {
		if s.header == nil {
			s.header = make(http.Header)
		}
		s.header.Set(key, value)
	}
}

// WithHeaders sets request headers, overriding any default headers of
// the same names.
func WithHeaders(h http.Header) RequestOption {
	return func(s *requestSettings) {
		if s.header == nil {
			s.header = make(http.Header)
		}
		for k, vs := range h {
			s.header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
		}
	}
}

// WithTimeout sets the per-request timeout, which takes precedence over
// the client's default timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(s *requestSettings) {
		s.timeout = d
	}
}

// WithJSON overrides, for one request, whether a body that is not a
// string, []byte or io.Reader is encoded as JSON.
func WithJSON(enabled bool) RequestOption {
	return func(s *requestSettings) {
		s.json = &enabled
	}
}

// Get builds a GET request for path.
func (c *Client) Get(path string, opts ...RequestOption) *Pending {
	return c.build(http.MethodGet, path, nil, opts)
}

// Head builds a HEAD request for path.
func (c *Client) Head(path string, opts ...RequestOption) *Pending {
	return c.build(http.MethodHead, path, nil, opts)
}

// Options builds an OPTIONS request for path.
func (c *Client) Options(path string, opts ...RequestOption) *Pending {
	return c.build(http.MethodOptions, path, nil, opts)
}

// Delete builds a DELETE request for path.
func (c *Client) Delete(path string, opts ...RequestOption) *Pending {
	return c.build(http.MethodDelete, path, nil, opts)
}

// Post builds a POST request for path with the given body.
//
// The body parameter may be nil for an empty body, a string, []byte,
// io.Reader, or io.ReadCloser. Any other value is encoded as JSON
// unless JSON encoding is disabled, and the Content-Type header is
// set to application/json unless already set.
func (c *Client) Post(path string, body interface{}, opts ...RequestOption) *Pending {
	return c.build(http.MethodPost, path, body, opts)
}

// Put builds a PUT request for path with the given body, which is
// treated as Post treats it.
func (c *Client) Put(path string, body interface{}, opts ...RequestOption) *Pending {
	return c.build(http.MethodPut, path, body, opts)
}

// Patch builds a PATCH request for path with the given body, which is
// treated as Post treats it.
func (c *Client) Patch(path string, body interface{}, opts ...RequestOption) *Pending {
	return c.build(http.MethodPatch, path, body, opts)
}

func (c *Client) build(method, path string, body interface{}, opts []RequestOption) *Pending {
	var s requestSettings
	for _, opt := range opts {
		opt(&s)
	}

	asJSON := c.jsonEnabled()
	if s.json != nil {
		asJSON = *s.json
	}
	b, isJSON, err := request.EncodeBody(body, asJSON)
	if err != nil {
		return &Pending{client: c, err: err}
	}

	d, err := request.NewDescriptor(method, path, b)
	if err != nil {
		return &Pending{client: c, err: err}
	}
	for k, vs := range c.cfg.Headers {
		d.Options.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	for k, vs := range s.header {
		d.Options.Header[k] = vs
	}
	if isJSON && d.Options.Header.Get("Content-Type") == "" {
		d.Options.Header.Set("Content-Type", "application/json")
	}
	d.SetTimeout(s.timeout)
	if err = d.Validate(); err != nil {
		return &Pending{client: c, err: err}
	}

	return &Pending{client: c, d: d}
}
