// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "wrq/request: nil context"
)

// A Descriptor describes one logical HTTP request for execution by a
// client: the path to append to the client's base URL, and the
// request options (method, headers, body, timeout).
//
// A Descriptor is owned by exactly one request lifecycle. It is not
// modified by the lifecycle, which works on a copy of its Options, so
// a Descriptor may be executed more than once, but it must not be
// modified while an execution is in flight.
//
// Like the http.Request structure, a Descriptor has a context. The
// context is the caller's cancellation token: cancelling it aborts the
// in-flight request, provided the underlying transport observes
// cancellation (the Go standard HTTP client does).
type Descriptor struct {
	// Path is appended verbatim to the client's base URL to form the
	// request URL. No separator normalization is done.
	Path string

	// Options contains the request options the lifecycle starts from.
	// The before-request hook may overlay changes onto a copy of them.
	Options Options

	// ctx is the caller's cancellation token. It should only be
	// modified by copying the whole Descriptor using WithContext.
	ctx context.Context
}

// NewDescriptor wraps NewDescriptorWithContext using the background
// context.
func NewDescriptor(method, path string, body []byte) (*Descriptor, error) {
	return NewDescriptorWithContext(context.Background(), method, path, body)
}

// NewDescriptorWithContext returns a new Descriptor given a method,
// path, and optional pre-serialized body.
//
// An empty method means GET. The method must be a valid HTTP token.
func NewDescriptorWithContext(ctx context.Context, method, path string, body []byte) (*Descriptor, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = http.MethodGet
	}
	if !ValidMethod(method) {
		return nil, fmt.Errorf("wrq/request: invalid method %q", method)
	}
	return &Descriptor{
		ctx:  ctx,
		Path: path,
		Options: Options{
			Method: method,
			Header: make(http.Header),
			Body:   body,
		},
	}, nil
}

// Context returns the descriptor's context. To change the context, use
// WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (d *Descriptor) Context() context.Context {
	if d.ctx != nil {
		return d.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of d with its context changed to
// ctx, which must be non-nil.
func (d *Descriptor) WithContext(ctx context.Context) *Descriptor {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	d2 := new(Descriptor)
	*d2 = *d
	d2.ctx = ctx
	return d2
}

// SetTimeout sets the per-request timeout. A zero or negative value
// clears it, so the client's configured default applies.
func (d *Descriptor) SetTimeout(timeout time.Duration) {
	if timeout < 0 {
		timeout = 0
	}
	d.Options.Timeout = timeout
}

// Validate checks the descriptor's method and header fields for
// syntactic validity.
func (d *Descriptor) Validate() error {
	if d.Options.Method != "" && !ValidMethod(d.Options.Method) {
		return fmt.Errorf("wrq/request: invalid method %q", d.Options.Method)
	}
	return ValidHeader(d.Options.Header)
}

// ValidMethod reports whether method is a syntactically valid HTTP
// method, i.e. a non-empty token as defined in RFC 7230 section 3.2.6.
func ValidMethod(method string) bool {
	if method == "" {
		return false
	}
	for _, r := range method {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}
	return true
}

// ValidHeader checks that every field name and value in h is
// syntactically valid.
func ValidHeader(h http.Header) error {
	for k, vs := range h {
		if !httpguts.ValidHeaderFieldName(k) {
			return fmt.Errorf("wrq/request: invalid header field name %q", k)
		}
		for _, v := range vs {
			if !httpguts.ValidHeaderFieldValue(v) {
				return fmt.Errorf("wrq/request: invalid header field value for %q", k)
			}
		}
	}
	return nil
}
