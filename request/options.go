// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"
)

// Options are the request options a lifecycle sends to the transport.
// They are the value handed to the before-request hook, and the shape
// of the patch the hook may return.
//
// When Options is used as a patch, a zero field means "not present".
type Options struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	Method string

	// Header contains the request header fields to send.
	Header http.Header

	// Body is the pre-serialized request body. A nil or empty body
	// means no body is sent.
	Body []byte

	// Timeout is the per-request timeout. Zero means the client's
	// configured default applies.
	Timeout time.Duration

	// Context carries the cancellation signal attached to the request.
	// The lifecycle always sets it before the before-request hook runs.
	Context context.Context
}

// Overlay returns a copy of o with every non-zero field of patch
// written over it. A nil patch returns o unchanged.
//
// The overlay is shallow. In particular a non-nil patch Header
// replaces o's Header wholesale; the two are never merged. Hooks which
// want to add a single header should clone the current Header, add to
// the clone, and return it.
func (o Options) Overlay(patch *Options) Options {
	if patch == nil {
		return o
	}
	if patch.Method != "" {
		o.Method = patch.Method
	}
	if patch.Header != nil {
		o.Header = patch.Header
	}
	if patch.Body != nil {
		o.Body = patch.Body
	}
	if patch.Timeout != 0 {
		o.Timeout = patch.Timeout
	}
	if patch.Context != nil {
		o.Context = patch.Context
	}
	return o
}

// Ctx returns the options' context, or the background context if none
// is set.
func (o Options) Ctx() context.Context {
	if o.Context != nil {
		return o.Context
	}
	return context.Background()
}
