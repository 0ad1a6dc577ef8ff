// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"github.com/gogama/wrq/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes a request descriptor through the request lifecycle and
// returns the execution record (and error, if any). Client implements
// the Doer interface.
type Doer interface {
	Do(d *request.Descriptor) (*request.Execution, error)
}

// Getter is the interface that wraps the body-less request builder
// methods Get, Head, Options and Delete.
//
// Each method builds a request for the given path, relative to the
// implementation's base URL, and returns it pending execution. Client
// implements the Getter interface.
type Getter interface {
	Get(path string, opts ...RequestOption) *Pending
	Head(path string, opts ...RequestOption) *Pending
	Options(path string, opts ...RequestOption) *Pending
	Delete(path string, opts ...RequestOption) *Pending
}

// Poster is the interface that wraps the request builder methods which
// take a body: Post, Put and Patch.
//
// The body parameter may be nil for an empty body, a string, []byte,
// io.Reader, or io.ReadCloser, or, if JSON encoding is enabled, any
// value encoding/json can marshal. Client implements the Poster
// interface.
type Poster interface {
	Post(path string, body interface{}, opts ...RequestOption) *Pending
	Put(path string, body interface{}, opts ...RequestOption) *Pending
	Patch(path string, body interface{}, opts ...RequestOption) *Pending
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any idle which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Requester is the interface that groups the Do, request builder, and
// CloseIdleConnections methods with Clone. Client implements it.
type Requester interface {
	Doer
	Getter
	Poster
	IdleCloser
	Clone(override Config) *Client
}

var _ Requester = (*Client)(nil)
