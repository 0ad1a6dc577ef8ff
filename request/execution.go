// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"time"
)

// An Execution represents the state of a single Descriptor execution.
//
// When a request is executed an Execution is created for it. It is
// updated as the lifecycle progresses and is ultimately returned to
// the caller. Callers should treat its fields as read-only.
type Execution struct {
	// Descriptor specifies the request being executed. It is never nil.
	Descriptor *Descriptor
	// URL is the absolute request URL: the client's base URL followed
	// by the descriptor's path.
	URL string
	// Options are the effective request options, after the
	// before-request hook has run. Before then they are the zero value.
	Options Options
	// Timeout is the effective timeout raced against the transport.
	// It is zero until the request is in flight.
	Timeout time.Duration
	// Start is the time the request went in flight. It is the zero
	// time if the lifecycle ended before reaching the transport.
	Start time.Time
	// End is the time the lifecycle ended. It contains the zero value
	// until then.
	End time.Time
	// Request is the HTTP request handed to the transport.
	Request *http.Request
	// Response is the HTTP response received from the transport. It is
	// nil unless the outcome is Success or HTTPFailure. Its Body field
	// reads from the buffered body, so it may be read by the caller.
	Response *http.Response
	// Body is the complete response body, buffered while the request
	// was in flight.
	Body []byte
	// Err is the error the lifecycle ended with, or nil on Success.
	Err error
	// Outcome is the terminal classification of the lifecycle. It is
	// None until the lifecycle ends.
	Outcome Outcome
}

// StatusCode returns the status code of the HTTP response. If there is
// no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the HTTP response headers. If there is no HTTP
// response, the nil header is returned.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}
	return e.Response.Header
}

// Duration returns the time the request spent in flight.
//
// If the request never went in flight, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Now().Sub(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the request went in flight.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the lifecycle has ended.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}
