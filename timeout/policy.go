// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/wrq/request"
)

// A Policy defines a timeout policy which a client consults, once per
// request, after the before-request hook has run and immediately
// before the request goes in flight.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to race against the transport.
	//
	// Parameter e contains the current state of the execution. Its
	// Options field holds the effective request options, including any
	// per-request timeout.
	Timeout(e *request.Execution) time.Duration
}

// DefaultTimeout is the timeout used when neither the request nor the
// client configures one.
const DefaultTimeout = 10 * time.Second

// DefaultPolicy is the default timeout policy. It uses the per-request
// timeout if one is set and DefaultTimeout otherwise.
var DefaultPolicy Policy = Default(0)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that returns d for every request,
// ignoring any per-request timeout.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

// Layered constructs a timeout policy that uses the per-request timeout
// when one is set, and falls back to the fallback policy otherwise.
func Layered(fallback Policy) Policy {
	if fallback == nil {
		panic("wrq/timeout: nil fallback")
	}
	return layered{fallback}
}

// Default constructs the timeout policy a client uses when configured
// with default timeout d: the per-request timeout if set, else d if
// positive, else DefaultTimeout.
func Default(d time.Duration) Policy {
	if d <= 0 {
		d = DefaultTimeout
	}
	return Layered(Fixed(d))
}

type fixed time.Duration

func (f fixed) Timeout(_ *request.Execution) time.Duration {
	return time.Duration(f)
}

type layered struct {
	fallback Policy
}

func (l layered) Timeout(e *request.Execution) time.Duration {
	if e.Options.Timeout > 0 {
		return e.Options.Timeout
	}
	return l.fallback.Timeout(e)
}
