// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"context"
	"net/http"

	"github.com/gogama/wrq/request"
)

// A Hook identifies one of the points in the request lifecycle at which
// a client invokes a caller-supplied callback.
type Hook int

const (
	// BeforeRequest identifies the hook that runs before the request is
	// sent. It receives the request options, including the context
	// carrying the request's cancellation signal, and may return a
	// patch which is overlaid onto them (see request.Options.Overlay).
	BeforeRequest Hook = iota
	// OnResponse identifies the hook that runs whenever the transport
	// produces a response, regardless of status code. It runs before
	// OnSuccess or OnError.
	OnResponse
	// OnSuccess identifies the hook that runs after OnResponse when
	// the response status is ok.
	OnSuccess
	// OnError identifies the hook that runs when the request fails with
	// a non-ok status (*HTTPError) or a transport failure (*Error).
	OnError
	// OnTimeout identifies the hook that runs when the timeout elapses
	// before the transport settles. It receives a *TimeoutError.
	OnTimeout
	// OnAbort identifies the hook that runs when the caller's
	// cancellation signal fires before the transport settles. It
	// receives an *AbortError.
	OnAbort
	// hookSentinel provides the total number of hooks.
	hookSentinel
)

var hookNames = []string{
	"beforeRequest",
	"onResponse",
	"onSuccess",
	"onError",
	"onTimeout",
	"onAbort",
}

// Hooks returns every hook, in the order in which they may fire.
func Hooks() []Hook {
	return []Hook{
		BeforeRequest,
		OnResponse,
		OnSuccess,
		OnError,
		OnTimeout,
		OnAbort,
	}
}

// Name returns the name of the hook.
func (h Hook) Name() string {
	if h < 0 || h >= hookSentinel {
		return "unknown"
	}
	return hookNames[int(h)]
}

// String returns the name of the hook.
func (h Hook) String() string {
	return h.Name()
}

// A BeforeRequestFunc is the callback type for the BeforeRequest hook.
//
// The returned options are a patch: non-zero fields replace the
// corresponding request option, zero fields leave it unchanged, and a
// nil patch changes nothing. Header is replaced wholesale, so to add a
// header clone o.Header, add to the clone and return it.
//
// A returned error stops the lifecycle. The request ends as a
// transport failure (*Error with Op "beforeRequest") and the OnError
// hook fires. A patch returned together with the error is still
// overlaid, so OnError sees, for example, a context the callback
// attached before failing.
type BeforeRequestFunc func(ctx context.Context, o request.Options) (*request.Options, error)

// A ResponseFunc is the callback type for the OnResponse and OnSuccess
// hooks. The response is a copy which the callback may consume or
// modify freely.
//
// A returned error is returned unmodified to the caller, and no
// further hooks run.
type ResponseFunc func(ctx context.Context, resp *http.Response) error

// An ErrorFunc is the callback type for the OnError, OnTimeout and
// OnAbort hooks.
//
// A returned error is returned to the caller in place of err.
type ErrorFunc func(ctx context.Context, err error) error

// A HookSet holds at most one callback per hook. Every field is
// optional; a nil callback is simply not invoked.
//
// Hooks are invoked synchronously on the goroutine executing the
// request, and may block. A callback which starts asynchronous work
// must wait for it before returning if the request should wait too.
//
// Except for BeforeRequest, which receives the request's context, hooks
// receive a context carrying the request context's values but not its
// cancellation, so they may do I/O even after a timeout or abort.
//
// The zero value is a valid, empty hook set. A HookSet must not be
// modified once installed in a client.
type HookSet struct {
	BeforeRequest BeforeRequestFunc
	OnResponse    ResponseFunc
	OnSuccess     ResponseFunc
	OnError       ErrorFunc
	OnTimeout     ErrorFunc
	OnAbort       ErrorFunc
}

func (s *HookSet) responseFunc(h Hook) ResponseFunc {
	if s == nil {
		return nil
	}
	switch h {
	case OnResponse:
		return s.OnResponse
	case OnSuccess:
		return s.OnSuccess
	default:
		return nil
	}
}

func (s *HookSet) errorFunc(h Hook) ErrorFunc {
	if s == nil {
		return nil
	}
	switch h {
	case OnError:
		return s.OnError
	case OnTimeout:
		return s.OnTimeout
	case OnAbort:
		return s.OnAbort
	default:
		return nil
	}
}

func (s *HookSet) beforeRequest() BeforeRequestFunc {
	if s == nil {
		return nil
	}
	return s.BeforeRequest
}

// Chain combines hook sets into one. For each hook, the callbacks of
// the given sets run in argument order until one returns an error.
//
// For BeforeRequest, each callback receives the options as patched by
// the callbacks before it, and if one fails the patches made so far are
// returned along with its error. For OnResponse and OnSuccess, each callback
// receives its own copy of the response. Nil sets are skipped.
func Chain(sets ...*HookSet) *HookSet {
	c := &HookSet{}
	for _, s := range sets {
		if s == nil {
			continue
		}
		c.BeforeRequest = chainBefore(c.BeforeRequest, s.BeforeRequest)
		c.OnResponse = chainResponse(c.OnResponse, s.OnResponse)
		c.OnSuccess = chainResponse(c.OnSuccess, s.OnSuccess)
		c.OnError = chainError(c.OnError, s.OnError)
		c.OnTimeout = chainError(c.OnTimeout, s.OnTimeout)
		c.OnAbort = chainError(c.OnAbort, s.OnAbort)
	}
	return c
}

func chainBefore(a, b BeforeRequestFunc) BeforeRequestFunc {
	if a == nil {
		return b
	} else if b == nil {
		return a
	}
	return func(ctx context.Context, o request.Options) (*request.Options, error) {
		p, err := a(ctx, o)
		if err != nil {
			return p, err
		}
		o = o.Overlay(p)
		q, err := b(o.Ctx(), o)
		o = o.Overlay(q)
		return &o, err
	}
}

func chainResponse(a, b ResponseFunc) ResponseFunc {
	if a == nil {
		return b
	} else if b == nil {
		return a
	}
	return func(ctx context.Context, resp *http.Response) error {
		if err := a(ctx, copyResponse(resp)); err != nil {
			return err
		}
		return b(ctx, copyResponse(resp))
	}
}

func chainError(a, b ErrorFunc) ErrorFunc {
	if a == nil {
		return b
	} else if b == nil {
		return a
	}
	return func(ctx context.Context, err error) error {
		if hookErr := a(ctx, err); hookErr != nil {
			return hookErr
		}
		return b(ctx, err)
	}
}
