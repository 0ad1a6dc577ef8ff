// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gogama/wrq/request"
)

var (
	// ErrRequest matches, via errors.Is, every error a client returns
	// when a request lifecycle ends in anything other than success:
	// *HTTPError, *TimeoutError, *AbortError and *Error.
	ErrRequest = errors.New("wrq: request failed")

	// ErrNoResponse is returned by the Pending projections when the
	// lifecycle ended without an error but also without a response.
	// It indicates a programming error, such as an HTTPDoer returning
	// a nil response and a nil error.
	ErrNoResponse = errors.New("wrq: no response")
)

// An HTTPError is returned when the transport produces a response
// whose status is not ok (see request.OK).
type HTTPError struct {
	// Options are the effective request options.
	Options request.Options
	// Response is the response received. Its body reads from the
	// buffered body.
	Response *http.Response
	// StatusCode is the response status code.
	StatusCode int
	// Reason is the response reason phrase, e.g. "Not Found".
	Reason string
}

func newHTTPError(o request.Options, resp *http.Response) *HTTPError {
	return &HTTPError{
		Options:    o,
		Response:   resp,
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
	}
}

func (e *HTTPError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unknown"
	}
	return fmt.Sprintf("wrq: http failure: status %d, reason %s", e.StatusCode, reason)
}

// Is reports whether target is ErrRequest.
func (e *HTTPError) Is(target error) bool {
	return target == ErrRequest
}

// A TimeoutError is returned when the timeout elapses before the
// transport settles.
type TimeoutError struct {
	// Options are the effective request options.
	Options request.Options
	// Duration is the effective timeout that elapsed.
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("wrq: request timed out after %s", e.Duration)
}

// Is reports whether target is ErrRequest or context.DeadlineExceeded.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrRequest || target == context.DeadlineExceeded
}

// Timeout always returns true. It lets code that checks errors for a
// Timeout method, such as transient.Categorize, recognize the error.
func (e *TimeoutError) Timeout() bool {
	return true
}

// An AbortError is returned when the caller's cancellation signal
// fires before the transport settles.
type AbortError struct {
	// Options are the effective request options.
	Options request.Options
	// Reason describes why the signal fired, e.g. "context canceled".
	Reason string
	// Err is the error the transport failed with.
	Err error
}

func (e *AbortError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unknown"
	}
	return "wrq: request aborted: " + reason
}

// Unwrap returns the transport error.
func (e *AbortError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRequest.
func (e *AbortError) Is(target error) bool {
	return target == ErrRequest
}

// An Error is returned when a request fails for any reason other than
// a non-ok status, a timeout, or an abort: the URL cannot be parsed,
// the before-request hook fails, or the transport fails.
type Error struct {
	// Options are the request options in effect when the failure
	// occurred.
	Options request.Options
	// Op is the operation that failed: "beforeRequest" for a
	// before-request hook failure, otherwise the HTTP method.
	Op string
	// URL is the request URL.
	URL string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("wrq: %s %q: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRequest.
func (e *Error) Is(target error) bool {
	return target == ErrRequest
}

// Timeout reports whether the underlying error is a timeout, for
// example a dial timeout enforced by the transport itself.
func (e *Error) Timeout() bool {
	t, ok := e.Err.(interface{ Timeout() bool })
	return ok && t.Timeout()
}

func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if reason := strings.TrimPrefix(resp.Status, code+" "); reason != "" && reason != resp.Status {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
