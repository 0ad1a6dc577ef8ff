// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/gogama/wrq/request"
)

// A Pending is a request built by one of a Client's request builder
// methods, pending execution. Nothing is sent until one of its
// projection methods (Do, Raw, JSON, Path, Blob, Bare) is called, and
// each call sends the request again.
//
// The context passed to a projection method is the request's
// cancellation token: cancelling it aborts the request with an
// *AbortError. A deadline on the context counts as cancellation too, so
// it also yields an *AbortError, whose Reason is "context deadline
// exceeded". Only the client's own timeout yields a *TimeoutError. A
// nil context is not allowed.
//
// If the request could not be built, for example because the body
// could not be encoded, every projection returns the build error
// without running the lifecycle.
type Pending struct {
	client *Client
	d      *request.Descriptor
	err    error
}

// Descriptor returns the request descriptor, or nil if the request
// could not be built.
func (p *Pending) Descriptor() *request.Descriptor {
	return p.d
}

// Err returns the error that prevented the request from being built,
// if any.
func (p *Pending) Err() error {
	return p.err
}

// Do executes the request and returns the full execution record.
func (p *Pending) Do(ctx context.Context) (*request.Execution, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.client.execute(p.d.WithContext(ctx))
}

// Raw executes the request and returns the untouched response. The
// response body has already been buffered and need not be closed.
func (p *Pending) Raw(ctx context.Context) (*http.Response, error) {
	e, err := p.do(ctx)
	if err != nil {
		return nil, err
	}
	return e.Response, nil
}

// JSON executes the request and decodes the response body, as JSON,
// into v.
func (p *Pending) JSON(ctx context.Context, v interface{}) error {
	e, err := p.do(ctx)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("wrq: decode JSON response: %w", err)
	}
	return nil
}

// Path executes the request and returns the value at the given gjson
// path within the JSON response body. The result's Exists method
// reports whether the path matched anything.
func (p *Pending) Path(ctx context.Context, path string) (gjson.Result, error) {
	e, err := p.do(ctx)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(e.Body) {
		return gjson.Result{}, errors.New("wrq: response body is not valid JSON")
	}
	return gjson.GetBytes(e.Body, path), nil
}

// Blob executes the request and returns the response body.
func (p *Pending) Blob(ctx context.Context) ([]byte, error) {
	e, err := p.do(ctx)
	if err != nil {
		return nil, err
	}
	return e.Body, nil
}

// Bare executes the request and discards the response, which is useful
// when only the lifecycle's side effects matter.
func (p *Pending) Bare(ctx context.Context) error {
	_, err := p.do(ctx)
	return err
}

// Transform executes the request, decodes the JSON response body into
// a generic value (map[string]interface{}, []interface{}, string,
// float64, bool or nil), and passes it to fn.
//
// If fn is nil, the decoded value itself is returned, which must then
// have type T.
func Transform[T any](ctx context.Context, p *Pending, fn func(data interface{}) (T, error)) (T, error) {
	var zero T
	var data interface{}
	if err := p.JSON(ctx, &data); err != nil {
		return zero, err
	}
	if fn != nil {
		return fn(data)
	}
	t, ok := data.(T)
	if !ok {
		return zero, fmt.Errorf("wrq: JSON response has type %T, not %T", data, zero)
	}
	return t, nil
}

func (p *Pending) do(ctx context.Context) (*request.Execution, error) {
	e, err := p.Do(ctx)
	if err != nil {
		return nil, err
	}
	if e.Response == nil {
		return nil, ErrNoResponse
	}
	return e, nil
}
