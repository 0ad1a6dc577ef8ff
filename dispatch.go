// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gogama/wrq/request"
)

// dispatcher invokes the hooks of one client for one request.
type dispatcher struct {
	hooks *HookSet
	log   zerolog.Logger
}

func (dp *dispatcher) runBefore(o request.Options) (request.Options, error) {
	f := dp.hooks.beforeRequest()
	if f == nil {
		return o, nil
	}
	dp.log.Debug().Stringer("hook", BeforeRequest).Msg("running hook")
	patch, err := f(o.Ctx(), o)
	if err != nil {
		dp.log.Debug().Stringer("hook", BeforeRequest).Err(err).Msg("hook failed")
		return o.Overlay(patch), err
	}
	dp.log.Debug().Stringer("hook", BeforeRequest).Bool("patched", patch != nil).Msg("hook done")
	return o.Overlay(patch), nil
}

func (dp *dispatcher) runResponse(h Hook, o request.Options, resp *http.Response) error {
	f := dp.hooks.responseFunc(h)
	if f == nil {
		return nil
	}
	dp.log.Debug().Stringer("hook", h).Int("status", resp.StatusCode).Msg("running hook")
	if err := f(hookContext(o), copyResponse(resp)); err != nil {
		dp.log.Debug().Stringer("hook", h).Err(err).Msg("hook failed")
		return err
	}
	dp.log.Debug().Stringer("hook", h).Msg("hook done")
	return nil
}

func (dp *dispatcher) runError(h Hook, o request.Options, err error) error {
	f := dp.hooks.errorFunc(h)
	if f == nil {
		return nil
	}
	dp.log.Debug().Stringer("hook", h).AnErr("cause", err).Msg("running hook")
	if hookErr := f(hookContext(o), err); hookErr != nil {
		dp.log.Debug().Stringer("hook", h).Err(hookErr).Msg("hook failed")
		return hookErr
	}
	dp.log.Debug().Stringer("hook", h).Msg("hook done")
	return nil
}

// hookContext returns a context carrying the values of the request
// context, but never cancelled.
func hookContext(o request.Options) context.Context {
	return context.WithoutCancel(o.Ctx())
}

// bufferedBody is a response body backed by a fully buffered byte
// slice. Copies of a response share the slice but not the read offset.
type bufferedBody struct {
	*bytes.Reader
	b []byte
}

func newBufferedBody(b []byte) *bufferedBody {
	return &bufferedBody{Reader: bytes.NewReader(b), b: b}
}

func (*bufferedBody) Close() error {
	return nil
}

// copyResponse returns a copy of resp whose body can be consumed and
// whose header maps can be modified without affecting resp.
//
// If resp's body is not already buffered, it is read to the end,
// closed, and replaced with a buffered body, so resp stays readable.
func copyResponse(resp *http.Response) *http.Response {
	var b []byte
	switch body := resp.Body.(type) {
	case nil:
	case *bufferedBody:
		b = body.b
	default:
		b, _ = io.ReadAll(body)
		_ = body.Close()
		resp.Body = newBufferedBody(b)
	}
	resp2 := new(http.Response)
	*resp2 = *resp
	resp2.Header = resp.Header.Clone()
	resp2.Trailer = resp.Trailer.Clone()
	if resp.Body != nil {
		resp2.Body = newBufferedBody(b)
	}
	return resp2
}
