// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/wrq/request"
	"github.com/gogama/wrq/timeout"
)

// attempt is the result of the transport leg of a request.
type attempt struct {
	resp *http.Response
	body []byte
	err  error
}

func (c *Client) execute(d *request.Descriptor) (*request.Execution, error) {
	e := &request.Execution{
		Descriptor: d,
		URL:        c.cfg.BaseURL + d.Path,
	}
	fin := &deferred{}
	defer func() {
		e.End = time.Now()
		fin.run(e)
	}()

	l := c.logger()
	dp := &dispatcher{hooks: c.cfg.Hooks, log: l}
	l.Debug().Str("method", d.Options.Method).Str("url", e.URL).Msg("starting request")

	// The internal token. It is always cancellable, whether or not the
	// caller supplied a cancellable context, and is cancelled on every
	// exit path.
	ctx, cancel := context.WithCancel(d.Context())
	defer cancel()
	ctx = context.WithValue(ctx, deferredKey{}, fin)

	o := d.Options
	o.Header = d.Options.Header.Clone()
	o.Context = ctx

	u, err := url.Parse(e.URL)
	if err != nil {
		return dp.fail(e, request.TransportFailure, o, &Error{Options: o, Op: op(o.Method), URL: e.URL, Err: err})
	}

	o, err = dp.runBefore(o)
	if err != nil {
		return dp.fail(e, request.TransportFailure, o, &Error{Options: o, Op: "beforeRequest", URL: e.URL, Err: err})
	}
	e.Options = o

	req, err := newHTTPRequest(o, u)
	if err != nil {
		return dp.fail(e, request.TransportFailure, o, &Error{Options: o, Op: op(o.Method), URL: e.URL, Err: err})
	}
	e.Request = req
	e.Timeout = c.timeoutPolicy().Timeout(e)
	if e.Timeout <= 0 {
		e.Timeout = timeout.DefaultTimeout
	}

	// Race the transport against the timer. The result channel is
	// buffered so the transport goroutine never blocks if it loses.
	e.Start = time.Now()
	result := make(chan attempt, 1)
	go func(doer HTTPDoer) {
		result <- send(doer, req)
	}(c.doer())
	timer := time.NewTimer(e.Timeout)
	defer timer.Stop()

	var a attempt
	select {
	case a = <-result:
	case <-timer.C:
		cancel()
		l.Debug().Dur("timeout", e.Timeout).Msg("request timed out")
		return dp.fail(e, request.TimedOut, o, &TimeoutError{Options: o, Duration: e.Timeout})
	}

	if a.err != nil {
		if sig := o.Ctx(); sig.Err() != nil {
			reason := context.Cause(sig).Error()
			l.Debug().Str("reason", reason).Msg("request aborted")
			return dp.fail(e, request.Aborted, o, &AbortError{Options: o, Reason: reason, Err: a.err})
		}
		return dp.fail(e, request.TransportFailure, o, &Error{Options: o, Op: op(o.Method), URL: e.URL, Err: a.err})
	}

	if a.resp == nil {
		l.Warn().Msg("transport returned neither response nor error")
		return e, nil
	}
	e.Response = a.resp
	e.Body = a.body
	if err = dp.runResponse(OnResponse, o, a.resp); err != nil {
		e.Err = err
		return e, err
	}

	if !request.OK(a.resp.StatusCode) {
		l.Warn().Int("status", a.resp.StatusCode).Msg("request failed with status")
		return dp.fail(e, request.HTTPFailure, o, newHTTPError(o, a.resp))
	}

	if err = dp.runResponse(OnSuccess, o, a.resp); err != nil {
		e.Err = err
		return e, err
	}
	e.Outcome = request.Success
	l.Debug().Int("status", a.resp.StatusCode).Dur("duration", time.Since(e.Start)).Msg("request succeeded")
	return e, nil
}

// fail ends the execution with a non-success outcome, running the
// error hook which pairs with it.
func (dp *dispatcher) fail(e *request.Execution, outcome request.Outcome, o request.Options, err error) (*request.Execution, error) {
	e.Outcome = outcome
	e.Err = err
	if hookErr := dp.runError(errorHook(outcome), o, err); hookErr != nil {
		e.Err = hookErr
	}
	return e, e.Err
}

func errorHook(outcome request.Outcome) Hook {
	switch outcome {
	case request.TimedOut:
		return OnTimeout
	case request.Aborted:
		return OnAbort
	default:
		return OnError
	}
}

// send runs the transport leg: it sends the request and buffers the
// complete response body.
func send(doer HTTPDoer, req *http.Request) attempt {
	resp, err := doer.Do(req)
	if err != nil {
		return attempt{err: err}
	}
	if resp == nil {
		return attempt{}
	}
	var body []byte
	if resp.Body != nil {
		body, err = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return attempt{resp: resp, err: err}
		}
	}
	resp.Body = newBufferedBody(body)
	return attempt{resp: resp, body: body}
}

func newHTTPRequest(o request.Options, u *url.URL) (*http.Request, error) {
	var body io.Reader
	if len(o.Body) > 0 {
		body = bytes.NewReader(o.Body)
	}
	req, err := http.NewRequestWithContext(o.Ctx(), o.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if o.Header != nil {
		req.Header = o.Header
	}
	return req, nil
}

// op is adapted from net/http/client.go, which uses it to name the
// operation in a *url.Error.
func op(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
