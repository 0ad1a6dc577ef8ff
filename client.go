// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gogama/wrq/internal/log"
	"github.com/gogama/wrq/request"
	"github.com/gogama/wrq/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package. It is the
// transport a Client sends requests with.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package. A Client
	// relies on Do observing cancellation of the request context to
	// stop a timed out or aborted request, but stays correct if it
	// does not.
	Do(r *http.Request) (*http.Response, error)
}

// Config contains the configuration shared by every request a Client
// issues. Every field is optional.
//
// Once a Config has been used to construct a Client, neither it nor
// the values it references (Headers, Hooks) may be modified.
type Config struct {
	// Name identifies the client in diagnostic log entries. If empty,
	// "wrq" is used.
	Name string
	// BaseURL is prepended, by plain string concatenation, to the path
	// of every request.
	BaseURL string
	// Headers are default request headers. A request's own headers
	// override them key by key.
	Headers http.Header
	// Timeout is the default request timeout. If zero, requests without
	// their own timeout use timeout.DefaultTimeout (10 seconds).
	Timeout time.Duration
	// TimeoutPolicy decides the timeout of each request. If nil,
	// timeout.Default(Timeout) is used: the per-request timeout if set,
	// else Timeout, else timeout.DefaultTimeout. A policy result which is
	// not positive is replaced with timeout.DefaultTimeout.
	TimeoutPolicy timeout.Policy
	// Hooks holds the lifecycle callbacks. If nil, no hooks run.
	Hooks *HookSet
	// JSON indicates whether request bodies of types other than string,
	// []byte and io.Reader are encoded as JSON. If nil, true is used.
	JSON *bool
	// Logging enables diagnostic logging of the request lifecycle. If
	// nil, false is used.
	Logging *bool
	// Logger is the logger diagnostic entries are written to when
	// Logging is enabled. If nil, the package's base zerolog logger is
	// used.
	Logger *zerolog.Logger
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses. If nil, http.DefaultClient is used.
	HTTPDoer HTTPDoer
}

// Bool returns a pointer to b, for use with the Config fields JSON and
// Logging.
func Bool(b bool) *bool {
	return &b
}

// overlay returns a copy of c with every non-zero field of o written
// over it. The overlay is shallow: nested values such as Headers and
// Hooks are replaced wholesale, never merged.
func (c Config) overlay(o Config) Config {
	if o.Name != "" {
		c.Name = o.Name
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Headers != nil {
		c.Headers = o.Headers
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.TimeoutPolicy != nil {
		c.TimeoutPolicy = o.TimeoutPolicy
	}
	if o.Hooks != nil {
		c.Hooks = o.Hooks
	}
	if o.JSON != nil {
		c.JSON = o.JSON
	}
	if o.Logging != nil {
		c.Logging = o.Logging
	}
	if o.Logger != nil {
		c.Logger = o.Logger
	}
	if o.HTTPDoer != nil {
		c.HTTPDoer = o.HTTPDoer
	}
	return c
}

// A Client issues HTTP requests, running each through the request
// lifecycle: the before-request hook, a timeout race against the
// transport, outcome classification, and the matching lifecycle hooks.
//
// The zero value is a valid client which uses http.DefaultClient, a
// 10 second timeout, no hooks, and no logging.
//
// A Client is never modified after construction; Clone produces a new
// one. It is safe for concurrent use by multiple goroutines.
type Client struct {
	cfg Config
}

// New returns a client with the given configuration.
func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Clone returns a new client whose configuration is this client's
// configuration with every non-zero field of override written over it.
//
// The merge is shallow: a non-nil override.Headers replaces the
// default headers wholesale rather than adding to them, and likewise
// for Hooks. Clone(Config{}) returns a client configured identically to
// c.
func (c *Client) Clone(override Config) *Client {
	return New(c.cfg.overlay(override))
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Name returns the client's name, which defaults to "wrq".
func (c *Client) Name() string {
	if c.cfg.Name == "" {
		return "wrq"
	}
	return c.cfg.Name
}

// Do executes a request descriptor and returns the execution record.
//
// If the request succeeds, the returned error is nil, and the
// execution's Response and Body are set. Otherwise the error is one of
// *HTTPError, *TimeoutError, *AbortError or *Error, unless a hook
// returned an error, in which case it is the hook's error. The returned
// Execution is never nil, and its Err field references the same error.
//
// The descriptor's context is the request's cancellation token.
func (c *Client) Do(d *request.Descriptor) (*request.Execution, error) {
	if d == nil {
		panic("wrq: nil descriptor")
	}
	return c.execute(d)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.cfg.HTTPDoer == nil {
		return http.DefaultClient
	}
	return c.cfg.HTTPDoer
}

func (c *Client) timeoutPolicy() timeout.Policy {
	if c.cfg.TimeoutPolicy != nil {
		return c.cfg.TimeoutPolicy
	}
	if c.cfg.Timeout <= 0 {
		return timeout.DefaultPolicy
	}
	return timeout.Default(c.cfg.Timeout)
}

func (c *Client) jsonEnabled() bool {
	return c.cfg.JSON == nil || *c.cfg.JSON
}

func (c *Client) logger() zerolog.Logger {
	if c.cfg.Logging == nil || !*c.cfg.Logging {
		return zerolog.Nop()
	}
	var l zerolog.Logger
	if c.cfg.Logger != nil {
		l = *c.cfg.Logger
	} else {
		l = log.WithComponent("wrq")
	}
	return l.With().Str("client", c.Name()).Logger()
}
