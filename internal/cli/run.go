// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/gogama/wrq"
	"github.com/gogama/wrq/config"
	"github.com/gogama/wrq/timeout"
)

// runner sends the request described by one command invocation.
type runner struct {
	method string
	url    string
	body   string
	opts   *options
	stdout io.Writer
	stderr io.Writer
}

func (r *runner) run(ctx context.Context) error {
	if err := r.opts.validate(); err != nil {
		return err
	}
	header, err := parseHeaders(r.opts.headers)
	if err != nil {
		return err
	}

	file, err := config.Load(r.opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := file.ClientConfig()
	cfg.BaseURL, r.url = resolveURL(cfg.BaseURL, r.url)
	if r.opts.noTimeout {
		cfg.TimeoutPolicy = timeout.Infinite
	}

	out := newPrinter(r.stdout, r.stderr, r.opts.noColor, r.opts.verbose)
	if r.opts.verbose {
		l := zerolog.New(zerolog.ConsoleWriter{Out: r.stderr, NoColor: out.noColor}).
			With().Timestamp().Logger()
		cfg.Logging = wrq.Bool(true)
		cfg.Logger = &l
	}
	cfg.Hooks = wrq.Chain(&wrq.HookSet{BeforeRequest: wrq.RequestID("")}, cfg.Hooks)

	client := wrq.New(cfg)
	defer client.CloseIdleConnections()

	reqOpts := []wrq.RequestOption{wrq.WithHeaders(header), wrq.WithTimeout(r.opts.timeout)}

	var limiter *rate.Limiter
	if r.opts.rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.opts.rate), 1)
	}

	var g errgroup.Group
	g.SetLimit(r.opts.concurrency)
	var failed atomic.Int64
	for i := 0; i < r.opts.count; i++ {
		if limiter != nil {
			if err = limiter.Wait(ctx); err != nil {
				break
			}
		}
		g.Go(func() error {
			e, err := r.pending(client, reqOpts).Do(ctx)
			out.print(e, err, r.opts.path)
			if err != nil {
				failed.Add(1)
			}
			return err
		})
	}
	waitErr := g.Wait()
	if err != nil {
		return err
	}
	if waitErr != nil {
		return fmt.Errorf("%d of %d requests failed", failed.Load(), r.opts.count)
	}
	return nil
}

func (r *runner) pending(client *wrq.Client, opts []wrq.RequestOption) *wrq.Pending {
	var body interface{}
	if r.body != "" {
		body = r.body
	}
	switch r.method {
	case http.MethodHead:
		return client.Head(r.url, opts...)
	case http.MethodOptions:
		return client.Options(r.url, opts...)
	case http.MethodDelete:
		return client.Delete(r.url, opts...)
	case http.MethodPost:
		return client.Post(r.url, body, opts...)
	case http.MethodPut:
		return client.Put(r.url, body, opts...)
	case http.MethodPatch:
		return client.Patch(r.url, body, opts...)
	default:
		return client.Get(r.url, opts...)
	}
}

func (o *options) validate() error {
	switch {
	case o.count < 1:
		return errors.New("--count must be at least 1")
	case o.concurrency < 1:
		return errors.New("--concurrency must be at least 1")
	case o.rate < 0:
		return errors.New("--rate must not be negative")
	case o.timeout < 0:
		return errors.New("--timeout must not be negative")
	case o.noTimeout && o.timeout != 0:
		return errors.New("--timeout and --no-timeout are mutually exclusive")
	}
	return nil
}

// parseHeaders parses "Name: value" header flags.
func parseHeaders(flags []string) (http.Header, error) {
	h := make(http.Header)
	for _, f := range flags {
		parts := strings.SplitN(f, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid header %q: want \"Name: value\"", f)
		}
		h.Add(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
	return h, nil
}

// resolveURL decides how a command line URL combines with the
// configured base URL. An absolute URL is used as is. A relative one
// is appended to the base URL, or, with no base URL, treated as a
// host and path reached over plain HTTP.
func resolveURL(base, arg string) (string, string) {
	switch {
	case strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://"):
		return "", arg
	case base != "":
		return base, arg
	default:
		return "", "http://" + arg
	}
}
