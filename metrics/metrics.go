// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics counts request lifecycle outcomes with Prometheus.
//
// Install the hooks of a Collector in a client, alone or combined with
// other hooks using wrq.Chain:
//
//	c := metrics.New(prometheus.DefaultRegisterer)
//	client := wrq.New(wrq.Config{Hooks: c.Hooks()})
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogama/wrq"
	"github.com/gogama/wrq/request"
	"github.com/gogama/wrq/transient"
)

// Label values of wrq_requests_total.
const (
	OutcomeSuccess          = "success"
	OutcomeHTTPFailure      = "http_failure"
	OutcomeTimedOut         = "timed_out"
	OutcomeAborted          = "aborted"
	OutcomeTransportFailure = "transport_failure"
)

// OutcomeLabel returns the wrq_requests_total label value for an
// outcome, or the empty string for request.None.
func OutcomeLabel(o request.Outcome) string {
	switch o {
	case request.Success:
		return OutcomeSuccess
	case request.HTTPFailure:
		return OutcomeHTTPFailure
	case request.TimedOut:
		return OutcomeTimedOut
	case request.Aborted:
		return OutcomeAborted
	case request.TransportFailure:
		return OutcomeTransportFailure
	default:
		return ""
	}
}

// A Collector holds the counters a client's lifecycle hooks update.
type Collector struct {
	requests        *prometheus.CounterVec
	responses       *prometheus.CounterVec
	transportErrors *prometheus.CounterVec
}

// New creates the counters and registers them with reg. It panics if
// registration fails, for example because another Collector is already
// registered with reg. A nil reg creates unregistered counters.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wrq_requests_total",
			Help: "Total number of completed requests by outcome",
		}, []string{"outcome"}),
		responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wrq_responses_total",
			Help: "Total number of responses received by status code",
		}, []string{"code"}),
		transportErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wrq_transport_errors_total",
			Help: "Total number of requests that ended without a response, by error category",
		}, []string{"category"}),
	}
}

// Requests returns the counter of completed requests by outcome.
func (c *Collector) Requests() *prometheus.CounterVec {
	return c.requests
}

// Responses returns the counter of responses by status code.
func (c *Collector) Responses() *prometheus.CounterVec {
	return c.responses
}

// TransportErrors returns the counter of requests which ended without
// a response, by transient.Category.
func (c *Collector) TransportErrors() *prometheus.CounterVec {
	return c.transportErrors
}

// Hooks returns a hook set which updates the collector's counters. It
// never returns an error from a hook, so it does not change the
// outcome of any request.
func (c *Collector) Hooks() *wrq.HookSet {
	return &wrq.HookSet{
		OnResponse: func(_ context.Context, resp *http.Response) error {
			c.responses.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
			return nil
		},
		OnSuccess: func(_ context.Context, _ *http.Response) error {
			c.requests.WithLabelValues(OutcomeSuccess).Inc()
			return nil
		},
		OnError: func(_ context.Context, err error) error {
			var httpErr *wrq.HTTPError
			if errors.As(err, &httpErr) {
				c.requests.WithLabelValues(OutcomeHTTPFailure).Inc()
				return nil
			}
			c.fail(OutcomeTransportFailure, err)
			return nil
		},
		OnTimeout: func(_ context.Context, err error) error {
			c.fail(OutcomeTimedOut, err)
			return nil
		},
		OnAbort: func(_ context.Context, err error) error {
			c.fail(OutcomeAborted, err)
			return nil
		},
	}
}

func (c *Collector) fail(outcome string, err error) {
	c.requests.WithLabelValues(outcome).Inc()
	c.transportErrors.WithLabelValues(transient.Categorize(err).String()).Inc()
}
