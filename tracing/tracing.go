// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package tracing records each request lifecycle as an OpenTelemetry
// client span.
//
// The span starts in the before-request hook and ends once the
// lifecycle has finished, after every other hook, even when a hook
// fails. The W3C traceparent header is added to the outgoing request so
// the server can join the trace.
package tracing

import (
	"context"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/gogama/wrq"
	"github.com/gogama/wrq/request"
)

// InstrumentationName is the name of the tracer the hooks obtain from
// the tracer provider.
const InstrumentationName = "github.com/gogama/wrq/tracing"

// Attribute keys set on request spans.
const (
	MethodKey     = attribute.Key("http.request.method")
	StatusCodeKey = attribute.Key("http.response.status_code")
	OutcomeKey    = attribute.Key("wrq.outcome")
)

// Hooks returns a hook set which traces requests using tp. If tp is
// nil, the global tracer provider is used.
//
// Only the BeforeRequest slot is set. The span is ended by a function
// registered with wrq.Defer, so it may be chained anywhere among other
// hook sets.
func Hooks(tp trace.TracerProvider) *wrq.HookSet {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(InstrumentationName)
	propagator := propagation.TraceContext{}

	return &wrq.HookSet{
		BeforeRequest: func(ctx context.Context, o request.Options) (*request.Options, error) {
			// ctx is the request's cancellable context, so the span
			// context stays a child of it and timeouts still cancel.
			ctx, span := tracer.Start(ctx, "HTTP "+o.Method,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(MethodKey.String(o.Method)),
			)
			if !wrq.Defer(ctx, func(e *request.Execution) { end(span, e) }) {
				span.End()
				return nil, nil
			}
			h := o.Header.Clone()
			if h == nil {
				h = make(http.Header)
			}
			propagator.Inject(ctx, propagation.HeaderCarrier(h))
			return &request.Options{Context: ctx, Header: h}, nil
		},
	}
}

// end completes the span from the finished execution. HTTP failures
// set an error status but are not recorded as exceptions.
func end(span trace.Span, e *request.Execution) {
	defer span.End()
	if e.Response != nil {
		span.SetAttributes(StatusCodeKey.Int(e.Response.StatusCode))
	}
	if e.Outcome != request.None {
		span.SetAttributes(OutcomeKey.String(e.Outcome.String()))
	}
	if e.Err == nil {
		if e.Outcome == request.Success {
			span.SetStatus(codes.Ok, "")
		}
		return
	}
	var httpErr *wrq.HTTPError
	if !errors.As(e.Err, &httpErr) {
		span.RecordError(e.Err)
	}
	span.SetStatus(codes.Error, e.Err.Error())
}
