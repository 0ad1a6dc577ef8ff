// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// An Outcome is the terminal classification of one request lifecycle.
// Exactly one Outcome other than None is produced per execution.
type Outcome int

const (
	// None is the outcome of an execution that has not ended.
	None Outcome = iota
	// Success means the transport produced a response with an ok
	// status before the timeout elapsed.
	Success
	// HTTPFailure means the transport produced a response whose status
	// is not ok.
	HTTPFailure
	// TimedOut means the timeout elapsed before the transport settled.
	TimedOut
	// Aborted means the caller's cancellation signal fired before the
	// transport settled.
	Aborted
	// TransportFailure means the request failed for any other reason:
	// network failure, an unparseable URL, or a failing before-request
	// hook.
	TransportFailure
	// outcomeSentinel provides the total number of outcomes.
	outcomeSentinel
)

var outcomeNames = []string{
	"None",
	"Success",
	"HTTPFailure",
	"TimedOut",
	"Aborted",
	"TransportFailure",
}

// Outcomes returns every terminal outcome, excluding None.
func Outcomes() []Outcome {
	return []Outcome{
		Success,
		HTTPFailure,
		TimedOut,
		Aborted,
		TransportFailure,
	}
}

// Name returns the name of the outcome.
func (o Outcome) Name() string {
	if o < 0 || o >= outcomeSentinel {
		return "Unknown"
	}
	return outcomeNames[int(o)]
}

// String returns the name of the outcome.
func (o Outcome) String() string {
	return o.Name()
}

// OK reports whether an HTTP status code counts as a successful
// response: any 2XX or 3XX status.
func OK(statusCode int) bool {
	return statusCode >= 200 && statusCode < 400
}
