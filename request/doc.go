// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Descriptor (describes one HTTP
request), Options (the request options a lifecycle sends, and the patch
a before-request hook may return), Execution (describes the lifecycle
of a Descriptor) and Outcome (the terminal classification of a
lifecycle).

A Descriptor looks like a stripped-down http.Request: a path relative
to the client's base URL, a method, headers, a pre-serialized body and
an optional per-request timeout.

	d, err := request.NewDescriptor("GET", "/users/1", nil)
	...
	e, err := client.Do(d)
	...

A descriptor may be assigned a context, which is the caller's
cancellation token. Cancelling the context aborts the request:

	d, err := request.NewDescriptorWithContext(ctx, "POST", "/upload", body)
	...

The per-request timeout is separate from the context. When the timeout
elapses the request ends in the TimedOut outcome; when the context is
cancelled it ends in the Aborted outcome.

Execution is the output of the client's executing methods. You will
typically not allocate Execution instances yourself.
*/
package request
