// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package wrq provides an HTTP client built around a single, fully
specified request lifecycle: a before-request hook which may patch the
outgoing request, a timeout raced against the transport, classification
of the outcome, and a lifecycle hook matching that outcome.

Create a Client to begin making requests.

	client := wrq.New(wrq.Config{
		BaseURL: "https://api.example.com",
		Timeout: 5 * time.Second,
	})
	var user User
	err := client.Get("/users/1").JSON(ctx, &user)
	...
	resp, err := client.Post("/users", &user).Raw(ctx)
	...

Every request ends in exactly one outcome (see request.Outcome). Only
success returns without error; every other outcome returns a typed
error after its hook has run:

	• a response with a status other than 2XX or 3XX returns *HTTPError;

	• a request still in flight when its timeout elapses returns
	*TimeoutError;

	• a request whose context is cancelled returns *AbortError; and

	• any other failure returns *Error.

All four match ErrRequest under errors.Is.

To hook into the lifecycle, install a HookSet:

	hooks := &wrq.HookSet{
		BeforeRequest: wrq.RequestID(""),
		OnSuccess: func(_ context.Context, resp *http.Response) error {
			log.Printf("%s: %d", resp.Request.URL, resp.StatusCode)
			return nil
		},
		OnTimeout: func(_ context.Context, err error) error {
			timeouts.Inc()
			return nil
		},
	}
	client := wrq.New(wrq.Config{Hooks: hooks})

Use Chain to combine hook sets, for example the ones provided by the
metrics and tracing packages with your own.

Clients are immutable. Clone derives a new client with some settings
overridden:

	admin := client.Clone(wrq.Config{
		Headers: http.Header{"Authorization": {"Bearer " + token}},
	})

The merge is shallow: the clone's default headers are exactly the
override headers, not a union with the parent's.
*/
package wrq
