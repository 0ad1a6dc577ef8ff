// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"context"
	"sync"

	"github.com/gogama/wrq/request"
)

type deferredKey struct{}

// deferred holds the functions registered with Defer for one request.
type deferred struct {
	mu   sync.Mutex
	fs   []func(*request.Execution)
	done bool
}

// Defer registers f to run once the lifecycle of the request whose
// context is ctx has finished, after every hook has run or failed.
// Functions run in reverse order of registration, on the goroutine
// executing the request, and receive the finished execution, whose
// Err is the error returned to the caller.
//
// Defer is meant to be called from a hook, using the context the hook
// was given. It returns false, and does nothing, if ctx does not belong
// to a request whose lifecycle is still running.
//
// Deferred functions let a hook release what it acquired even when a
// hook chained after it returns an error and later hooks are skipped.
func Defer(ctx context.Context, f func(e *request.Execution)) bool {
	if ctx == nil || f == nil {
		return false
	}
	d, _ := ctx.Value(deferredKey{}).(*deferred)
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		return false
	}
	d.fs = append(d.fs, f)
	return true
}

func (d *deferred) run(e *request.Execution) {
	d.mu.Lock()
	fs := d.fs
	d.fs = nil
	d.done = true
	d.mu.Unlock()
	for i := len(fs) - 1; i >= 0; i-- {
		fs[i](e)
	}
}
