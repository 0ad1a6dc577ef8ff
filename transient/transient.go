// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// A Category is the category of a particular error, as reported by
// function Categorize.
//
// Every category other than Other and Canceled describes a condition
// that a later request has some prospect of not meeting again.
type Category int

const (
	// Other is the category of nil errors and of every error that fits
	// no other category.
	Other Category = iota
	// Timeout indicates a client-side timeout.
	//
	// Function Categorize returns Timeout if the error or any of its
	// wrapped causes has a Timeout method that reports true, or is
	// context.DeadlineExceeded.
	Timeout
	// Canceled indicates the request was cancelled by its caller.
	//
	// Function Categorize returns Canceled if the error is not a
	// Timeout and the error or any of its wrapped causes is
	// context.Canceled.
	Canceled
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	ConnReset
	// DNS indicates the remote host name could not be resolved.
	//
	// Function Categorize returns DNS if the error is not a Timeout and
	// the error or any of its wrapped causes is a *net.DNSError.
	DNS
	// categorySentinel provides the total number of categories.
	categorySentinel
)

var categoryNames = []string{
	"other",
	"timeout",
	"canceled",
	"conn_refused",
	"conn_reset",
	"dns",
}

// Categories returns every category.
func Categories() []Category {
	return []Category{Other, Timeout, Canceled, ConnRefused, ConnReset, DNS}
}

// String returns the category's name, which is suitable for use as a
// metric label value.
func (c Category) String() string {
	if c < 0 || c >= categorySentinel {
		return "unknown"
	}
	return categoryNames[int(c)]
}

// Categorize returns the category of the given error.
//
// In assessing the category, Categorize looks at wrapped cause errors
// contained within err, not just err itself.
func Categorize(err error) Category {
	if err == nil {
		return Other
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DNS
	}

	return Other
}

type hasTimeout interface {
	Timeout() bool
}
