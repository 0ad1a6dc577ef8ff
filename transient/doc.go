// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts transport-level errors into a small set of
// categories (timeout, cancellation, connection refused, connection
// reset, name resolution failure). The categories are stable label
// values, which makes them handy for bucketing error metrics and for
// diagnostic logging.
//
// Package transient depends only on the standard library.
package transient
