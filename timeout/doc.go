// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for choosing the timeout raced
// against the transport during a request lifecycle. A generic interface
// for timeout policies is provided, Policy, along with policy
// generating functions and built-in policies.
package timeout
