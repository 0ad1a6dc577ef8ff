// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/gogama/wrq/request"
)

// DefaultRequestIDHeader is the header RequestID sets when given an
// empty header name.
const DefaultRequestIDHeader = "X-Request-Id"

// RequestID returns a before-request hook which sets the named header
// to a random UUID, unless the request already carries the header.
//
// Install it directly as a HookSet's BeforeRequest, or combine it with
// other hooks using Chain.
func RequestID(header string) BeforeRequestFunc {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	return func(_ context.Context, o request.Options) (*request.Options, error) {
		if o.Header.Get(header) != "" {
			return nil, nil
		}
		h := o.Header.Clone()
		if h == nil {
			h = make(http.Header)
		}
		h.Set(header, uuid.NewString())
		return &request.Options{Header: h}, nil
	}
}
