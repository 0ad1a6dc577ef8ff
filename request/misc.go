// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"errors"
	"io"
)

const badBodyTypeMsg = "wrq/request: invalid type (for body use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)"

// BodyBytes converts a generic body parameter to a byte slice for use
// as a request body.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser. The conversion logic is:
//
// • If body is nil, a nil byte slice and no error is returned.
//
// • If body is a []byte, body itself and no error is returned.
//
// • If body is a string, the built-in conversion from string to byte
// slice, and no error, is returned.
//
// • If body is an io.Reader or io.ReadCloser, the result of reading
// the whole contents of the reader (and closing it if it implements
// Closer) is returned. If reading from the reader (and closing it if
// applicable) causes an error, the return value is a nil byte slice
// and the error.
//
// • If body is any other type than those listed above, a nil byte slice
// and an error is returned.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		err = x.Close()
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}

// EncodeBody serializes a request body.
//
// Bodies of the types accepted by BodyBytes are converted as BodyBytes
// converts them. If asJSON is true, a body of any other type is
// encoded as JSON and the second return value is true. If asJSON is
// false, any other type is an error.
func EncodeBody(body interface{}, asJSON bool) ([]byte, bool, error) {
	switch body.(type) {
	case nil, string, []byte, io.Reader:
		b, err := BodyBytes(body)
		return b, false, err
	}
	if !asJSON {
		return nil, false, errors.New(badBodyTypeMsg)
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}
