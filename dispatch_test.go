// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wrq

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/wrq/request"
)

func TestCopyResponse(t *testing.T) {
	t.Run("buffered", func(t *testing.T) {
		resp := newResponse(200, "")
		resp.Body = newBufferedBody([]byte("abc"))
		resp.Header.Set("A", "1")
		resp.Trailer = http.Header{"T": {"x"}}

		c := copyResponse(resp)
		c.Header.Set("A", "2")
		c.Trailer.Set("T", "y")
		b, err := io.ReadAll(c.Body)

		require.NoError(t, err)
		assert.Equal(t, "abc", string(b))
		assert.Equal(t, "1", resp.Header.Get("A"))
		assert.Equal(t, "x", resp.Trailer.Get("T"))
		assert.Equal(t, 200, c.StatusCode)
		b, err = io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(b))
	})
	t.Run("unbuffered", func(t *testing.T) {
		resp := newResponse(200, "stream")

		c := copyResponse(resp)

		assert.IsType(t, &bufferedBody{}, resp.Body)
		for _, r := range []*http.Response{c, resp} {
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Equal(t, "stream", string(b))
		}
	})
	t.Run("nil body", func(t *testing.T) {
		resp := &http.Response{StatusCode: 204}
		c := copyResponse(resp)
		assert.Nil(t, c.Body)
		assert.NotSame(t, resp, c)
	})
}

func TestBufferedBody(t *testing.T) {
	b := newBufferedBody([]byte("xyz"))
	assert.NoError(t, b.Close())
	p, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "xyz", string(p))
}

func TestHookContext(t *testing.T) {
	type key struct{}
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, 1))
	cancel()

	hc := hookContext(request.Options{Context: ctx})

	assert.NoError(t, hc.Err())
	assert.Nil(t, hc.Done())
	assert.Equal(t, 1, hc.Value(key{}))
	assert.NoError(t, hookContext(request.Options{}).Err())
}

func TestDispatcher(t *testing.T) {
	var buf bytes.Buffer
	dp := &dispatcher{log: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	t.Run("no hooks", func(t *testing.T) {
		o := request.Options{Method: "GET"}
		o2, err := dp.runBefore(o)
		assert.NoError(t, err)
		assert.Equal(t, o, o2)
		assert.NoError(t, dp.runResponse(OnResponse, o, newResponse(200, "")))
		assert.NoError(t, dp.runError(OnError, o, errors.New("x")))
		assert.Empty(t, buf.String())
	})
	t.Run("before patch", func(t *testing.T) {
		dp.hooks = &HookSet{BeforeRequest: func(_ context.Context, _ request.Options) (*request.Options, error) {
			return &request.Options{Timeout: time.Second}, nil
		}}
		o, err := dp.runBefore(request.Options{Method: "GET"})
		require.NoError(t, err)
		assert.Equal(t, request.Options{Method: "GET", Timeout: time.Second}, o)
		assert.Contains(t, buf.String(), `"hook":"beforeRequest"`)
		assert.Contains(t, buf.String(), `"patched":true`)
	})
	t.Run("failure logged", func(t *testing.T) {
		buf.Reset()
		dp.hooks = &HookSet{OnAbort: func(_ context.Context, _ error) error {
			return errors.New("boom")
		}}
		err := dp.runError(OnAbort, request.Options{}, &AbortError{})
		assert.EqualError(t, err, "boom")
		assert.Contains(t, buf.String(), "hook failed")
	})
}
