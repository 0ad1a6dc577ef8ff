// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf, Service: "test"})
	Configure(Config{Level: "debug", Output: &bytes.Buffer{}, Service: "ignored"})

	l := WithComponent("handler")
	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "handler", entry["component"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "info", entry["level"])
	require.Contains(t, entry, "time")
	_, err := time.Parse(time.RFC3339Nano, entry["time"].(string))
	assert.NoError(t, err)

	buf.Reset()
	b := Base()
	b.Info().Msg("base")
	assert.Contains(t, buf.String(), `"message":"base"`)
	assert.NotContains(t, buf.String(), "component")
}

func TestGlobalTimeFormat(t *testing.T) {
	before := zerolog.TimeFieldFormat
	_ = Base()
	assert.Equal(t, before, zerolog.TimeFieldFormat)
}
