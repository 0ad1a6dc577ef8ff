// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
name: billing
baseURL: https://billing.example.com/api
timeout: 5s
headers:
  accept: application/json
json: false
logging: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{EnvName, EnvBaseURL, EnvTimeout, EnvLogging} {
		t.Setenv(key, "")
	}
}

func TestParse(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		f, err := Parse([]byte(sample))
		require.NoError(t, err)
		assert.Equal(t, "billing", f.Name)
		assert.Equal(t, "https://billing.example.com/api", f.BaseURL)
		assert.Equal(t, 5*time.Second, f.Timeout)
		assert.Equal(t, map[string]string{"accept": "application/json"}, f.Headers)
		require.NotNil(t, f.JSON)
		assert.False(t, *f.JSON)
		require.NotNil(t, f.Logging)
		assert.True(t, *f.Logging)
	})
	t.Run("empty", func(t *testing.T) {
		f, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, &File{}, f)
	})
	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("retries: 3\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strict config parse error")
	})
	t.Run("multiple documents", func(t *testing.T) {
		_, err := Parse([]byte("name: a\n---\nname: b\n"))
		assert.EqualError(t, err, "config file contains multiple documents or trailing content")
	})
	t.Run("bad duration", func(t *testing.T) {
		_, err := Parse([]byte("timeout: soon\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		clearEnv(t)
		f, err := Load(writeFile(t, "wrq.yaml", sample))
		require.NoError(t, err)
		assert.Equal(t, "billing", f.Name)
	})
	t.Run("no file", func(t *testing.T) {
		clearEnv(t)
		f, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, &File{}, f)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read file")
	})
	t.Run("wrong extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "wrq.json", "{}"))
		assert.EqualError(t, err, "unsupported config format: .json (only YAML supported)")
	})
	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvName, "env")
		t.Setenv(EnvBaseURL, "http://env.example.com")
		t.Setenv(EnvTimeout, "250ms")
		t.Setenv(EnvLogging, "no")
		f, err := Load(writeFile(t, "wrq.yml", sample))
		require.NoError(t, err)
		assert.Equal(t, "env", f.Name)
		assert.Equal(t, "http://env.example.com", f.BaseURL)
		assert.Equal(t, 250*time.Millisecond, f.Timeout)
		require.NotNil(t, f.Logging)
		assert.False(t, *f.Logging)
		require.NotNil(t, f.JSON)
		assert.False(t, *f.JSON)
	})
	t.Run("bad environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvTimeout, "forever")
		_, err := Load("")
		assert.ErrorContains(t, err, "invalid WRQ_TIMEOUT")

		clearEnv(t)
		t.Setenv(EnvLogging, "maybe")
		_, err = Load("")
		assert.EqualError(t, err, `invalid WRQ_LOGGING: "maybe" is not a boolean`)
	})
	t.Run("invalid", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(writeFile(t, "wrq.yaml", "baseURL: /relative\n"))
		assert.EqualError(t, err, `invalid baseURL "/relative": must be absolute`)
	})
}

func TestFile_Validate(t *testing.T) {
	assert.NoError(t, (&File{}).Validate())
	assert.Error(t, (&File{Timeout: -time.Second}).Validate())
	assert.Error(t, (&File{BaseURL: "http://[::1"}).Validate())
	assert.Error(t, (&File{Headers: map[string]string{"Bad Name": "x"}}).Validate())
	assert.Error(t, (&File{Headers: map[string]string{"X": "a\nb"}}).Validate())
}

func TestFile_ClientConfig(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	cfg := f.ClientConfig()

	assert.Equal(t, "billing", cfg.Name)
	assert.Equal(t, "https://billing.example.com/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, http.Header{"Accept": {"application/json"}}, cfg.Headers)
	assert.Same(t, f.JSON, cfg.JSON)
	assert.Same(t, f.Logging, cfg.Logging)
	assert.Nil(t, cfg.Hooks)
	assert.Nil(t, (&File{}).ClientConfig().Headers)
}
