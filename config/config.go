// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads client configuration from a YAML file and the
// environment.
//
// A configuration file looks like:
//
//	name: billing
//	baseURL: https://billing.example.com/api
//	timeout: 5s
//	headers:
//	  Accept: application/json
//	json: true
//	logging: false
//
// Every key is optional. Unknown keys are an error. The environment
// variables WRQ_NAME, WRQ_BASE_URL, WRQ_TIMEOUT and WRQ_LOGGING, when
// set and non-empty, override the corresponding file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogama/wrq"
	"github.com/gogama/wrq/internal/log"
	"github.com/gogama/wrq/request"
)

// Environment variables overlaid onto the file configuration.
const (
	EnvName    = "WRQ_NAME"
	EnvBaseURL = "WRQ_BASE_URL"
	EnvTimeout = "WRQ_TIMEOUT"
	EnvLogging = "WRQ_LOGGING"
)

// File is the client configuration as read from a file.
type File struct {
	Name    string            `yaml:"name"`
	BaseURL string            `yaml:"baseURL"`
	Headers map[string]string `yaml:"headers"`
	Timeout time.Duration     `yaml:"timeout"`
	JSON    *bool             `yaml:"json"`
	Logging *bool             `yaml:"logging"`
}

// Load reads the configuration file at path, overlays the environment,
// and validates the result. An empty path skips the file, so only the
// environment is read.
func Load(path string) (*File, error) {
	f := &File{}
	if path != "" {
		var err error
		if f, err = loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := f.overlayEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes configuration from YAML. Unknown keys and multiple
// documents are errors. Empty input yields an empty configuration.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &File{}, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("config file contains multiple documents or trailing content")
	}
	return &f, nil
}

func loadFile(path string) (*File, error) {
	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(data)
}

func (f *File) overlayEnv(lookup func(string) (string, bool)) error {
	logger := log.WithComponent("config")
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return "", false
		}
		logger.Debug().Str("key", key).Str("source", "environment").Msg("using environment variable")
		return v, true
	}

	if v, ok := get(EnvName); ok {
		f.Name = v
	}
	if v, ok := get(EnvBaseURL); ok {
		f.BaseURL = v
	}
	if v, ok := get(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		f.Timeout = d
	}
	if v, ok := get(EnvLogging); ok {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			f.Logging = wrq.Bool(true)
		case "false", "0", "no":
			f.Logging = wrq.Bool(false)
		default:
			return fmt.Errorf("invalid %s: %q is not a boolean", EnvLogging, v)
		}
	}
	return nil
}

// Validate checks that the base URL, if any, is an absolute URL, that
// the timeout is not negative, and that the headers are well formed.
func (f *File) Validate() error {
	if f.BaseURL != "" {
		u, err := url.Parse(f.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid baseURL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid baseURL %q: must be absolute", f.BaseURL)
		}
	}
	if f.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", f.Timeout)
	}
	return request.ValidHeader(f.header())
}

func (f *File) header() http.Header {
	if f.Headers == nil {
		return nil
	}
	h := make(http.Header, len(f.Headers))
	for k, v := range f.Headers {
		h.Set(k, v)
	}
	return h
}

// ClientConfig converts the file configuration to a client
// configuration. Fields a File cannot express, such as hooks, are left
// zero for the caller to fill in.
func (f *File) ClientConfig() wrq.Config {
	return wrq.Config{
		Name:    f.Name,
		BaseURL: f.BaseURL,
		Headers: f.header(),
		Timeout: f.Timeout,
		JSON:    f.JSON,
		Logging: f.Logging,
	}
}
