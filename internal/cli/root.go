// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the wrq command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// options holds the flag values shared by every request command.
type options struct {
	headers     []string
	timeout     time.Duration
	noTimeout   bool
	configPath  string
	path        string
	count       int
	concurrency int
	rate        float64
	verbose     bool
	noColor     bool
}

// NewRootCmd returns the wrq command, writing results to stdout and
// diagnostics to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:     "wrq",
		Short:   "Send HTTP requests through the wrq request lifecycle",
		Version: version,
		Long: `wrq sends HTTP requests with a timeout, reports the outcome of each
(success, HTTP failure, timeout, abort or transport failure), and prints
the response or a JSON path within it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringArrayVarP(&opts.headers, "header", "H", []string{}, "HTTP headers to include, as \"Name: value\" (can be used multiple times)")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0, "Request timeout (default from config, else 10s)")
	flags.BoolVar(&opts.noTimeout, "no-timeout", false, "Never time out, ignoring configured timeouts")
	flags.StringVar(&opts.configPath, "config", "", "YAML client configuration file")
	flags.StringVar(&opts.path, "path", "", "Print only the value at this JSON path (gjson syntax)")
	flags.IntVar(&opts.count, "count", 1, "Number of times to send the request")
	flags.IntVar(&opts.concurrency, "concurrency", 1, "Maximum number of requests in flight")
	flags.Float64Var(&opts.rate, "rate", 0, "Maximum requests per second (0 means unlimited)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print response headers and lifecycle diagnostics")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodDelete} {
		root.AddCommand(newRequestCmd(method, false, opts))
	}
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		root.AddCommand(newRequestCmd(method, true, opts))
	}

	return root
}

func newRequestCmd(method string, hasBody bool, opts *options) *cobra.Command {
	name := strings.ToLower(method)
	cmd := &cobra.Command{
		Use:   name + " URL",
		Short: fmt.Sprintf("Send a %s request to URL", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &runner{
				method: method,
				url:    args[0],
				opts:   opts,
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}
			if len(args) > 1 {
				r.body = args[1]
			}
			return r.run(cmd.Context())
		},
	}
	if hasBody {
		cmd.Use = name + " URL [BODY]"
		cmd.Short = fmt.Sprintf("Send a %s request with an optional body to URL", method)
		cmd.Args = cobra.RangeArgs(1, 2)
	}
	return cmd
}

// Execute runs the wrq command with the process arguments and returns
// the process exit status.
//
// An interrupt aborts the requests in flight.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
