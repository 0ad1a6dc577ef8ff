// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/gjson"

	"github.com/gogama/wrq/request"
)

// printer writes request results. It is safe for concurrent use.
type printer struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool
	noColor bool

	statusOK    *color.Color
	statusError *color.Color
	headerKey   *color.Color
	errorText   *color.Color
}

func newPrinter(out, errOut io.Writer, noColor, verbose bool) *printer {
	noColor = noColor || !isTerminal(out)
	p := &printer{
		out:         out,
		errOut:      errOut,
		verbose:     verbose,
		noColor:     noColor,
		statusOK:    color.New(color.FgGreen, color.Bold),
		statusError: color.New(color.FgRed, color.Bold),
		headerKey:   color.New(color.FgYellow),
		errorText:   color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{p.statusOK, p.statusError, p.headerKey, p.errorText} {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (p *printer) print(e *request.Execution, err error, path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e != nil && e.Response != nil {
		p.printResponse(e, path)
	}
	if err != nil {
		outcome := "Error"
		if e != nil && e.Outcome != request.None {
			outcome = e.Outcome.String()
		}
		fmt.Fprintln(p.errOut, p.errorText.Sprintf("%s: %v", outcome, err))
	}
}

func (p *printer) printResponse(e *request.Execution, path string) {
	status := p.statusOK
	if !request.OK(e.StatusCode()) {
		status = p.statusError
	}
	fmt.Fprintf(p.out, "%s (%s)\n",
		status.Sprintf("HTTP %d %s", e.StatusCode(), http.StatusText(e.StatusCode())),
		e.Duration().Round(time.Millisecond))

	if p.verbose {
		keys := make([]string, 0, len(e.Response.Header))
		for k := range e.Response.Header {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(p.out, "%s: %s\n", p.headerKey.Sprint(k), strings.Join(e.Response.Header[k], ", "))
		}
		fmt.Fprintln(p.out)
	}

	if path == "" {
		if len(e.Body) > 0 {
			fmt.Fprintln(p.out, strings.TrimRight(string(e.Body), "\n"))
		}
		return
	}
	if !gjson.ValidBytes(e.Body) {
		fmt.Fprintln(p.errOut, p.errorText.Sprint("response body is not valid JSON"))
		return
	}
	if r := gjson.GetBytes(e.Body, path); r.Exists() {
		fmt.Fprintln(p.out, r.String())
	} else {
		fmt.Fprintln(p.errOut, p.errorText.Sprintf("no value at path %q", path))
	}
}
