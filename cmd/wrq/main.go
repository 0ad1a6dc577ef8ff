// Copyright 2021 The wrq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command wrq sends HTTP requests from the command line.
package main

import (
	"os"

	"github.com/gogama/wrq/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
