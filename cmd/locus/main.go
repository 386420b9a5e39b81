// Package main provides locus, a markdown task tracker that groups
// tasks by git repository.
package main

import (
	"os"
	"strings"

	"github.com/locusmd/locus/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args, env))
}
