// Command flowtrace computes max-flow traces from the command line or over HTTP.
package main

import (
	"os"

	"github.com/katalvlaran/flowtrace/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
