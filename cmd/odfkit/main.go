// Package main is the entry point for the odfkit CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/odfkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
