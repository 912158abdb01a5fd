// Package main is the entry point for the censotec CLI binary.
package main

import (
	"os"

	"github.com/rudidomingues/censotec/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
