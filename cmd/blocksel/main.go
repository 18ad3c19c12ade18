// Package main is the entry point for the blocksel CLI.
package main

import (
	"os"

	"github.com/yaklabco/blocksel/internal/cli"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	return cli.Run(info, os.Args[1:], os.Stdout, os.Stderr)
}
