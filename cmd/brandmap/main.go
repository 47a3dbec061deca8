// Package main provides the entry point for the brandmap CLI tool.
package main

import (
	"github.com/brandmap/brandmap/cmd/brandmap/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
