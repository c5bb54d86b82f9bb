// Package main provides the entry point for the regsync CLI tool.
package main

import "github.com/actonians/regsync/cmd/regsync/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
