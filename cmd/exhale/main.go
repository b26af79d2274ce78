// Package main is the single-binary entrypoint for Exhale.
// Exhale is a local-first quit-smoking companion — one binary, your data
// stays on your machine.
package main

import "github.com/exhale-health/exhale/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
