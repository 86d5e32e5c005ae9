// Package main is the entry point for the barstats CLI tool, which computes
// Beyond All Reason win-rate statistics from the public replay service.
package main

import "github.com/furyhawk/barstats/cmd"

func main() {
	cmd.Execute()
}
