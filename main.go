// Package main is the entry point for the leap CLI application.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/eykd/leap-go/cmd"
)

func main() {
	// Cancelled on SIGINT so a format run stops before the next file.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	code := cmd.RunCLIContext(ctx, cmd.BuildCommandTree(), os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
