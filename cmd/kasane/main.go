// Package main provides the kasane CLI tool.
//
// Usage:
//
//	kasane <command> [flags]
//
// Commands:
//
//	show      Print the merged configuration
//	query     Evaluate an expression against the merged configuration
//	save      Write the merged configuration to <dir>/<environment>.<ext>
//	env       Print the active environment name
//	layers    List the merged files
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yacchi/kasane/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
