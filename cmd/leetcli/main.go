// Leetcli is a terminal client for a coding-practice platform: browse
// problems, check profiles, submit solutions, and run tests, backed by a
// local cache.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leetcli/leetcli/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
