// Package main is the loom command-line tool.
//
// Usage:
//
//	loom render [--frames n] [--click x,y]...   Print the draw commands of the demo scene
//	loom inspect                                Step through frames interactively
//	loom version                                Print build information
//
// Every command accepts --config loom.toml and --verbose.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/go-loom/internal/cli"
	"github.com/grindlemire/go-loom/internal/debug"
)

var (
	version = "0.1.0"
	commit  string
	date    string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer debug.Close()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
