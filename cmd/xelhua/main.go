package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/elex-project/xelhua/internal/cli"
)

var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx,
		version,
		commit,
		date,
	); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
