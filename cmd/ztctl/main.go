package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yndnr/ztctl-go/internal/cli/command"
	"github.com/yndnr/ztctl-go/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.SignalContext(context.Background())

	err := command.App().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
