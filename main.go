package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"timedread/presentation/cli"
)

func main() {
	appCtx, appCtxCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appCtxCancel()

	if err := cli.NewApp(os.Stdout).RunContext(appCtx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		appCtxCancel()
		os.Exit(1)
	}
}
