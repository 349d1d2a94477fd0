package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/apimgr/swapi/src/client/cmd"
)

func main() {
	if err := InitCLI(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitFailure)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
