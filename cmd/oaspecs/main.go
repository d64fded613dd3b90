package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gocutover/open-api-specs/cmd/oaspecs/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commands.Execute(ctx)
	stop()
	os.Exit(code)
}
