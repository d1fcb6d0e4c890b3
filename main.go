package main

import (
	"context"
	"os"
	"os/signal"

	"corona-spread-gif/commands"
	"corona-spread-gif/config"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	commands.ExecuteContext(ctx, cfg)
}
