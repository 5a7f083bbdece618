package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/essabriabdelghani/chatbot-gemini/internal/client/cli"
	"github.com/essabriabdelghani/chatbot-gemini/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
}
