package main

import (
	"log"

	"github.com/essabriabdelghani/chatbot-gemini/internal/server"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/config"
)

func main() {

	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run()
}
