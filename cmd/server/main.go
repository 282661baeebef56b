package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/staffdesk/staffdesk/internal/server"
	"github.com/staffdesk/staffdesk/internal/server/config"
)

func main() {

	ctx := context.Background()

	// optional; the environment wins over the file
	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
