package main

import (
	"context"

	"github.com/staffdesk/staffdesk/internal/client/cli"
	"github.com/staffdesk/staffdesk/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(context.Background())

}
