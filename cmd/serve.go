package cmd

import (
	"github.com/urfave/cli"

	"github.com/QPG-MIT/optiverse-sub000/web/server"
)

// Serve starts the HTTP API
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}
	if ctx.IsSet("port") {
		cfg.Port = ctx.Int("port")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}

	return server.New(cfg).Start()
}
