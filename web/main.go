package main

import (
	"flag"
	"os"

	"github.com/QPG-MIT/optiverse-sub000/log"
	"github.com/QPG-MIT/optiverse-sub000/web/server"
)

var logger = log.New("web")

func main() {
	port := flag.Int("port", 0, "Port to serve on (overrides OPTIVERSE_PORT)")
	flag.Parse()

	cfg, err := server.LoadConfig()
	if err != nil {
		logger.Errorf("Loading config: %v", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}

	if err := server.New(cfg).Start(); err != nil {
		logger.Errorf("Starting server: %v", err)
		os.Exit(1)
	}
}
