package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"gearguard/internal/api"
	"gearguard/internal/cli"
	"gearguard/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	cfg := api.LoadConfig()

	// Logs go to a file: stdout belongs to the TUI renderer.
	log := logging.New(cfg.LogPath, cfg.LogLevel)
	defer log.Sync()

	client := api.NewClient(cfg, log)
	state := cli.NewSharedState(client, log)

	return cli.NewRootCmd(state).Execute()
}
