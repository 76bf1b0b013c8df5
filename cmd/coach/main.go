package main

import (
	"alcyxob/fitcoach/internal/cli"
	"alcyxob/fitcoach/internal/config"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

func main() {
	// Diagnostics stay out of the terminal unless asked for.
	if os.Getenv("COACH_DEBUG") == "" {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		color.Red("❌ could not load config: %v", err)
		os.Exit(1)
	}

	app := cli.NewApp(cfg.Client)
	err = cli.NewRootCmd(app).Execute()
	if closeErr := app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}
