package main

import (
	"flag"
	"log"
	"os"

	"BrentLens/internal/di"
	"BrentLens/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", config.DefaultPath, "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s source=%s window_days=%d", cfg.Environment, cfg.Dataset.Source, cfg.Dataset.WindowDays)

	// Wire DI: loads the dataset before anything is served
	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	err = app.Run()
	cleanup()
	if err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
