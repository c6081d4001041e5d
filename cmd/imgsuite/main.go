package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/jo-hoe/imgsuite/internal/core"
)

func getConfigPath() string {
	// First check if config path is provided via environment variable
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}

	// Default to config.yaml in current working directory
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cwd, "config.yaml")
}

func main() {
	// os.Exit skips deferred calls, so the run is wrapped
	os.Exit(run())
}

func run() int {
	// Load configuration
	configPath := getConfigPath()
	config, err := core.LoadConfig(configPath)
	if err != nil {
		log.Printf("failed to load config from %s: %v", configPath, err)
		panic(err)
	}

	coreService, err := core.NewCoreService(config)
	if err != nil {
		log.Printf("failed to initialize core service: %v", err)
		panic(err)
	}
	defer func() {
		if err := coreService.Close(); err != nil {
			log.Printf("core service close error: %v", err)
		}
	}()

	runRecord, summary, err := coreService.RunSuite(context.Background())
	if err != nil {
		log.Printf("suite run failed: %v", err)
		return 1
	}

	log.Printf("run %s finished: %d steps, %d failed, %d cache hits",
		runRecord.ID, summary.Total, summary.Failed, summary.CacheHits)
	for _, result := range summary.Results {
		if result.ExitCode != 0 {
			log.Printf("FAILED [%d] %s (exit %d): %s",
				result.Position, result.Command, result.ExitCode, result.Stderr)
		}
	}

	if summary.Failed > 0 {
		return 1
	}
	return 0
}
