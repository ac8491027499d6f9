package main

import (
	"os"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/kingfs/go-llm-reference/internal/api"
	"github.com/kingfs/go-llm-reference/internal/config"
)

func main() {
	config.LoadEnvFiles(config.DefaultEnvFiles)

	configPath := os.Getenv("LLMREF_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fiberlog.Fatalf("Failed to load config: %v", err)
	}

	catalog, err := cfg.OpenCatalog()
	if err != nil {
		fiberlog.Fatalf("Failed to load model catalog: %v", err)
	}

	if err := api.NewServer(cfg, catalog).Run(); err != nil {
		fiberlog.Fatalf("Server failed: %v", err)
	}
}
