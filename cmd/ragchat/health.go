package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/softwarefinder/ragchat/client"
	"github.com/softwarefinder/ragchat/config"
)

type HealthCommand struct {
	BackendURL    string `help:"The base URL of the RAG backend." env:"RAG_BACKEND_URL" default:""`
	BackendAPIKey string `help:"The API key sent to the RAG backend." env:"RAG_BACKEND_API_KEY" default:""`
	ConfigFile    string `help:"Path to a YAML config file." env:"CONFIG_FILE" default:""`
	Pretty        bool   `help:"Pretty print the JSON output." default:"true"`
	LogLevel      string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c HealthCommand) Run(ctx context.Context) (err error) {
	cfg, err := config.Load(c.ConfigFile, config.Config{BackendURL: c.BackendURL})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rc := client.New(cfg.BackendURL, c.BackendAPIKey)
	resp, err := rc.Health(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}
