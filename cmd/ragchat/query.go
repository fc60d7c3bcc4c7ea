package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/softwarefinder/ragchat/client"
	"github.com/softwarefinder/ragchat/config"
	"github.com/softwarefinder/ragchat/models"
)

type QueryCommand struct {
	BackendURL    string `help:"The base URL of the RAG backend." env:"RAG_BACKEND_URL" default:""`
	BackendAPIKey string `help:"The API key sent to the RAG backend." env:"RAG_BACKEND_API_KEY" default:""`
	TopK          int    `help:"The number of retrieved passages to request." env:"RAG_TOP_K" default:"0"`
	ConfigFile    string `help:"Path to a YAML config file." env:"CONFIG_FILE" default:""`
	Query         string `help:"The query to send." short:"q"`
	Pretty        bool   `help:"Pretty print the JSON output." default:"true"`
	LogLevel      string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c QueryCommand) Run(ctx context.Context) (err error) {
	if strings.TrimSpace(c.Query) == "" {
		return fmt.Errorf("no query provided")
	}
	cfg, err := config.Load(c.ConfigFile, config.Config{BackendURL: c.BackendURL, TopK: c.TopK})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rc := client.New(cfg.BackendURL, c.BackendAPIKey)
	resp, err := rc.QueryPost(ctx, models.QueryPostRequest{
		Query: c.Query,
		TopK:  cfg.TopK,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}
