package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	Serve   ServeCommand   `cmd:"serve" help:"Start the browser chat UI."`
	Chat    ChatCommand    `cmd:"chat" help:"Chat with the RAG backend in the terminal."`
	Query   QueryCommand   `cmd:"query" help:"Send a single query to the RAG backend."`
	Health  HealthCommand  `cmd:"health" help:"Print the RAG backend healthcheck."`
	Version VersionCommand `cmd:"version" help:"Print the version of ragchat."`
}

func main() {
	// .env entries become defaults for the env-tagged flags below.
	_ = godotenv.Load()
	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli, kong.UsageOnError(), kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
