package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/softwarefinder/ragchat/config"
	configpost "github.com/softwarefinder/ragchat/handlers/config/post"
	healthget "github.com/softwarefinder/ragchat/handlers/health/get"
	submitpost "github.com/softwarefinder/ragchat/handlers/submit/post"
	uiget "github.com/softwarefinder/ragchat/handlers/ui/get"
	"github.com/softwarefinder/ragchat/sessions"
)

type ServeCommand struct {
	ListenAddr    string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:8510"`
	BackendURL    string        `help:"The base URL of the RAG backend." env:"RAG_BACKEND_URL" default:""`
	BackendAPIKey string        `help:"The API key sent to the RAG backend." env:"RAG_BACKEND_API_KEY" default:""`
	TopK          int           `help:"The number of retrieved passages to request per query." env:"RAG_TOP_K" default:"0"`
	ConfigFile    string        `help:"Path to a YAML config file." env:"CONFIG_FILE" default:""`
	SessionTTL    time.Duration `help:"How long idle browser sessions are kept." env:"SESSION_TTL" default:"30m"`
	TLSCertFile   string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile    string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel      string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	cfg, err := config.Load(c.ConfigFile, config.Config{BackendURL: c.BackendURL, TopK: c.TopK})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Info("configured backend", slog.String("url", cfg.BackendURL), slog.Int("top_k", cfg.TopK))

	store := sessions.New(cfg, c.BackendAPIKey, c.SessionTTL)

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", uiget.New(log, store, c.BackendAPIKey))
	mux.Handle("POST /submit", submitpost.New(log, store))
	mux.Handle("POST /config", configpost.New(log, store))
	mux.Handle("GET /healthz", healthget.New(log, store, c.BackendAPIKey))

	withCORSMux := cors.AllowAll().Handler(mux)

	log.Info("Listening", slog.String("addr", c.ListenAddr))
	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: withCORSMux,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}
