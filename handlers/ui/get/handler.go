package get

import (
	"html/template"
	"log/slog"
	"net/http"

	_ "embed"

	"github.com/softwarefinder/ragchat/client"
	"github.com/softwarefinder/ragchat/config"
	"github.com/softwarefinder/ragchat/models"
	"github.com/softwarefinder/ragchat/session"
	"github.com/softwarefinder/ragchat/sessions"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

func New(log *slog.Logger, store *sessions.Store, apiKey string) Handler {
	return Handler{
		log:    log,
		store:  store,
		apiKey: apiKey,
	}
}

type Handler struct {
	log    *slog.Logger
	store  *sessions.Store
	apiKey string
}

type page struct {
	Turns   []session.Turn
	Notice  string
	Config  config.Config
	Health  models.HealthResponse
	Prefill string
	MinTopK int
	MaxTopK int
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Get(w, r)
	cfg := sess.Config()

	health, err := client.New(cfg.BackendURL, h.apiKey).Health(r.Context())
	if err != nil {
		health = models.HealthResponse{
			Status: models.HealthStatusError,
			Detail: err.Error(),
		}
	}

	data := page{
		Turns:   sess.Turns(),
		Notice:  sess.Notice(),
		Config:  cfg,
		Health:  health,
		Prefill: r.URL.Query().Get("prefill"),
		MinTopK: config.MinTopK,
		MaxTopK: config.MaxTopK,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.log.Error("failed to render page", slog.Any("error", err))
	}
}
