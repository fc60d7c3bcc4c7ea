package get

import (
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/softwarefinder/ragchat/client"
	"github.com/softwarefinder/ragchat/models"
	"github.com/softwarefinder/ragchat/sessions"
)

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

// ServeHTTP proxies the backend healthcheck for the session's
// configured backend. An unreachable backend is reported in the body
// rather than the status code, as the badge treats it as data.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Get(w, r)
	cfg := sess.Config()
	health, err := client.New(cfg.BackendURL, h.apiKey).Health(r.Context())
	if err != nil {
		h.log.Warn("backend healthcheck failed", slog.String("url", cfg.BackendURL), slog.Any("error", err))
		health = models.HealthResponse{
			Status: models.HealthStatusError,
			Detail: err.Error(),
		}
	}
	respond.WithJSON(w, health, http.StatusOK)
}
