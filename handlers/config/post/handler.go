package post

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/respond"
	"github.com/softwarefinder/ragchat/sessions"
)

func New(log *slog.Logger, store *sessions.Store) Handler {
	return Handler{
		log:   log,
		store: store,
	}
}

type Handler struct {
	log   *slog.Logger
	store *sessions.Store
}

// ServeHTTP applies the sidebar configuration to the session. Invalid
// values become the session notice so they surface inline, and the
// previous configuration stays in effect.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Error("failed to parse form", slog.Any("error", err))
		respond.WithError(w, "failed to parse form", http.StatusBadRequest)
		return
	}
	sess := h.store.Get(w, r)

	var backendURL *string
	if v := r.PostFormValue("backend_url"); v != "" {
		backendURL = &v
	}
	var topK *int
	if v := r.PostFormValue("top_k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			sess.SetNotice("top_k must be an integer")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		topK = &k
	}

	if err := sess.UpdateConfig(backendURL, topK); err != nil {
		sess.SetNotice(err.Error())
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
