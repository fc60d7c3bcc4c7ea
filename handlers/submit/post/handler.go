package post

import (
	"log/slog"
	"net/http"

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

// ServeHTTP submits the form message to the backend and redirects back
// to the transcript. The browser blocks on this handler for the length
// of the backend call, so each session has at most one request in
// flight.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Error("failed to parse form", slog.Any("error", err))
		respond.WithError(w, "failed to parse form", http.StatusBadRequest)
		return
	}
	sess := h.store.Get(w, r)
	sess.Submit(r.Context(), r.PostFormValue("message"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
