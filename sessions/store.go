package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/softwarefinder/ragchat/config"
	"github.com/softwarefinder/ragchat/session"
)

const CookieName = "ragchat_session"

// New creates a store that keeps one session per browser. Sessions that
// go unused for ttl are discarded along with their transcript.
func New(defaults config.Config, apiKey string, ttl time.Duration) *Store {
	return &Store{
		sessions: cache.New(ttl, ttl),
		defaults: defaults,
		apiKey:   apiKey,
	}
}

type Store struct {
	sessions *cache.Cache
	defaults config.Config
	apiKey   string
}

// Get returns the session for the request's cookie, creating a fresh
// one (and setting the cookie) when there isn't one yet. Each access
// extends the session's lifetime.
func (s *Store) Get(w http.ResponseWriter, r *http.Request) *session.Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if v, ok := s.sessions.Get(c.Value); ok {
			sess := v.(*session.Session)
			s.sessions.Set(c.Value, sess, cache.DefaultExpiration)
			return sess
		}
	}
	id := uuid.NewString()
	sess := session.New(s.defaults, s.apiKey)
	s.sessions.Set(id, sess, cache.DefaultExpiration)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.sessions.ItemCount()
}
