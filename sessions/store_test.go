package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/softwarefinder/ragchat/config"
)

var defaults = config.Config{BackendURL: "http://localhost:8000", TopK: 5}

func TestGetCreatesSessionAndCookie(t *testing.T) {
	store := New(defaults, "", time.Minute)
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	sess := store.Get(w, r)
	if sess == nil {
		t.Fatal("expected a session")
	}
	if got := sess.Config(); got != defaults {
		t.Errorf("expected default config, got %+v", got)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected a %s cookie, got %+v", CookieName, cookies)
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 session, got %d", store.Count())
	}
}

func TestGetReturnsSameSessionForCookie(t *testing.T) {
	store := New(defaults, "", time.Minute)
	w := httptest.NewRecorder()
	first := store.Get(w, httptest.NewRequest("GET", "/", nil))
	cookie := w.Result().Cookies()[0]

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookie)
	second := store.Get(httptest.NewRecorder(), r)

	if first != second {
		t.Error("expected the same session for the same cookie")
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 session, got %d", store.Count())
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := New(defaults, "", time.Minute)
	first := store.Get(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	second := store.Get(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if first == second {
		t.Error("expected distinct sessions for distinct browsers")
	}
	topK := 9
	if err := first.UpdateConfig(nil, &topK); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Config().TopK != defaults.TopK {
		t.Error("expected config changes not to leak across sessions")
	}
}

func TestUnknownCookieGetsFreshSession(t *testing.T) {
	store := New(defaults, "", time.Minute)
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "expired-session-id"})

	w := httptest.NewRecorder()
	sess := store.Get(w, r)
	if sess == nil {
		t.Fatal("expected a session")
	}
	if len(w.Result().Cookies()) != 1 {
		t.Error("expected a replacement cookie to be set")
	}
}
