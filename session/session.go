package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/a-h/jsonapi"
	"github.com/softwarefinder/ragchat/client"
	"github.com/softwarefinder/ragchat/config"
	"github.com/softwarefinder/ragchat/models"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the transcript.
type Turn struct {
	Role      Role
	Content   string
	Citations []models.Citation
	FollowUps []string
}

// maxHistoryTurns caps how many recent turns are replayed to the
// backend with each query.
const maxHistoryTurns = 6

// New creates an empty session. The transcript lives for the lifetime
// of the session and is discarded with it.
func New(cfg config.Config, apiKey string) *Session {
	return &Session{
		cfg:    cfg,
		apiKey: apiKey,
	}
}

// Session holds the transcript and the backend configuration for one
// user. The mutex makes each submission block until the previous one
// has resolved, so there is never more than one request in flight.
type Session struct {
	mu     sync.Mutex
	cfg    config.Config
	apiKey string
	turns  []Turn
	notice string
}

// Submit sends message to the backend and appends the exchange to the
// transcript. Whitespace-only input is ignored without issuing a
// request. Failures never return: they become the session notice, and
// the transcript up to and including the user turn is left as-is.
func (s *Session) Submit(ctx context.Context, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notice = ""
	s.turns = append(s.turns, Turn{Role: RoleUser, Content: message})

	req := models.QueryPostRequest{
		Query:   message,
		TopK:    s.cfg.TopK,
		History: history(s.turns),
	}
	c := client.New(s.cfg.BackendURL, s.apiKey)
	resp, err := c.QueryPost(ctx, req)
	if err != nil {
		s.notice = notice(err)
		return
	}
	answer := resp.Answer
	if answer == "" {
		answer = "No answer returned."
	}
	s.turns = append(s.turns, Turn{
		Role:      RoleAssistant,
		Content:   answer,
		Citations: resp.AllCitations(),
		FollowUps: resp.FollowUps,
	})
}

func history(turns []Turn) (msgs []models.HistoryMessage) {
	if len(turns) > maxHistoryTurns {
		turns = turns[len(turns)-maxHistoryTurns:]
	}
	for _, t := range turns {
		msgs = append(msgs, models.HistoryMessage{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}
	return msgs
}

func notice(err error) string {
	var statusErr jsonapi.InvalidStatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("request failed: backend returned HTTP %d", statusErr.Status)
	}
	return fmt.Sprintf("request failed: %v", err)
}

// UpdateConfig applies validated overrides to the configuration used by
// subsequent submissions. Nil fields are left unchanged. Past turns are
// unaffected.
func (s *Session) UpdateConfig(backendURL *string, topK *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cfg
	if backendURL != nil {
		u, err := config.ParseBackendURL(*backendURL)
		if err != nil {
			return err
		}
		next.BackendURL = u
	}
	if topK != nil {
		if err := config.ValidateTopK(*topK); err != nil {
			return err
		}
		next.TopK = *topK
	}
	s.cfg = next
	return nil
}

// Config returns the configuration the next submission will use.
func (s *Session) Config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Turns returns a copy of the transcript.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// Notice returns the inline error from the last submission, or the
// empty string if it succeeded.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// SetNotice replaces the inline notice. The UI uses it to surface
// configuration errors in the same place as request failures.
func (s *Session) SetNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}
