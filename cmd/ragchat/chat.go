package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/softwarefinder/ragchat/config"
	"github.com/softwarefinder/ragchat/session"
)

type ChatCommand struct {
	BackendURL    string `help:"The base URL of the RAG backend." env:"RAG_BACKEND_URL" default:""`
	BackendAPIKey string `help:"The API key sent to the RAG backend." env:"RAG_BACKEND_API_KEY" default:""`
	TopK          int    `help:"The number of retrieved passages to request per query." env:"RAG_TOP_K" default:"0"`
	ConfigFile    string `help:"Path to a YAML config file." env:"CONFIG_FILE" default:""`
	LogLevel      string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

// snapshot is the transcript state published after each submission
// resolves, success or failure.
type snapshot struct {
	turns  []session.Turn
	notice string
}

func (c ChatCommand) Run(ctx context.Context) (err error) {
	cfg, err := config.Load(c.ConfigFile, config.Config{BackendURL: c.BackendURL, TopK: c.TopK})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	sess := session.New(cfg, c.BackendAPIKey)

	submissions := make(chan string)
	updates := make(chan snapshot)
	defer close(submissions)
	defer close(updates)

	go func() {
		for message := range submissions {
			sess.Submit(ctx, message)
			updates <- snapshot{turns: sess.Turns(), notice: sess.Notice()}
		}
	}()

	p := tea.NewProgram(newModel(ctx, cfg, submissions, updates))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Foreground  = lipgloss.Color("#f8f8f2")
	Comment     = lipgloss.Color("#6272a4")
	Cyan        = lipgloss.Color("#8be9fd")
	Green       = lipgloss.Color("#50fa7b")
	Orange      = lipgloss.Color("#ffb86c")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
	Yellow      = lipgloss.Color("#f1fa8c")
)

var headerStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Margin(10).Padding(1).PaddingTop(0)

var header = `
 ______    _______  _______  _______  __   __  _______  _______
|    _ |  |   _   ||       ||       ||  | |  ||   _   ||       |
|   | ||  |  |_|  ||    ___||       ||  |_|  ||  |_|  ||_     _|
|   |_||_ |       ||   | __ |       ||       ||       |  |   |
|    __  ||       ||   ||  ||      _||       ||   _   |  |   |
|   |  | ||   _   ||   |_| ||     |_ |   _   ||  | |  |  |   |
|___|  |_||__| |__||_______||_______||__| |__||__| |__|  |___|
`

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	ctx      context.Context
	cfg      config.Config

	turns   []session.Turn
	notice  string
	waiting bool

	// Session interactions.
	submissions chan string
	updates     chan snapshot
}

func newModel(ctx context.Context, cfg config.Config, submissions chan string, updates chan snapshot) model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 2000

	ta.SetHeight(3)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(headerStyle.Render(header))

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return model{
		ctx:         ctx,
		cfg:         cfg,
		textarea:    ta,
		viewport:    vp,
		submissions: submissions,
		updates:     updates,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.subscribeToUpdates(),
	)
}

func (m model) subscribeToUpdates() tea.Cmd {
	return func() tea.Msg {
		select {
		case x := <-m.updates:
			return x
		case <-m.ctx.Done():
			return nil
		}
	}
}

var roleToStyle = map[session.Role]lipgloss.Style{
	session.RoleUser:      lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Pink),
	session.RoleAssistant: lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).MaxWidth(90).Background(Background).Foreground(Cyan),
}

var roleToIcon = map[session.Role]string{
	session.RoleUser:      "🥷",
	session.RoleAssistant: "✨",
}

var citationStyle = lipgloss.NewStyle().MarginLeft(2).Foreground(Comment)
var followUpStyle = lipgloss.NewStyle().MarginLeft(2).Foreground(Yellow)
var noticeStyle = lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Red)
var waitingStyle = lipgloss.NewStyle().Margin(1).MarginBottom(0).Foreground(Comment)

func formatTurn(turn session.Turn) string {
	style, ok := roleToStyle[turn.Role]
	if !ok {
		return turn.Content
	}
	icon, ok := roleToIcon[turn.Role]
	if !ok {
		icon = "🤷"
	}
	var sb strings.Builder
	wrapped := wordwrap.String(strings.TrimSpace(icon+" "+turn.Content), 80)
	sb.WriteString(style.Render(wrapped))
	for _, c := range turn.Citations {
		line := c.Label()
		if c.Rank > 0 {
			line = fmt.Sprintf("[%d] %s", c.Rank, c.Label())
		}
		if c.SourceURL != "" {
			line += " " + c.SourceURL
		}
		if body := c.Body(); body != "" {
			line += "\n" + wordwrap.String(body, 76)
		}
		sb.WriteString("\n")
		sb.WriteString(citationStyle.Render(line))
	}
	for _, fu := range turn.FollowUps {
		sb.WriteString("\n")
		sb.WriteString(followUpStyle.Render("Try: " + fu))
	}
	return sb.String()
}

func (m model) renderTranscript() string {
	var sb strings.Builder
	for _, turn := range m.turns {
		sb.WriteString(formatTurn(turn))
		sb.WriteString("\n")
	}
	if m.notice != "" {
		sb.WriteString(noticeStyle.Render(wordwrap.String(m.notice, 80)))
		sb.WriteString("\n")
	}
	if m.waiting {
		sb.WriteString(waitingStyle.Render("Thinking..."))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshot:
		m.turns = msg.turns
		m.notice = msg.notice
		m.waiting = false
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, m.subscribeToUpdates()
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.waiting {
				// One request in flight at a time.
				return m, nil
			}
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" {
				// Don't send empty messages.
				return m, nil
			}
			m.textarea.Reset()
			// Show the user turn immediately. The snapshot that
			// arrives when the request resolves replaces it.
			m.turns = append(m.turns, session.Turn{Role: session.RoleUser, Content: v})
			m.notice = ""
			m.waiting = true
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			m.submissions <- v
			return m, nil
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	status := fmt.Sprintf("backend: %s  top_k: %d", m.cfg.BackendURL, m.cfg.TopK)
	return fmt.Sprintf("%s\n%s\n%s",
		m.viewport.View(),
		lipgloss.NewStyle().Foreground(Comment).Render(status),
		m.textarea.View(),
	) + "\n\n"
}
