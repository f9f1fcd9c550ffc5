package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dex/internal/logtail"
)

type diagnosticsMsg struct {
	entries []logtail.Entry
	err     error
}

func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return diagnosticsMsg{}
		}
		entries, err := logtail.Read(path, DiagnosticsLimit)
		return diagnosticsMsg{entries: entries, err: err}
	}
}

// diagnosticsScreen shows the tail of the application log.
type diagnosticsScreen struct {
	viewport viewport.Model
	entries  []logtail.Entry
	err      error
	loaded   bool
}

func newDiagnosticsScreen() *diagnosticsScreen {
	return &diagnosticsScreen{viewport: viewport.New(0, 0)}
}

func (s *diagnosticsScreen) resize(width, height int) {
	s.viewport.Width = width
	s.viewport.Height = height
}

func (s *diagnosticsScreen) set(msg diagnosticsMsg, st Styles) {
	s.entries = msg.entries
	s.err = msg.err
	s.loaded = true
	s.restyle(st)
	s.viewport.GotoBottom()
}

func (s *diagnosticsScreen) restyle(st Styles) {
	if !s.loaded {
		return
	}
	lines := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		lines = append(lines, levelStyle(st, e.Level).Render(e.String()))
	}
	s.viewport.SetContent(strings.Join(lines, "\n"))
}

func levelStyle(st Styles, level string) lipgloss.Style {
	switch strings.ToLower(level) {
	case "error", "dpanic", "panic", "fatal":
		return st.DangerText
	case "warn":
		return st.WarningText
	case "debug":
		return st.FaintText
	default:
		return st.Text
	}
}

func (s *diagnosticsScreen) view(st Styles, logPath string) string {
	switch {
	case strings.TrimSpace(logPath) == "":
		return st.MutedText.Render("Logging is disabled.")
	case !s.loaded:
		return st.MutedText.Render("Reading log…")
	case s.err != nil:
		return st.DangerText.Render(fmt.Sprintf("Could not read log: %v", s.err))
	case len(s.entries) == 0:
		return st.MutedText.Render("No log entries yet.")
	}
	return s.viewport.View()
}

func (s *diagnosticsScreen) statusLine(logPath string) string {
	if logPath == "" {
		return ""
	}
	return fmt.Sprintf("%d entries · %s", len(s.entries), logPath)
}
