package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/bank"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/session"
	"github.com/abhisek/examsim/internal/store"
	"github.com/abhisek/examsim/internal/ui/layout"
	"github.com/abhisek/examsim/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []*session.CompletedSession
	Err      error
}

// HistoryScreen lists past completed sessions, most recent first.
type HistoryScreen struct {
	repo     *store.SessionRepo
	sessions []*session.CompletedSession
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo *store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.repo.ListCompleted(context.Background())
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		// Stored oldest first; show newest first.
		for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
			sessions[i], sessions[j] = sessions[j], sessions[i]
		}
		return historyLoadedMsg{Sessions: sessions}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No completed sessions yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, cs := range s.sessions {
		dateStr := cs.EndedAt().Format("Jan 02, 2006 3:04 PM")
		d := cs.Duration()
		durationStr := fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)

		mode := "Practice"
		if cs.Mode == session.ModeExam {
			mode = "Exam"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-8s  %s  %d/%d  %.1f%%",
			prefix, dateStr, mode, durationStr, cs.Score, cs.TotalQuestions, cs.Percentage())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		// Expanded difficulty breakdown.
		if s.expanded[i] {
			for _, diff := range bank.Difficulties {
				entry := cs.Breakdown[diff]
				if entry.Total == 0 {
					continue
				}
				detail := fmt.Sprintf("    %-8s %d/%d correct", diff, entry.Correct, entry.Total)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
