package results

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/analytics"
	"github.com/abhisek/examsim/internal/bank"
	"github.com/abhisek/examsim/internal/engine"
	"github.com/abhisek/examsim/internal/report"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/session"
	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/layout"
	"github.com/abhisek/examsim/internal/ui/theme"
)

// reportSavedMsg is sent after the text report has been written to disk.
type reportSavedMsg struct {
	Path string
	Err  error
}

// ResultsScreen shows the scored session: totals, difficulty breakdown, and
// the weakest topics. The report can be exported to a text file from here.
type ResultsScreen struct {
	eng       *engine.Engine
	completed *session.CompletedSession
	weakest   []analytics.TopicStats
	savedPath string
	errMsg    string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for a scored session.
func New(eng *engine.Engine, cs *session.CompletedSession) *ResultsScreen {
	s := &ResultsScreen{eng: eng, completed: cs}
	if stats, err := analytics.ByTopic(cs); err == nil {
		s.weakest = analytics.WeakestTopics(stats, 3)
	}
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Save report"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportSavedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.savedPath = msg.Path
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			return s, s.saveReport()
		case "enter", "esc":
			s.eng.Clear()
			return s, tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return router.RefreshMsg{} },
			)
		}
	}
	return s, nil
}

// saveReport writes the full text report next to the working directory.
func (s *ResultsScreen) saveReport() tea.Cmd {
	cs := s.completed
	return func() tea.Msg {
		text, err := report.Generate(cs)
		if err != nil {
			return reportSavedMsg{Err: err}
		}
		path := fmt.Sprintf("report-%s.txt", report.SessionID(cs))
		if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
			return reportSavedMsg{Err: err}
		}
		return reportSavedMsg{Path: path}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	cs := s.completed
	if cs == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Session complete"))
	b.WriteString("\n\n")

	// Headline score.
	scoreLine := fmt.Sprintf("%d / %d correct   (%.1f%%)", cs.Score, cs.TotalQuestions, cs.Percentage())
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(scoreLine))
	b.WriteString("\n")

	d := cs.Duration()
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d    Attempted: %d", mins, secs, cs.AnsweredCount())))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	// Difficulty breakdown.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("By difficulty")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(width-30, 40)
	for _, diff := range bank.Difficulties {
		entry := cs.Breakdown[diff]
		if entry.Total == 0 {
			continue
		}
		pct := float64(entry.Correct) / float64(entry.Total)
		bar := components.NewProgressBar(fmt.Sprintf("%-8s", diff), pct, false, barWidth)
		line := bar.View() + lipgloss.NewStyle().
			Foreground(theme.Text).
			Render(fmt.Sprintf("  %d/%d", entry.Correct, entry.Total))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	// Weakest topics.
	if len(s.weakest) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Focus areas")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, t := range s.weakest {
			line := fmt.Sprintf("  %s    %d/%d correct (%.0f%%)",
				t.Topic, t.Correct, t.Total, t.Accuracy()*100)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	if s.savedPath != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Report saved to " + s.savedPath))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + s.errMsg))
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
