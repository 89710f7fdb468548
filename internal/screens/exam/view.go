package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}

	sess := s.eng.Active()
	if sess == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No active session.")
	}
	if s.confirmSubmit {
		return s.renderSubmitConfirm(width, sess.AnsweredCount(), len(sess.QuestionSet))
	}

	q := &sess.QuestionSet[s.idx]

	var b strings.Builder

	// Info line: position and difficulty left, progress right.
	flagMark := ""
	if sess.IsFlagged(q.ID) {
		flagMark = "  " + theme.Flagged.Render("⚑ flagged")
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.idx+1, len(sess.QuestionSet))) +
		lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  "+string(q.Difficulty)) +
		flagMark

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d/%d answered", sess.AnsweredCount(), len(sess.QuestionSet)))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Question text, wrapped to a readable column.
	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 80)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		questionStyle.Render(q.QuestionText)))
	b.WriteString("\n\n")

	// Answer options.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))

	return b.String()
}

func (s *ExamScreen) renderSubmitConfirm(width, answered, total int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Submit this session for scoring?"))
	b.WriteString("\n")

	note := fmt.Sprintf("%d of %d questions answered.", answered, total)
	if answered < total {
		note += " Unanswered questions count as incorrect."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(note))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, submit"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to continue.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
