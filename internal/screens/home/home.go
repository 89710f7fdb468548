package home

import (
	"fmt"
	mrand "math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/bank"
	"github.com/abhisek/examsim/internal/engine"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	examscreen "github.com/abhisek/examsim/internal/screens/exam"
	"github.com/abhisek/examsim/internal/screens/history"
	"github.com/abhisek/examsim/internal/screens/practice"
	"github.com/abhisek/examsim/internal/session"
	"github.com/abhisek/examsim/internal/store"
	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/layout"
	"github.com/abhisek/examsim/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	eng      *engine.Engine
	qb       *bank.Bank
	repo     *store.SessionRepo
	menu     components.Menu
	resuming bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. qb may be nil when no question bank was
// configured; starting a new session is then disabled but a restored
// session can still be resumed, since it carries its own questions.
func New(eng *engine.Engine, qb *bank.Bank, repo *store.SessionRepo) *HomeScreen {
	h := &HomeScreen{
		eng:  eng,
		qb:   qb,
		repo: repo,
	}
	h.rebuild()
	return h
}

// rebuild recomputes the menu from the engine's current state.
func (h *HomeScreen) rebuild() {
	h.resuming = h.eng.State() == engine.StateActive

	items := []components.MenuItem{
		{Label: "RESUME SESSION", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: examscreen.New(h.eng)}
			}
		}},
		{Label: "START EXAM", Disabled: h.qb == nil, Action: func() tea.Cmd {
			return h.startExam()
		}},
		{Label: "PRACTICE SESSION", Disabled: h.qb == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practice.New(h.eng, h.qb)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.repo)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	if !h.resuming {
		items = items[1:]
	}

	h.menu = components.NewMenu(items)
}

// startExam builds a full exam session and opens the exam screen. Any
// restored session is replaced when the learner starts fresh anyway.
func (h *HomeScreen) startExam() tea.Cmd {
	rng := session.NewRand(mrand.Uint64(), mrand.Uint64())
	s, err := session.NewBuilder(rng, time.Now).Exam(h.qb)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.eng.Start(s)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: examscreen.New(h.eng)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.RefreshMsg); ok {
		h.rebuild()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("EXAMSIM"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Certification exam simulator"))
	b.WriteString("\n\n")

	if h.qb != nil {
		counts := fmt.Sprintf("Bank: %d questions (%d easy, %d medium, %d hard)",
			h.qb.Len(),
			len(h.qb.ByDifficulty(bank.Easy)),
			len(h.qb.ByDifficulty(bank.Medium)),
			len(h.qb.ByDifficulty(bank.Hard)))
		b.WriteString(theme.Subtitle.Width(width).Render(counts))
		b.WriteString("\n\n")
	}

	if h.resuming {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render("An unfinished session was restored."))
		b.WriteString("\n\n")
	}

	menu := h.menu.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	if h.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + h.errMsg))
	}

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
