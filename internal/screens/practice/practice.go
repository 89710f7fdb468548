package practice

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
	"github.com/abhisek/examsim/internal/session"
	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/layout"
	"github.com/abhisek/examsim/internal/ui/theme"
)

// difficulty options in display order; index 0 is the unfiltered pool.
var difficulties = []string{
	session.DifficultyAll,
	string(bank.Easy),
	string(bank.Medium),
	string(bank.Hard),
}

// PracticeScreen is the setup form for a practice session: pick a
// difficulty filter and a question count, then start.
type PracticeScreen struct {
	eng *engine.Engine
	qb  *bank.Bank

	diffIdx int
	count   components.TextInput
	errMsg  string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a new PracticeScreen.
func New(eng *engine.Engine, qb *bank.Bank) *PracticeScreen {
	return &PracticeScreen{
		eng:   eng,
		qb:    qb,
		count: components.NewTextInput("10", true, 4),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	return p.count.Init()
}

func (p *PracticeScreen) Title() string {
	return "Practice Setup"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Difficulty"},
		{Key: "0-9", Description: "Count"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// poolSize returns how many bank questions match the selected filter.
func (p *PracticeScreen) poolSize() int {
	if p.diffIdx == 0 {
		return p.qb.Len()
	}
	return len(p.qb.ByDifficulty(bank.Difficulty(difficulties[p.diffIdx])))
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.count, cmd = p.count.Update(msg)
		return p, cmd
	}

	switch kmsg.String() {
	case "esc":
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	case "left", "h":
		if p.diffIdx > 0 {
			p.diffIdx--
		}
		return p, nil
	case "right", "l":
		if p.diffIdx < len(difficulties)-1 {
			p.diffIdx++
		}
		return p, nil
	case "enter":
		return p.start()
	}

	var cmd tea.Cmd
	p.count, cmd = p.count.Update(msg)
	return p, cmd
}

// start builds the practice session and hands off to the exam screen.
func (p *PracticeScreen) start() (screen.Screen, tea.Cmd) {
	n, err := p.count.NumericValue()
	if err != nil || n < 1 {
		p.errMsg = "enter a question count of at least 1"
		return p, nil
	}

	settings := session.PracticeSettings{
		Difficulty:    difficulties[p.diffIdx],
		QuestionCount: n,
	}

	rng := session.NewRand(mrand.Uint64(), mrand.Uint64())
	s, err := session.NewBuilder(rng, time.Now).Practice(p.qb, settings)
	if err != nil {
		p.errMsg = err.Error()
		return p, nil
	}

	p.eng.Start(s)
	return p, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: examscreen.New(p.eng)}
	}
}

func (p *PracticeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Practice Session"))
	b.WriteString("\n\n")

	// Difficulty selector.
	var opts []string
	for i, d := range difficulties {
		if i == p.diffIdx {
			opts = append(opts, theme.Selected.Render("[ "+d+" ]"))
		} else {
			opts = append(opts, lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+d+"  "))
		}
	}
	diffLine := "Difficulty:   " + strings.Join(opts, " ")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, diffLine))
	b.WriteString("\n\n")

	countLine := "Questions:    " + p.count.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, countLine))
	b.WriteString("\n\n")

	pool := p.poolSize()
	poolLine := fmt.Sprintf("%d questions available", pool)
	if n, err := p.count.NumericValue(); err == nil && n > pool {
		poolLine += fmt.Sprintf(" — session will hold %d", pool)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(poolLine))

	if p.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(p.errMsg))
	}

	return b.String()
}
