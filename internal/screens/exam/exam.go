package exam

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examsim/internal/engine"
	"github.com/abhisek/examsim/internal/router"
	"github.com/abhisek/examsim/internal/screen"
	"github.com/abhisek/examsim/internal/screens/results"
	"github.com/abhisek/examsim/internal/session"
	"github.com/abhisek/examsim/internal/ui/components"
	"github.com/abhisek/examsim/internal/ui/layout"
)

// ExamScreen drives an active session: question navigation, answering,
// flagging, and submission. The same screen serves exam and practice modes;
// only the deadline differs.
type ExamScreen struct {
	eng *engine.Engine

	idx     int
	choices components.ChoiceList

	confirmSubmit bool
	errMsg        string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)

// New creates an ExamScreen over the engine's active session.
func New(eng *engine.Engine) *ExamScreen {
	s := &ExamScreen{eng: eng}
	s.loadQuestion()
	return s
}

func (s *ExamScreen) Init() tea.Cmd {
	return tickCmd()
}

func (s *ExamScreen) Title() string {
	sess := s.eng.Active()
	if sess != nil && sess.Mode == session.ModePractice {
		return "Practice"
	}
	return "Exam"
}

// Status renders the header's right side: the countdown for exams, the
// answered tally for practice.
func (s *ExamScreen) Status() string {
	sess := s.eng.Active()
	if sess == nil {
		return ""
	}
	if left, ok := s.eng.Remaining(time.Now()); ok {
		mins := int(left.Minutes())
		secs := int(left.Seconds()) % 60
		return fmt.Sprintf("⏱ %d:%02d", mins, secs)
	}
	return fmt.Sprintf("%d/%d answered", sess.AnsweredCount(), len(sess.QuestionSet))
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	if s.confirmSubmit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Question"},
		{Key: "↑↓/Enter", Description: "Answer"},
		{Key: "F", Description: "Flag"},
		{Key: "U", Description: "Next unanswered"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Home"},
	}
}

// loadQuestion rebuilds the choice list for the question at the cursor.
func (s *ExamScreen) loadQuestion() {
	sess := s.eng.Active()
	if sess == nil || s.idx < 0 || s.idx >= len(sess.QuestionSet) {
		return
	}
	q := &sess.QuestionSet[s.idx]
	m := sess.Mapping(q.ID)
	if m == nil {
		s.errMsg = fmt.Sprintf("question %s has no choice mapping", q.ID)
		return
	}

	choices := make([]components.Choice, 0, len(m))
	for _, dk := range m.DisplayKeys() {
		choices = append(choices, components.Choice{
			Key:  dk,
			Text: q.Options[m[dk]],
		})
	}

	answered, _ := sess.Answer(q.ID)
	s.choices = components.NewChoiceList(choices, answered)
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()
	case submittedMsg:
		return s.handleSubmitted(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExamScreen) handleTick() (screen.Screen, tea.Cmd) {
	sess := s.eng.Active()
	if sess == nil {
		return s, nil
	}
	if engine.Expired(sess, time.Now()) {
		return s, s.submitExpired()
	}
	return s, tickCmd()
}

func (s *ExamScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if msg.Completed == nil {
		// Raced with another submit path; nothing left to show.
		return s, popHome()
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: results.New(s.eng, msg.Completed)}
	}
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	sess := s.eng.Active()
	if sess == nil {
		return s, popHome()
	}

	key := msg.String()

	if s.errMsg != "" {
		s.errMsg = ""
		return s, nil
	}

	if s.confirmSubmit {
		switch key {
		case "y", "Y", "enter":
			s.confirmSubmit = false
			return s, s.submit()
		case "n", "N", "esc":
			s.confirmSubmit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		// Back to home with the session still live; autosave covers it.
		return s, popHome()
	case "left", "h":
		if s.idx > 0 {
			s.idx--
			s.loadQuestion()
		}
		return s, nil
	case "right", "l":
		if s.idx < len(sess.QuestionSet)-1 {
			s.idx++
			s.loadQuestion()
		}
		return s, nil
	case "u":
		s.jumpToUnanswered(sess)
		return s, nil
	case "f":
		s.eng.ToggleFlag(sess.QuestionSet[s.idx].ID)
		return s, nil
	case "s":
		s.confirmSubmit = true
		return s, nil
	}

	// Everything else drives the answer selector.
	var chosen string
	s.choices, chosen = s.choices.Update(msg)
	if chosen != "" {
		s.eng.UpdateAnswer(sess.QuestionSet[s.idx].ID, chosen)
	}
	return s, nil
}

// jumpToUnanswered moves the cursor to the next unanswered question after
// the current one, wrapping around.
func (s *ExamScreen) jumpToUnanswered(sess *session.Session) {
	n := len(sess.QuestionSet)
	for off := 1; off <= n; off++ {
		i := (s.idx + off) % n
		if _, answered := sess.Answer(sess.QuestionSet[i].ID); !answered {
			s.idx = i
			s.loadQuestion()
			return
		}
	}
}

func (s *ExamScreen) submit() tea.Cmd {
	eng := s.eng
	return func() tea.Msg {
		cs, err := eng.Submit(context.Background())
		return submittedMsg{Completed: cs, Err: err}
	}
}

func (s *ExamScreen) submitExpired() tea.Cmd {
	eng := s.eng
	return func() tea.Msg {
		cs, err := eng.SubmitIfExpired(context.Background())
		return submittedMsg{Completed: cs, Err: err}
	}
}

func popHome() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return router.RefreshMsg{} },
	)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
