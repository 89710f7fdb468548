package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/ui/theme"
)

// Choice is one answer option as presented: a display key and its text.
type Choice struct {
	Key  string
	Text string
}

// ChoiceList is the answer selector for a live question. Unlike a graded
// selector it never reveals correctness; it only tracks the cursor and the
// key the user has locked in.
type ChoiceList struct {
	Choices []Choice
	Cursor  int

	// AnsweredKey is the display key currently recorded for this question,
	// or empty if unanswered.
	AnsweredKey string
}

// NewChoiceList creates a selector over the given choices, with the cursor
// on the recorded answer if there is one.
func NewChoiceList(choices []Choice, answeredKey string) ChoiceList {
	cursor := 0
	for i, c := range choices {
		if c.Key == answeredKey {
			cursor = i
			break
		}
	}
	return ChoiceList{
		Choices:     choices,
		Cursor:      cursor,
		AnsweredKey: answeredKey,
	}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and direct key selection. It returns the
// display key chosen this update, or empty if none.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, string) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, ""
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Choices)-1 {
			c.Cursor++
		}
	case "enter", "space", " ":
		if c.Cursor >= 0 && c.Cursor < len(c.Choices) {
			c.AnsweredKey = c.Choices[c.Cursor].Key
			return c, c.AnsweredKey
		}
	default:
		// Typing an option's key selects it directly.
		for i, choice := range c.Choices {
			if key == choice.Key || key == lowered(choice.Key) {
				c.Cursor = i
				c.AnsweredKey = choice.Key
				return c, c.AnsweredKey
			}
		}
	}

	return c, ""
}

// View renders the choices with cursor and recorded-answer markers.
func (c ChoiceList) View() string {
	var s string
	for i, choice := range c.Choices {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}

		marker := "( )"
		if choice.Key == c.AnsweredKey {
			marker = "(●)"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, choice.Key, choice.Text)

		switch {
		case i == c.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case choice.Key == c.AnsweredKey:
			s += theme.Answered.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

func lowered(key string) string {
	if len(key) == 1 && key[0] >= 'A' && key[0] <= 'Z' {
		return string(key[0] + 'a' - 'A')
	}
	return key
}
