// Package report renders a completed session as a plain-text examination
// report. Generation is a pure function of the completed session, so the
// same report can be re-derived at any time from the history log.
package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/examsim/internal/bank"
	"github.com/abhisek/examsim/internal/session"
)

const divider = "─────────────────────────────────────────────────────────"

// SessionID derives the human-readable report id from the session start
// time, e.g. "ES-2026-03-14-930".
func SessionID(cs *session.CompletedSession) string {
	start := cs.StartedAt()
	return fmt.Sprintf("ES-%s-%d%02d",
		start.Format("2006-01-02"), start.Hour(), start.Minute())
}

// Generate renders the full text report for cs. It fails only on
// data-integrity errors in the session's choice mappings.
func Generate(cs *session.CompletedSession) (string, error) {
	var b strings.Builder

	mode := string(cs.Mode)
	if len(mode) > 0 {
		mode = strings.ToUpper(mode[:1]) + mode[1:]
	}

	durationSecs := int(cs.Duration().Seconds())
	durationStr := fmt.Sprintf("%d minutes %d seconds", durationSecs/60, durationSecs%60)

	fmt.Fprintf(&b, "EXAMINATION REPORT\n")
	fmt.Fprintf(&b, "══════════════════\n")
	fmt.Fprintf(&b, "Session ID: %s\n", SessionID(cs))
	fmt.Fprintf(&b, "Mode: %s\n", mode)
	fmt.Fprintf(&b, "Date: %s\n", cs.StartedAt().Format("Jan 2, 2006 3:04:05 PM"))
	fmt.Fprintf(&b, "Duration: %s\n", durationStr)
	fmt.Fprintf(&b, "Total Questions: %d\n", cs.TotalQuestions)
	fmt.Fprintf(&b, "Questions Attempted: %d\n", cs.AnsweredCount())
	fmt.Fprintf(&b, "Score: %d/%d (%.1f%%)\n", cs.Score, cs.TotalQuestions, cs.Percentage())
	fmt.Fprintf(&b, "\nDIFFICULTY BREAKDOWN:\n")

	for _, d := range bank.Difficulties {
		entry := cs.Breakdown[d]
		if entry.Total == 0 {
			continue
		}
		pct := float64(entry.Correct) / float64(entry.Total) * 100
		fmt.Fprintf(&b, "%s: %d/%d (%.1f%%)\n", d, entry.Correct, entry.Total, pct)
	}

	fmt.Fprintf(&b, "\nQUESTION DETAILS:\n")
	fmt.Fprintf(&b, "%s\n", divider)

	for i := range cs.QuestionSet {
		q := &cs.QuestionSet[i]
		m := cs.Mapping(q.ID)
		if m == nil {
			return "", fmt.Errorf("%w: question %s has no choice mapping", session.ErrIntegrity, q.ID)
		}
		correctDisplay, err := m.DisplayKeyFor(q.CorrectAnswer)
		if err != nil {
			return "", fmt.Errorf("question %s: %w", q.ID, err)
		}

		userKey, answered := cs.Answer(q.ID)
		isCorrect := answered && userKey == correctDisplay

		status := "Incorrect"
		if isCorrect {
			status = "Correct"
		}

		userAnswerLabel := "Not Answered"
		userAnswerText := ""
		if answered {
			userAnswerLabel = userKey
			userAnswerText = q.Options[m[userKey]]
		}

		fmt.Fprintf(&b, "%d. QID: %s | Difficulty: %s | Status: %s\n", i+1, q.ID, q.Difficulty, status)
		fmt.Fprintf(&b, "Question: %s\n", q.QuestionText)
		fmt.Fprintf(&b, "Your Answer: %s) %s\n", userAnswerLabel, userAnswerText)
		fmt.Fprintf(&b, "Correct Answer: %s) %s\n", correctDisplay, q.Options[q.CorrectAnswer])
		fmt.Fprintf(&b, "Rationale: %s\n", q.Solution.CorrectRationale)
		fmt.Fprintf(&b, "%s\n", divider)
	}

	return strings.TrimSpace(b.String()), nil
}
