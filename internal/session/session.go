// Package session implements the exam session engine: question selection,
// per-question choice randomization, answer tracking, and scoring.
package session

import (
	"errors"
	"time"

	"github.com/abhisek/examsim/internal/bank"
)

// ErrIntegrity marks fatal data-integrity failures: a correct answer missing
// from its own options, or a choice mapping that is not a total bijection.
// These are never tolerated silently; scoring fails rather than guessing.
var ErrIntegrity = errors.New("data integrity error")

// Mode distinguishes the two session kinds.
type Mode string

const (
	ModeExam     Mode = "exam"
	ModePractice Mode = "practice"
)

// DifficultyAll selects every difficulty in practice settings.
const DifficultyAll = "All"

// PracticeSettings configures a practice session. Difficulty is one of the
// three bank levels or DifficultyAll.
type PracticeSettings struct {
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}

// Session is a live exam or practice run. It is owned exclusively by the
// engine while active and mutated only through engine commands. The question
// set and choice mappings are fixed at creation; only answers and flags
// change afterwards.
type Session struct {
	// ID is the unique record id for this session.
	ID string `json:"sessionId"`

	// Mode is exam or practice.
	Mode Mode `json:"mode"`

	// Settings is nil for exam sessions.
	Settings *PracticeSettings `json:"settings"`

	// StartTime is the creation timestamp in Unix milliseconds.
	StartTime int64 `json:"startTime"`

	// QuestionSet is the ordered, fixed sequence of questions.
	QuestionSet []bank.Question `json:"questionSet"`

	// ChoiceMappings holds one mapping per question, keyed by question id.
	ChoiceMappings map[string]ChoiceMapping `json:"choiceMappings"`

	// Answers maps question id to the display key the user chose. An absent
	// key means unanswered.
	Answers map[string]string `json:"answers"`

	// Flagged is the set of question ids marked for review.
	Flagged map[string]bool `json:"flagged"`
}

// Breakdown tallies correct/total per difficulty.
type Breakdown map[bank.Difficulty]DifficultyScore

// DifficultyScore is one breakdown entry.
type DifficultyScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// CompletedSession is the scored, immutable result of a submitted session.
// Only the scorer creates these.
type CompletedSession struct {
	Session

	// EndTime is the submission timestamp in Unix milliseconds.
	EndTime int64 `json:"endTime"`

	// Score is the number of correct answers.
	Score int `json:"score"`

	// TotalQuestions is the size of the question set.
	TotalQuestions int `json:"totalQuestions"`

	// Breakdown holds per-difficulty tallies; all three levels are keyed.
	Breakdown Breakdown `json:"breakdown"`
}

// Mapping returns the choice mapping for question id, or nil.
func (s *Session) Mapping(questionID string) ChoiceMapping {
	return s.ChoiceMappings[questionID]
}

// Answer returns the user's display-key answer for question id, if any.
func (s *Session) Answer(questionID string) (string, bool) {
	a, ok := s.Answers[questionID]
	return a, ok
}

// AnsweredCount returns the number of answered questions.
func (s *Session) AnsweredCount() int {
	return len(s.Answers)
}

// IsFlagged reports whether question id is flagged for review.
func (s *Session) IsFlagged(questionID string) bool {
	return s.Flagged[questionID]
}

// StartedAt returns the creation time as a time.Time.
func (s *Session) StartedAt() time.Time {
	return time.UnixMilli(s.StartTime)
}

// EndedAt returns the submission time as a time.Time.
func (c *CompletedSession) EndedAt() time.Time {
	return time.UnixMilli(c.EndTime)
}

// Duration returns the elapsed time between start and submission.
func (c *CompletedSession) Duration() time.Duration {
	return c.EndedAt().Sub(c.StartedAt())
}

// Percentage returns the score as a percentage of the question count.
func (c *CompletedSession) Percentage() float64 {
	if c.TotalQuestions == 0 {
		return 0
	}
	return float64(c.Score) / float64(c.TotalQuestions) * 100
}

// Validate checks the session's internal consistency: non-empty question
// set, and answers/mappings/flags that only reference questions in the set.
// Restore uses this to reject corrupt persisted records.
func (s *Session) Validate() error {
	if s.Mode != ModeExam && s.Mode != ModePractice {
		return errors.New("unknown session mode")
	}
	if len(s.QuestionSet) == 0 {
		return errors.New("empty question set")
	}
	ids := make(map[string]*bank.Question, len(s.QuestionSet))
	for i := range s.QuestionSet {
		q := &s.QuestionSet[i]
		if err := q.Validate(); err != nil {
			return err
		}
		ids[q.ID] = q
	}
	if len(s.ChoiceMappings) != len(s.QuestionSet) {
		return errors.New("choice mappings do not cover the question set")
	}
	for id, m := range s.ChoiceMappings {
		q, ok := ids[id]
		if !ok {
			return errors.New("choice mapping for unknown question " + id)
		}
		if err := m.Validate(q); err != nil {
			return err
		}
	}
	for id, a := range s.Answers {
		q, ok := ids[id]
		if !ok {
			return errors.New("answer for unknown question " + id)
		}
		if _, ok := s.ChoiceMappings[q.ID][a]; !ok {
			return errors.New("answer " + a + " is not a display key of question " + id)
		}
	}
	for id := range s.Flagged {
		if _, ok := ids[id]; !ok {
			return errors.New("flag for unknown question " + id)
		}
	}
	return nil
}
