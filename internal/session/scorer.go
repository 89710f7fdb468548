package session

import (
	"fmt"
	"time"

	"github.com/abhisek/examsim/internal/bank"
)

// Score reduces a submitted session into a CompletedSession. A question is
// correct iff the user's display-key answer equals the display key behind
// the question's canonical correct answer; unanswered never counts. The
// function is pure given its inputs apart from the single clock read.
//
// A malformed mapping or a correct answer missing from its own options
// returns an ErrIntegrity-wrapped error instead of an undefined score.
func Score(s *Session, now func() time.Time) (*CompletedSession, error) {
	if now == nil {
		now = time.Now
	}

	breakdown := Breakdown{
		bank.Easy:   {},
		bank.Medium: {},
		bank.Hard:   {},
	}

	score := 0
	for i := range s.QuestionSet {
		q := &s.QuestionSet[i]

		entry := breakdown[q.Difficulty]
		entry.Total++

		correct, err := questionCorrect(s, q)
		if err != nil {
			return nil, err
		}
		if correct {
			entry.Correct++
			score++
		}
		breakdown[q.Difficulty] = entry
	}

	return &CompletedSession{
		Session:        *s,
		EndTime:        now().UnixMilli(),
		Score:          score,
		TotalQuestions: len(s.QuestionSet),
		Breakdown:      breakdown,
	}, nil
}

// questionCorrect resolves the randomized correct display key for q and
// compares it against the user's answer.
func questionCorrect(s *Session, q *bank.Question) (bool, error) {
	m := s.Mapping(q.ID)
	if m == nil {
		return false, fmt.Errorf("%w: question %s has no choice mapping", ErrIntegrity, q.ID)
	}
	correctDisplay, err := m.DisplayKeyFor(q.CorrectAnswer)
	if err != nil {
		return false, fmt.Errorf("question %s: %w", q.ID, err)
	}
	answer, answered := s.Answer(q.ID)
	return answered && answer == correctDisplay, nil
}
