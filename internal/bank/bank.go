package bank

import (
	"fmt"
	"sort"
)

// Difficulty classifies a question. The bank and all scoring breakdowns use
// exactly these three levels.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists all levels in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// Solution carries the authored explanation for a question.
type Solution struct {
	CorrectRationale   string `json:"correct_rationale"`
	DistractorAnalysis string `json:"distractor_analysis"`
}

// Question is a single bank entry. Questions are immutable once loaded;
// sessions embed copies and never write back.
type Question struct {
	ID            string            `json:"id"`
	BokReference  string            `json:"bok_reference"`
	Difficulty    Difficulty        `json:"difficulty"`
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Solution      Solution          `json:"solution"`
}

// OptionKeys returns the canonical option keys in sorted order. Sorting gives
// a stable authored order ("A" < "B" < ...) since Go maps don't preserve one.
func (q *Question) OptionKeys() []string {
	keys := make([]string, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the structural integrity of a single question.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has empty id")
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("question %s: unknown difficulty %q", q.ID, q.Difficulty)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %s: needs at least 2 options, has %d", q.ID, len(q.Options))
	}
	if _, ok := q.Options[q.CorrectAnswer]; !ok {
		return fmt.Errorf("question %s: correct_answer %q is not an option key", q.ID, q.CorrectAnswer)
	}
	return nil
}

// Bank is a validated, immutable set of questions.
type Bank struct {
	questions []Question
	byID      map[string]*Question
}

// New builds a Bank from questions, rejecting duplicates and invalid entries.
func New(questions []Question) (*Bank, error) {
	b := &Bank{
		questions: questions,
		byID:      make(map[string]*Question, len(questions)),
	}
	for i := range questions {
		q := &questions[i]
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		b.byID[q.ID] = q
	}
	return b, nil
}

// Questions returns all questions. Callers must not mutate the slice.
func (b *Bank) Questions() []Question {
	return b.questions
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// ByDifficulty returns the questions at the given level.
func (b *Bank) ByDifficulty(d Difficulty) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// Get returns the question with the given id, or nil.
func (b *Bank) Get(id string) *Question {
	return b.byID[id]
}
