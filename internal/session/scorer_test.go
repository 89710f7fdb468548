package session

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/examsim/internal/bank"
)

func scoredNow() time.Time {
	return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}

func TestScore_AllCorrectRoundTrip(t *testing.T) {
	// Answer every question with its own randomized-correct display key;
	// the score must equal the question count and every breakdown level must
	// be fully correct.
	qb := testBank(t, 8, 8, 8)
	b := NewBuilder(NewRand(41, 42), fixedNow)
	s, err := b.Exam(qb)
	if err != nil {
		t.Fatalf("exam: %v", err)
	}

	for i := range s.QuestionSet {
		q := &s.QuestionSet[i]
		d, err := s.Mapping(q.ID).DisplayKeyFor(q.CorrectAnswer)
		if err != nil {
			t.Fatalf("display key for %s: %v", q.ID, err)
		}
		s.Answers[q.ID] = d
	}

	cs, err := Score(s, scoredNow)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	if cs.Score != cs.TotalQuestions {
		t.Errorf("score = %d, want %d", cs.Score, cs.TotalQuestions)
	}
	for d, entry := range cs.Breakdown {
		if entry.Correct != entry.Total {
			t.Errorf("%s: correct = %d, total = %d", d, entry.Correct, entry.Total)
		}
	}
	if cs.EndTime != scoredNow().UnixMilli() {
		t.Errorf("endTime = %d, want %d", cs.EndTime, scoredNow().UnixMilli())
	}
	if cs.EndTime < cs.StartTime {
		t.Error("endTime before startTime")
	}
}

func TestScore_UnansweredNeverCorrect(t *testing.T) {
	qb := testBank(t, 4, 0, 0)
	b := NewBuilder(NewRand(43, 44), fixedNow)
	s, err := b.Practice(qb, PracticeSettings{Difficulty: DifficultyAll, QuestionCount: 4})
	if err != nil {
		t.Fatalf("practice: %v", err)
	}

	cs, err := Score(s, scoredNow)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if cs.Score != 0 {
		t.Errorf("score = %d, want 0", cs.Score)
	}
	if cs.Breakdown[bank.Easy].Total != 4 {
		t.Errorf("easy total = %d, want 4", cs.Breakdown[bank.Easy].Total)
	}
}

func TestScore_BreakdownTotalsSumToQuestionCount(t *testing.T) {
	qb := testBank(t, 3, 5, 7)
	b := NewBuilder(NewRand(45, 46), fixedNow)
	s, err := b.Exam(qb)
	if err != nil {
		t.Fatalf("exam: %v", err)
	}

	cs, err := Score(s, scoredNow)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	sum := 0
	for _, entry := range cs.Breakdown {
		sum += entry.Total
	}
	if sum != cs.TotalQuestions {
		t.Errorf("breakdown totals sum = %d, want %d", sum, cs.TotalQuestions)
	}
	if len(cs.Breakdown) != 3 {
		t.Errorf("breakdown has %d levels, want all 3 keyed", len(cs.Breakdown))
	}
}

// TestScore_TwoOptionExample mirrors a minimal hand-checked case: one Easy
// question with options A/B, correct answer A, mapping 1→A and 2→B. Answering
// "1" is correct; "2" or no answer is not.
func TestScore_TwoOptionExample(t *testing.T) {
	q := bank.Question{
		ID:            "Q1",
		Difficulty:    bank.Easy,
		QuestionText:  "?",
		Options:       map[string]string{"A": "x", "B": "y"},
		CorrectAnswer: "A",
		Solution:      bank.Solution{CorrectRationale: "r"},
	}
	base := func() *Session {
		return &Session{
			ID:          "s1",
			Mode:        ModePractice,
			Settings:    &PracticeSettings{Difficulty: "Easy", QuestionCount: 1},
			StartTime:   fixedNow().UnixMilli(),
			QuestionSet: []bank.Question{q},
			ChoiceMappings: map[string]ChoiceMapping{
				"Q1": {"1": "A", "2": "B"},
			},
			Answers: make(map[string]string),
			Flagged: make(map[string]bool),
		}
	}

	cases := []struct {
		name   string
		answer string
		want   int
	}{
		{"correct display key", "1", 1},
		{"wrong display key", "2", 0},
		{"unanswered", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			if tc.answer != "" {
				s.Answers["Q1"] = tc.answer
			}
			cs, err := Score(s, scoredNow)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if cs.Score != tc.want {
				t.Errorf("score = %d, want %d", cs.Score, tc.want)
			}
		})
	}
}

func TestScore_MalformedMappingFailsFast(t *testing.T) {
	q := testQuestion("q1", bank.Medium)
	s := &Session{
		ID:          "s1",
		Mode:        ModeExam,
		StartTime:   fixedNow().UnixMilli(),
		QuestionSet: []bank.Question{q},
		ChoiceMappings: map[string]ChoiceMapping{
			// "B" (the correct answer) never appears as a value.
			"q1": {"A": "A", "B": "C", "C": "C", "D": "D"},
		},
		Answers: map[string]string{"q1": "A"},
		Flagged: make(map[string]bool),
	}

	_, err := Score(s, scoredNow)
	if err == nil {
		t.Fatal("expected integrity error")
	}
	if !errors.Is(err, ErrIntegrity) {
		t.Errorf("error = %v, want ErrIntegrity", err)
	}
}

func TestScore_MissingMappingFailsFast(t *testing.T) {
	q := testQuestion("q1", bank.Medium)
	s := &Session{
		ID:             "s1",
		Mode:           ModeExam,
		StartTime:      fixedNow().UnixMilli(),
		QuestionSet:    []bank.Question{q},
		ChoiceMappings: map[string]ChoiceMapping{},
		Answers:        make(map[string]string),
		Flagged:        make(map[string]bool),
	}

	if _, err := Score(s, scoredNow); !errors.Is(err, ErrIntegrity) {
		t.Fatalf("err = %v, want ErrIntegrity", err)
	}
}
