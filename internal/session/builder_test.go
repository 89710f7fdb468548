package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/examsim/internal/bank"
)

// testBank builds a bank with the given number of questions per difficulty.
func testBank(t *testing.T, easy, medium, hard int) *bank.Bank {
	t.Helper()
	var questions []bank.Question
	add := func(d bank.Difficulty, n int) {
		for i := 0; i < n; i++ {
			questions = append(questions, testQuestion(fmt.Sprintf("%s-%d", d, i), d))
		}
	}
	add(bank.Easy, easy)
	add(bank.Medium, medium)
	add(bank.Hard, hard)

	b, err := bank.New(questions)
	if err != nil {
		t.Fatalf("test bank: %v", err)
	}
	return b
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func countByDifficulty(s *Session) map[bank.Difficulty]int {
	counts := make(map[bank.Difficulty]int)
	for _, q := range s.QuestionSet {
		counts[q.Difficulty]++
	}
	return counts
}

func TestExam_FullBankComposition(t *testing.T) {
	qb := testBank(t, 40, 60, 90)
	b := NewBuilder(NewRand(21, 22), fixedNow)

	s, err := b.Exam(qb)
	if err != nil {
		t.Fatalf("exam: %v", err)
	}

	if len(s.QuestionSet) != 165 {
		t.Errorf("question count = %d, want 165", len(s.QuestionSet))
	}
	counts := countByDifficulty(s)
	if counts[bank.Easy] != ExamEasyCount {
		t.Errorf("easy = %d, want %d", counts[bank.Easy], ExamEasyCount)
	}
	if counts[bank.Medium] != ExamMediumCount {
		t.Errorf("medium = %d, want %d", counts[bank.Medium], ExamMediumCount)
	}
	if counts[bank.Hard] != ExamHardCount {
		t.Errorf("hard = %d, want %d", counts[bank.Hard], ExamHardCount)
	}

	if s.Mode != ModeExam {
		t.Errorf("mode = %q, want exam", s.Mode)
	}
	if s.Settings != nil {
		t.Error("exam session must have nil settings")
	}
	if s.StartTime != fixedNow().UnixMilli() {
		t.Errorf("startTime = %d, want %d", s.StartTime, fixedNow().UnixMilli())
	}
	if s.ID == "" {
		t.Error("expected a session id")
	}
}

func TestExam_ShortBankDegrades(t *testing.T) {
	// Fewer questions than the draw sizes: the exam shrinks, no error.
	qb := testBank(t, 5, 10, 20)
	b := NewBuilder(NewRand(23, 24), fixedNow)

	s, err := b.Exam(qb)
	if err != nil {
		t.Fatalf("exam: %v", err)
	}

	counts := countByDifficulty(s)
	if counts[bank.Easy] != 5 || counts[bank.Medium] != 10 || counts[bank.Hard] != 20 {
		t.Errorf("counts = %v, want 5/10/20", counts)
	}
	if len(s.QuestionSet) != 35 {
		t.Errorf("question count = %d, want 35", len(s.QuestionSet))
	}
}

func TestExam_NoDuplicates(t *testing.T) {
	qb := testBank(t, 40, 60, 90)
	b := NewBuilder(NewRand(25, 26), fixedNow)

	s, err := b.Exam(qb)
	if err != nil {
		t.Fatalf("exam: %v", err)
	}

	seen := make(map[string]bool)
	for _, q := range s.QuestionSet {
		if seen[q.ID] {
			t.Fatalf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestExam_EmptyBank(t *testing.T) {
	qb := testBank(t, 0, 0, 0)
	b := NewBuilder(NewRand(27, 28), fixedNow)

	_, err := b.Exam(qb)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestExam_MappingsCoverEveryQuestion(t *testing.T) {
	qb := testBank(t, 10, 10, 10)
	b := NewBuilder(NewRand(29, 30), fixedNow)

	s, err := b.Exam(qb)
	if err != nil {
		t.Fatalf("exam: %v", err)
	}

	if len(s.ChoiceMappings) != len(s.QuestionSet) {
		t.Fatalf("mappings = %d, want %d", len(s.ChoiceMappings), len(s.QuestionSet))
	}
	for i := range s.QuestionSet {
		q := &s.QuestionSet[i]
		m := s.Mapping(q.ID)
		if m == nil {
			t.Fatalf("question %s has no mapping", q.ID)
		}
		if err := m.Validate(q); err != nil {
			t.Errorf("question %s: %v", q.ID, err)
		}
	}
	if len(s.Answers) != 0 || len(s.Flagged) != 0 {
		t.Error("new session must start with empty answers and flags")
	}
}

func TestPractice_SizingClampsToPool(t *testing.T) {
	qb := testBank(t, 10, 40, 10)
	b := NewBuilder(NewRand(31, 32), fixedNow)

	s, err := b.Practice(qb, PracticeSettings{Difficulty: "Medium", QuestionCount: 500})
	if err != nil {
		t.Fatalf("practice: %v", err)
	}

	if len(s.QuestionSet) != 40 {
		t.Errorf("question count = %d, want 40", len(s.QuestionSet))
	}
	for _, q := range s.QuestionSet {
		if q.Difficulty != bank.Medium {
			t.Errorf("question %s difficulty = %q, want Medium", q.ID, q.Difficulty)
		}
	}
	if s.Mode != ModePractice {
		t.Errorf("mode = %q, want practice", s.Mode)
	}
	if s.Settings == nil || s.Settings.QuestionCount != 500 || s.Settings.Difficulty != "Medium" {
		t.Errorf("settings = %+v, want requested settings preserved", s.Settings)
	}
}

func TestPractice_AllDifficulties(t *testing.T) {
	qb := testBank(t, 5, 5, 5)
	b := NewBuilder(NewRand(33, 34), fixedNow)

	s, err := b.Practice(qb, PracticeSettings{Difficulty: DifficultyAll, QuestionCount: 12})
	if err != nil {
		t.Fatalf("practice: %v", err)
	}
	if len(s.QuestionSet) != 12 {
		t.Errorf("question count = %d, want 12", len(s.QuestionSet))
	}
}

func TestPractice_UnknownDifficulty(t *testing.T) {
	qb := testBank(t, 5, 5, 5)
	b := NewBuilder(NewRand(35, 36), fixedNow)

	if _, err := b.Practice(qb, PracticeSettings{Difficulty: "Extreme", QuestionCount: 5}); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestPractice_EmptyPool(t *testing.T) {
	qb := testBank(t, 5, 0, 5)
	b := NewBuilder(NewRand(37, 38), fixedNow)

	_, err := b.Practice(qb, PracticeSettings{Difficulty: "Medium", QuestionCount: 10})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}
