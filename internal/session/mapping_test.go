package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/examsim/internal/bank"
)

func testQuestion(id string, d bank.Difficulty) bank.Question {
	return bank.Question{
		ID:           id,
		BokReference: "3.1 Operations",
		Difficulty:   d,
		QuestionText: "Pick one.",
		Options: map[string]string{
			"A": "alpha",
			"B": "bravo",
			"C": "charlie",
			"D": "delta",
		},
		CorrectAnswer: "B",
		Solution:      bank.Solution{CorrectRationale: "Because."},
	}
}

func TestBuildMapping_IsBijection(t *testing.T) {
	// Property check over many independent mappings: every mapping must be a
	// total bijection over the question's own option keys.
	rng := NewRand(11, 12)
	for i := 0; i < 200; i++ {
		q := testQuestion(fmt.Sprintf("q%d", i), bank.Easy)
		m := BuildMapping(rng, &q)
		if err := m.Validate(&q); err != nil {
			t.Fatalf("mapping %d not a bijection: %v", i, err)
		}
	}
}

func TestDisplayKeyFor_RoundTrip(t *testing.T) {
	rng := NewRand(13, 14)
	q := testQuestion("q1", bank.Medium)
	m := BuildMapping(rng, &q)

	for _, canonical := range q.OptionKeys() {
		d, err := m.DisplayKeyFor(canonical)
		if err != nil {
			t.Fatalf("display key for %q: %v", canonical, err)
		}
		back, ok := m.Canonical(d)
		if !ok {
			t.Fatalf("display key %q missing from mapping", d)
		}
		if back != canonical {
			t.Errorf("round trip %q -> %q -> %q", canonical, d, back)
		}
	}
}

func TestDisplayKeyFor_MissingIsIntegrityError(t *testing.T) {
	m := ChoiceMapping{"A": "B", "B": "A"}
	_, err := m.DisplayKeyFor("Z")
	if err == nil {
		t.Fatal("expected error for unmapped canonical key")
	}
	if !errors.Is(err, ErrIntegrity) {
		t.Errorf("error = %v, want ErrIntegrity", err)
	}
}

func TestValidate_RejectsPartialMapping(t *testing.T) {
	q := testQuestion("q1", bank.Hard)
	m := ChoiceMapping{"A": "B", "B": "A"} // only 2 of 4 keys
	if err := m.Validate(&q); err == nil {
		t.Fatal("expected error for partial mapping")
	}
}

func TestValidate_RejectsDuplicateTargets(t *testing.T) {
	q := testQuestion("q1", bank.Hard)
	m := ChoiceMapping{"A": "B", "B": "B", "C": "C", "D": "D"}
	err := m.Validate(&q)
	if err == nil {
		t.Fatal("expected error for duplicated canonical target")
	}
	if !errors.Is(err, ErrIntegrity) {
		t.Errorf("error = %v, want ErrIntegrity", err)
	}
}

func TestValidate_RejectsForeignKeys(t *testing.T) {
	q := testQuestion("q1", bank.Easy)
	m := ChoiceMapping{"A": "A", "B": "B", "C": "C", "Z": "D"}
	if err := m.Validate(&q); err == nil {
		t.Fatal("expected error for display key outside the option set")
	}
}

func TestMappings_IndependentAcrossQuestions(t *testing.T) {
	// Two questions built from one source must not share shuffle state in a
	// way that couples their permutations; at minimum each must be valid for
	// its own key set.
	rng := NewRand(15, 16)
	q1 := testQuestion("q1", bank.Easy)
	q2 := bank.Question{
		ID:            "q2",
		Difficulty:    bank.Easy,
		QuestionText:  "Two options only.",
		Options:       map[string]string{"X": "ex", "Y": "why"},
		CorrectAnswer: "Y",
		Solution:      bank.Solution{CorrectRationale: "r"},
	}

	m1 := BuildMapping(rng, &q1)
	m2 := BuildMapping(rng, &q2)

	if err := m1.Validate(&q1); err != nil {
		t.Errorf("m1: %v", err)
	}
	if err := m2.Validate(&q2); err != nil {
		t.Errorf("m2: %v", err)
	}
	if _, ok := m2["A"]; ok {
		t.Error("m2 references q1's keys")
	}
}
