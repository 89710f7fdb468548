package bank

import (
	"testing"
)

const goodBankJSON = `[
  {
    "id": "gov-001",
    "bok_reference": "1.1 Risk",
    "difficulty": "Easy",
    "question_text": "What does RTO measure?",
    "options": {"A": "Recovery time", "B": "Data loss", "C": "Cost", "D": "Risk appetite"},
    "correct_answer": "A",
    "solution": {
      "correct_rationale": "RTO is the target time to restore service.",
      "distractor_analysis": "B describes RPO."
    }
  },
  {
    "id": "gov-002",
    "bok_reference": "1.2 Controls",
    "difficulty": "Hard",
    "question_text": "Which framework maps controls to maturity levels?",
    "options": {"A": "ISO 31000", "B": "CMMI", "C": "NIST CSF", "D": "COBIT"},
    "correct_answer": "D",
    "solution": {"correct_rationale": "COBIT defines maturity models."}
  }
]`

func TestParse_ValidBank(t *testing.T) {
	b, err := Parse([]byte(goodBankJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("len = %d, want 2", b.Len())
	}
	q := b.Get("gov-002")
	if q == nil {
		t.Fatal("expected gov-002")
	}
	if q.Difficulty != Hard {
		t.Errorf("difficulty = %q, want Hard", q.Difficulty)
	}
	if q.Solution.CorrectRationale == "" {
		t.Error("expected rationale to survive decoding")
	}
}

func TestParse_RejectsMissingFields(t *testing.T) {
	raw := `[{"id": "x", "difficulty": "Easy", "question_text": "q?"}]`
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestParse_RejectsBadDifficulty(t *testing.T) {
	raw := `[{
      "id": "x", "bok_reference": "", "difficulty": "Extreme",
      "question_text": "q?",
      "options": {"A": "a", "B": "b"},
      "correct_answer": "A",
      "solution": {"correct_rationale": "r"}
    }]`
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatal("expected schema validation error for difficulty enum")
	}
}

func TestParse_RejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Fatal("expected JSON error")
	}
}

func TestParse_RejectsCorrectAnswerOutsideOptions(t *testing.T) {
	raw := `[{
      "id": "x", "bok_reference": "", "difficulty": "Easy",
      "question_text": "q?",
      "options": {"A": "a", "B": "b"},
      "correct_answer": "C",
      "solution": {"correct_rationale": "r"}
    }]`
	// Passes the schema but fails structural validation.
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatal("expected integrity error for correct_answer outside options")
	}
}
