package store

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/examsim/internal/bank"
	"github.com/abhisek/examsim/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSession(t *testing.T) *session.Session {
	t.Helper()
	var questions []bank.Question
	for i := 0; i < 6; i++ {
		questions = append(questions, bank.Question{
			ID:            fmt.Sprintf("q-%d", i),
			BokReference:  "4.1 Identity",
			Difficulty:    bank.Difficulties[i%3],
			QuestionText:  "?",
			Options:       map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
			CorrectAnswer: "A",
			Solution:      bank.Solution{CorrectRationale: "r"},
		})
	}
	qb, err := bank.New(questions)
	if err != nil {
		t.Fatalf("test bank: %v", err)
	}
	now := func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	s, err := session.NewBuilder(session.NewRand(81, 82), now).Exam(qb)
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases, so
		// journal_mode is only meaningful against file-backed DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestActiveSession_SaveLoadRoundTrip(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	// Absent before any save.
	got, err := repo.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if got != nil {
		t.Fatal("expected nil session before save")
	}

	s := testSession(t)
	s.Answers[s.QuestionSet[0].ID] = s.Mapping(s.QuestionSet[0].ID).DisplayKeys()[0]
	s.Flagged[s.QuestionSet[1].ID] = true

	if err := repo.SaveActive(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = repo.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored session")
	}
	if !reflect.DeepEqual(s, got) {
		t.Error("loaded session differs from saved one")
	}
}

func TestActiveSession_SaveOverwritesSingleton(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	first := testSession(t)
	second := testSession(t)
	if err := repo.SaveActive(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := repo.SaveActive(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := repo.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("loaded session %s, want %s", got.ID, second.ID)
	}

	var count int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM current_session`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("current_session rows = %d, want 1", count)
	}
}

func TestActiveSession_CorruptRecordReadsAsAbsent(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	_, err := repo.db.Exec(
		`INSERT INTO current_session (id, data) VALUES (1, '{"mode": "exam"')`)
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	got, err := repo.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatal("corrupt record must read as absent")
	}

	// And the bad row must be gone.
	var count int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM current_session`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Error("corrupt record must be discarded")
	}
}

func TestActiveSession_InvalidSessionDiscarded(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	// Valid JSON, but fails session validation (empty question set).
	_, err := repo.db.Exec(
		`INSERT INTO current_session (id, data) VALUES (1, '{"mode":"exam","questionSet":[]}')`)
	if err != nil {
		t.Fatalf("insert row: %v", err)
	}

	got, err := repo.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatal("invalid session must read as absent")
	}
}

func TestCompletedSessions_AppendAndList(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	now := func() time.Time { return time.Date(2026, 3, 14, 9, 40, 0, 0, time.UTC) }
	var ids []string
	for i := 0; i < 3; i++ {
		cs, err := session.Score(testSession(t), now)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		if err := repo.AppendCompleted(ctx, cs); err != nil {
			t.Fatalf("append: %v", err)
		}
		ids = append(ids, cs.ID)
	}

	list, err := repo.ListCompleted(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("history entries = %d, want 3", len(list))
	}
	for i, cs := range list {
		if cs.ID != ids[i] {
			t.Errorf("entry %d = %s, want %s (append order)", i, cs.ID, ids[i])
		}
		if cs.EndTime < cs.StartTime {
			t.Errorf("entry %d: endTime before startTime", i)
		}
	}

	n, err := repo.CountCompleted(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestReset_DropsEverything(t *testing.T) {
	repo := openTestStore(t).SessionRepo()
	ctx := context.Background()

	if err := repo.SaveActive(ctx, testSession(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	cs, err := session.Score(testSession(t), nil)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if err := repo.AppendCompleted(ctx, cs); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got, _ := repo.LoadActive(ctx); got != nil {
		t.Error("active session survived reset")
	}
	if n, _ := repo.CountCompleted(ctx); n != 0 {
		t.Errorf("history entries after reset = %d, want 0", n)
	}
}
