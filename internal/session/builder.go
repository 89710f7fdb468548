package session

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examsim/internal/bank"
)

// Exam draw sizes per difficulty. The bank may hold fewer of a level; the
// draw then simply shrinks, it never errors.
const (
	ExamEasyCount   = 33
	ExamMediumCount = 50
	ExamHardCount   = 82
)

// ErrNoQuestions is returned when a build would produce an empty session.
var ErrNoQuestions = errors.New("no questions available")

// Builder assembles new sessions from a question bank. The random source and
// clock are injected so tests can reproduce orderings and timestamps.
type Builder struct {
	rng *rand.Rand
	now func() time.Time
}

// NewBuilder creates a Builder. A nil now defaults to time.Now.
func NewBuilder(rng *rand.Rand, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{rng: rng, now: now}
}

// Exam builds a full exam session: an independent without-replacement draw of
// up to 33 Easy, 50 Medium, and 82 Hard questions, with the combined set
// order shuffled again.
func (b *Builder) Exam(qb *bank.Bank) (*Session, error) {
	easy := b.draw(qb.ByDifficulty(bank.Easy), ExamEasyCount)
	medium := b.draw(qb.ByDifficulty(bank.Medium), ExamMediumCount)
	hard := b.draw(qb.ByDifficulty(bank.Hard), ExamHardCount)

	combined := make([]bank.Question, 0, len(easy)+len(medium)+len(hard))
	combined = append(combined, easy...)
	combined = append(combined, medium...)
	combined = append(combined, hard...)

	return b.assemble(ModeExam, nil, Shuffle(b.rng, combined))
}

// Practice builds a practice session over the difficulty-filtered pool,
// sized to min(requested, available).
func (b *Builder) Practice(qb *bank.Bank, settings PracticeSettings) (*Session, error) {
	pool := qb.Questions()
	if settings.Difficulty != DifficultyAll {
		d := bank.Difficulty(settings.Difficulty)
		if !d.Valid() {
			return nil, errors.New("unknown practice difficulty " + settings.Difficulty)
		}
		pool = qb.ByDifficulty(d)
	}

	questionSet := b.draw(pool, settings.QuestionCount)
	s := settings
	return b.assemble(ModePractice, &s, questionSet)
}

// draw shuffles pool and takes the first n questions (fewer if the pool is
// smaller).
func (b *Builder) draw(pool []bank.Question, n int) []bank.Question {
	shuffled := Shuffle(b.rng, pool)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	if n < 0 {
		n = 0
	}
	return shuffled[:n]
}

// assemble finishes a session: one independent choice mapping per question,
// fresh answer/flag state, and a start timestamp.
func (b *Builder) assemble(mode Mode, settings *PracticeSettings, questionSet []bank.Question) (*Session, error) {
	if len(questionSet) == 0 {
		return nil, ErrNoQuestions
	}

	mappings := make(map[string]ChoiceMapping, len(questionSet))
	for i := range questionSet {
		mappings[questionSet[i].ID] = BuildMapping(b.rng, &questionSet[i])
	}

	return &Session{
		ID:             uuid.NewString(),
		Mode:           mode,
		Settings:       settings,
		StartTime:      b.now().UnixMilli(),
		QuestionSet:    questionSet,
		ChoiceMappings: mappings,
		Answers:        make(map[string]string),
		Flagged:        make(map[string]bool),
	}, nil
}
