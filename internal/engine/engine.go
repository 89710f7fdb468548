// Package engine owns the active session lifecycle: the NoSession / Active /
// Completed state machine, debounced durable writes, and restoration of a
// persisted session on start. All transitions run under one mutex in arrival
// order; the only asynchronous edge is the debounced write, which is
// generation-checked so a stale in-flight write can never clobber the record
// of a session that was submitted or cleared in the meantime.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/examsim/internal/session"
)

// DefaultDebounce is the quiet period after the last mutation before the
// active session is written out.
const DefaultDebounce = 1000 * time.Millisecond

// State is the engine's lifecycle state.
type State int

const (
	StateNoSession State = iota
	StateActive
	StateCompleted
)

// Repo is the durable store the engine writes through. SaveActive overwrites
// the single current-session record; AppendCompleted extends the history log.
// LoadActive returns (nil, nil) when no record exists or the stored record is
// corrupt (corrupt records are discarded, not surfaced as errors).
type Repo interface {
	SaveActive(ctx context.Context, s *session.Session) error
	LoadActive(ctx context.Context) (*session.Session, error)
	ClearActive(ctx context.Context) error
	AppendCompleted(ctx context.Context, cs *session.CompletedSession) error
}

// Engine is the session store state machine.
type Engine struct {
	mu       sync.Mutex
	repo     Repo
	sched    WriteScheduler
	now      func() time.Time
	debounce time.Duration

	sess      *session.Session
	completed *session.CompletedSession

	// gen increments whenever the active session ends or is replaced; a
	// debounced write scheduled for an older generation is a no-op.
	gen uint64
}

// New creates an Engine in the NoSession state. A nil clock defaults to
// time.Now.
func New(repo Repo, sched WriteScheduler, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		repo:     repo,
		sched:    sched,
		now:      now,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the quiet period. Zero is valid and means the write
// fires as soon as the scheduler runs it.
func (e *Engine) SetDebounce(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.debounce = d
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.sess != nil:
		return StateActive
	case e.completed != nil:
		return StateCompleted
	default:
		return StateNoSession
	}
}

// Active returns the live session, or nil. The caller must treat it as
// read-only; all mutation goes through engine commands.
func (e *Engine) Active() *session.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess
}

// Completed returns the scored session awaiting Clear, or nil.
func (e *Engine) Completed() *session.CompletedSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed
}

// Restore attempts to load a previously persisted active session. A stored
// record that fails to parse or validate is discarded and leaves the engine
// in NoSession; only unexpected storage errors are returned.
func (e *Engine) Restore(ctx context.Context) error {
	s, err := e.repo.LoadActive(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	if err := s.Validate(); err != nil {
		// Corrupt record: drop it rather than crash restore.
		_ = e.repo.ClearActive(ctx)
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess = s
	e.completed = nil
	return nil
}

// Start installs a freshly built session, replacing whatever was active or
// completed, and schedules its first durable write.
func (e *Engine) Start(s *session.Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.sess = s
	e.completed = nil
	e.scheduleSaveLocked()
}

// UpdateAnswer records the user's display-key choice for a question. It is a
// no-op when there is no active session, the question is not in the set, or
// the key is not a display key of that question's mapping.
func (e *Engine) UpdateAnswer(questionID, displayKey string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return
	}
	m := e.sess.Mapping(questionID)
	if m == nil {
		return
	}
	if _, ok := m[displayKey]; !ok {
		return
	}
	e.sess.Answers[questionID] = displayKey
	e.scheduleSaveLocked()
}

// ToggleFlag flips the review flag on a question: present becomes absent,
// absent becomes present. No-op without an active session or for a question
// outside the set.
func (e *Engine) ToggleFlag(questionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return
	}
	if e.sess.Mapping(questionID) == nil {
		return
	}
	if e.sess.Flagged[questionID] {
		delete(e.sess.Flagged, questionID)
	} else {
		e.sess.Flagged[questionID] = true
	}
	e.scheduleSaveLocked()
}

// Submit scores the active session, replacing it with the completed result.
// The live session is discarded; the active record is removed from storage
// and the completed session appended to the history log. Manual submission
// and timer expiry both land here. Returns (nil, nil) when nothing is
// active.
func (e *Engine) Submit(ctx context.Context) (*session.CompletedSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitLocked(ctx)
}

// submitLocked is Submit's body; callers hold e.mu.
func (e *Engine) submitLocked(ctx context.Context) (*session.CompletedSession, error) {
	if e.sess == nil {
		return nil, nil
	}

	cs, err := session.Score(e.sess, e.now)
	if err != nil {
		return nil, err
	}

	// End the active session before touching storage so any in-flight
	// debounced write of it becomes a no-op.
	e.gen++
	e.sched.Cancel()
	e.sess = nil
	e.completed = cs

	if err := e.repo.ClearActive(ctx); err != nil {
		return cs, err
	}
	if err := e.repo.AppendCompleted(ctx, cs); err != nil {
		return cs, err
	}
	return cs, nil
}

// Clear drops the completed session, returning to NoSession. The history log
// is untouched.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.completed = nil
}

// Flush writes the active session out immediately, bypassing the debounce.
// Used on shutdown so quitting inside the quiet window loses nothing.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil {
		return nil
	}
	e.sched.Cancel()
	return e.repo.SaveActive(ctx, e.sess)
}

// scheduleSaveLocked arms the debounced write for the current session
// generation. Callers hold e.mu.
func (e *Engine) scheduleSaveLocked() {
	gen := e.gen
	e.sched.Schedule(e.debounce, func() {
		e.flush(gen)
	})
}

// flush performs the debounced write if the session that scheduled it is
// still the active one.
func (e *Engine) flush(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil || gen != e.gen {
		return
	}
	_ = e.repo.SaveActive(context.Background(), e.sess)
}
