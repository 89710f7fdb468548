package engine

import (
	"context"
	"time"

	"github.com/abhisek/examsim/internal/session"
)

// ExamDuration is the fixed wall-clock budget of an exam session, measured
// from the session's start time. Practice sessions have no deadline.
const ExamDuration = 40 * time.Minute

// Deadline returns the forced-submission time for s. ok is false for
// practice sessions, which never expire.
func Deadline(s *session.Session) (deadline time.Time, ok bool) {
	if s == nil || s.Mode != session.ModeExam {
		return time.Time{}, false
	}
	return s.StartedAt().Add(ExamDuration), true
}

// Remaining returns the time left before forced submission, floored at zero.
// ok is false when s has no deadline.
func Remaining(s *session.Session, now time.Time) (left time.Duration, ok bool) {
	deadline, ok := Deadline(s)
	if !ok {
		return 0, false
	}
	left = deadline.Sub(now)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Expired reports whether s has run out of time.
func Expired(s *session.Session, now time.Time) bool {
	left, ok := Remaining(s, now)
	return ok && left == 0
}

// Remaining returns the active session's time budget at now. ok is false
// when nothing is active or the session has no deadline.
func (e *Engine) Remaining(now time.Time) (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Remaining(e.sess, now)
}

// SubmitIfExpired performs the ordinary submit transition when the active
// exam session's deadline has passed. It returns the completed session when
// the transition fired, nil otherwise. Automatic and manual submission are
// the same transition; there is no distinct expired state.
func (e *Engine) SubmitIfExpired(ctx context.Context) (*session.CompletedSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !Expired(e.sess, e.now()) {
		return nil, nil
	}
	return e.submitLocked(ctx)
}
