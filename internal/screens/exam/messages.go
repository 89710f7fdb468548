package exam

import (
	"time"

	"github.com/abhisek/examsim/internal/session"
)

// timerTickMsg is sent every second to refresh the countdown and check the
// deadline.
type timerTickMsg time.Time

// submittedMsg is sent when the session has been scored, whether by manual
// submission or timer expiry.
type submittedMsg struct {
	Completed *session.CompletedSession
	Err       error
}
