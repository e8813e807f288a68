package play

import (
	"time"

	sess "github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/spacedrep"
)

// sessionInitMsg is sent when the quota check and plan building finish.
type sessionInitMsg struct {
	State *sess.SessionState
	Err   error

	// Saved lists the words the learner registered before this run.
	Saved []string
}

// tickMsg drives question timeouts, the survival clock and feedback.
type tickMsg time.Time

// reviewLoadedMsg carries the stored review state of the current card.
type reviewLoadedMsg struct {
	CardID string
	Review *spacedrep.ReviewState
}

// wordsRegisteredMsg reports words that could not be saved.
type wordsRegisteredMsg struct {
	Failed []string
}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}
