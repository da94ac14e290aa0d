package domain

import "time"

// Outcome of a journaled step.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// JournalEvent is one lifecycle step recorded in the state directory.
// It never carries secret values.
type JournalEvent struct {
	RunID    string
	Workflow Workflow
	Step     string
	Outcome  Outcome
	Detail   string
	At       time.Time
}
