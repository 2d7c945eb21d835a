package verification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"claimguard/internal/claims/models"
	dErrors "claimguard/pkg/domain-errors"
)

// State is a step of one verification cycle.
type State string

const (
	StateIdle       State = "idle"
	StateScoring    State = "scoring"
	StatePersisting State = "persisting"
	StateRefreshing State = "refreshing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// edges lists the legal successors of every state. Refreshing always ends in
// Done: by then the verdict is already persisted.
var edges = map[State][]State{
	StateIdle:       {StateScoring},
	StateScoring:    {StatePersisting, StateFailed},
	StatePersisting: {StateRefreshing, StateFailed},
	StateRefreshing: {StateDone},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to State) bool {
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition is one recorded state change.
type Transition struct {
	From State
	To   State
	At   time.Time
}

// Cycle is the record of one verify action on one claim. It is created fresh
// for each action and never reused.
type Cycle struct {
	ID          uuid.UUID
	ClaimID     models.ClaimID
	State       State
	Verdict     *models.Verdict
	Transitions []Transition

	// Err is set when the cycle ends in Failed.
	Err error

	// Notice is set when the cycle ends in Done but the claim list could not
	// be refreshed; RefreshErr holds the cause.
	Notice     string
	RefreshErr error

	StartedAt  time.Time
	FinishedAt time.Time
}

func newCycle(id uuid.UUID, claimID models.ClaimID, now time.Time) *Cycle {
	return &Cycle{
		ID:        id,
		ClaimID:   claimID,
		State:     StateIdle,
		StartedAt: now,
	}
}

// advance moves the cycle along a legal edge.
func (c *Cycle) advance(to State, now time.Time) error {
	if !CanTransition(c.State, to) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("illegal cycle transition %s -> %s", c.State, to))
	}
	c.Transitions = append(c.Transitions, Transition{From: c.State, To: to, At: now})
	c.State = to
	if to.Terminal() {
		c.FinishedAt = now
	}
	return nil
}

// Path returns the visited states in order, starting with Idle.
func (c *Cycle) Path() []State {
	path := []State{StateIdle}
	for _, t := range c.Transitions {
		path = append(path, t.To)
	}
	return path
}

// Duration is the time from start to the terminal state, or zero while the
// cycle is still running.
func (c *Cycle) Duration() time.Duration {
	if c.FinishedAt.IsZero() {
		return 0
	}
	return c.FinishedAt.Sub(c.StartedAt)
}
