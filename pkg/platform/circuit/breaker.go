// Package circuit tracks the health of a remote dependency from the outcome
// of the calls made to it.
package circuit

import "sync"

// State represents the breaker state.
type State int

const (
	// StateClosed means recent calls have been succeeding.
	StateClosed State = iota
	// StateOpen means the failure threshold was reached and the dependency is
	// considered unhealthy until enough successes are seen.
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Transition reports a state change caused by a recorded outcome.
type Transition struct {
	From State
	To   State
}

// Changed is true when the recorded outcome flipped the state.
func (t Transition) Changed() bool { return t.From != t.To }

// Stats is a point-in-time view of the breaker.
type Stats struct {
	Name                 string
	State                State
	ConsecutiveFailures  int
	ConsecutiveSuccesses int
}

// Breaker counts consecutive outcomes. It is a signal only: it never refuses
// a call, so every caller still gets a real answer from the dependency.
type Breaker struct {
	mu               sync.Mutex
	state            State
	name             string
	failures         int
	successes        int
	failureThreshold int
	successThreshold int
	onChange         func(name string, t Transition)
}

// Option configures a Breaker instance.
type Option func(*Breaker)

// WithFailureThreshold sets the number of consecutive failures that open the
// breaker. Default is 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold sets the number of consecutive successes that close an
// open breaker. Default is 1.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// WithOnChange registers a callback invoked, outside the lock, after every
// state change.
func WithOnChange(fn func(name string, t Transition)) Option {
	return func(b *Breaker) {
		b.onChange = fn
	}
}

// New creates a breaker with the given name and options.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		state:            StateClosed,
		failureThreshold: 5,
		successThreshold: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Name returns the breaker's name for logging and metrics.
func (b *Breaker) Name() string {
	return b.name
}

// Healthy is true while the breaker is closed.
func (b *Breaker) Healthy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == StateClosed
}

// Stats returns the current counters.
func (b *Breaker) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Name:                 b.name,
		State:                b.state,
		ConsecutiveFailures:  b.failures,
		ConsecutiveSuccesses: b.successes,
	}
}

// RecordFailure records a failed call.
func (b *Breaker) RecordFailure() Transition {
	b.mu.Lock()
	from := b.state
	b.failures++
	b.successes = 0
	if b.state == StateClosed && b.failures >= b.failureThreshold {
		b.state = StateOpen
	}
	t := Transition{From: from, To: b.state}
	b.mu.Unlock()

	b.notify(t)
	return t
}

// RecordSuccess records a successful call.
func (b *Breaker) RecordSuccess() Transition {
	b.mu.Lock()
	from := b.state
	b.failures = 0
	if b.state == StateOpen {
		b.successes++
		if b.successes >= b.successThreshold {
			b.state = StateClosed
			b.successes = 0
		}
	}
	t := Transition{From: from, To: b.state}
	b.mu.Unlock()

	b.notify(t)
	return t
}

// Reset closes the breaker and clears all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	from := b.state
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
	b.mu.Unlock()

	b.notify(Transition{From: from, To: StateClosed})
}

func (b *Breaker) notify(t Transition) {
	if b.onChange != nil && t.Changed() {
		b.onChange(b.name, t)
	}
}
