package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := New("scoring", WithFailureThreshold(3))

	assert.False(t, b.RecordFailure().Changed())
	assert.False(t, b.RecordFailure().Changed())
	tr := b.RecordFailure()

	assert.Equal(t, Transition{From: StateClosed, To: StateOpen}, tr)
	assert.False(t, b.Healthy())
	assert.Equal(t, 3, b.Stats().ConsecutiveFailures)
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := New("scoring", WithFailureThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()

	assert.True(t, b.Healthy())
	assert.Equal(t, 1, b.Stats().ConsecutiveFailures)
}

func TestBreakerClosesAfterSuccessThreshold(t *testing.T) {
	b := New("scoring", WithFailureThreshold(1), WithSuccessThreshold(2))
	b.RecordFailure()
	assert.False(t, b.Healthy())

	assert.False(t, b.RecordSuccess().Changed())
	tr := b.RecordSuccess()

	assert.Equal(t, Transition{From: StateOpen, To: StateClosed}, tr)
	assert.True(t, b.Healthy())
}

func TestBreakerOnChange(t *testing.T) {
	var seen []Transition
	b := New("scoring",
		WithFailureThreshold(1),
		WithOnChange(func(name string, tr Transition) {
			assert.Equal(t, "scoring", name)
			seen = append(seen, tr)
		}),
	)

	b.RecordFailure()
	b.RecordFailure()
	b.Reset()

	assert.Equal(t, []Transition{
		{From: StateClosed, To: StateOpen},
		{From: StateOpen, To: StateClosed},
	}, seen)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closed", StateClosed.String())
}
