package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("happy path through the funnel", func(t *testing.T) {
		assert.True(t, CanTransition(StatusSaved, StatusApplied))
		assert.True(t, CanTransition(StatusApplied, StatusScreening))
		assert.True(t, CanTransition(StatusScreening, StatusInterview))
		assert.True(t, CanTransition(StatusInterview, StatusOffer))
	})

	t.Run("stages can be skipped forward", func(t *testing.T) {
		assert.True(t, CanTransition(StatusApplied, StatusOffer))
		assert.True(t, CanTransition(StatusScreening, StatusOffer))
	})

	t.Run("no moving backwards", func(t *testing.T) {
		assert.False(t, CanTransition(StatusInterview, StatusApplied))
		assert.False(t, CanTransition(StatusApplied, StatusSaved))
		assert.False(t, CanTransition(StatusScreening, StatusApplied))
	})

	t.Run("rejection and withdrawal from any active state", func(t *testing.T) {
		for _, from := range []ApplicationStatus{StatusSaved, StatusApplied, StatusScreening, StatusInterview} {
			assert.True(t, CanTransition(from, StatusRejected), "from %s", from)
			assert.True(t, CanTransition(from, StatusWithdrawn), "from %s", from)
		}
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		for _, from := range []ApplicationStatus{StatusOffer, StatusRejected, StatusWithdrawn} {
			for _, to := range []ApplicationStatus{StatusSaved, StatusApplied, StatusScreening, StatusInterview, StatusRejected} {
				if from == to {
					continue
				}
				assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("self transition is rejected", func(t *testing.T) {
		assert.False(t, CanTransition(StatusApplied, StatusApplied))
	})

	t.Run("unknown statuses are rejected", func(t *testing.T) {
		assert.False(t, CanTransition("ghosted", StatusApplied))
		assert.False(t, CanTransition(StatusApplied, "ghosted"))
	})
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusOffer.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusWithdrawn.IsTerminal())
	assert.False(t, StatusSaved.IsTerminal())
	assert.False(t, StatusInterview.IsTerminal())
}
