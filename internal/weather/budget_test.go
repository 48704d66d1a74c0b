package weather_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsandin/tripplanner/backend/internal/domain"
	"github.com/jsandin/tripplanner/backend/internal/weather"
)

func TestBudget_AllowsWithinBurst(t *testing.T) {
	b := weather.NewBudget()
	user := uuid.New()

	// The per-user burst admits 10 back-to-back calls.
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Allow(user), "call %d should be admitted", i+1)
	}
}

func TestBudget_PerUserExhaustion(t *testing.T) {
	b := weather.NewBudget()
	user := uuid.New()

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Allow(user))
	}

	err := b.Allow(user)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestBudget_UsersAreIndependent(t *testing.T) {
	b := weather.NewBudget()
	first := uuid.New()
	second := uuid.New()

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Allow(first))
	}
	require.ErrorIs(t, b.Allow(first), domain.ErrRateLimited)

	// A different account still has its own full burst, until the global
	// bucket runs out too.
	assert.NoError(t, b.Allow(second))
}

func TestBudget_GlobalExhaustion(t *testing.T) {
	b := weather.NewBudget()

	// Drain the global burst of 20 across distinct accounts, so no single
	// per-user bucket empties first.
	admitted := 0
	for i := 0; i < 20; i++ {
		if b.Allow(uuid.New()) == nil {
			admitted++
		}
	}
	require.Equal(t, 20, admitted)

	err := b.Allow(uuid.New())
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}
