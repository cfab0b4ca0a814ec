package guard_test

import (
	"errors"
	"testing"

	"logistics/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsage exercises the pattern the domain model relies on:
// a guarded value object whose zero value fails validation.
func TestConstructorGuardUsage(t *testing.T) {
	type tripCapacity struct {
		units int
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("tripCapacity must be created via its constructor")

	newTripCapacity := func(units int) (tripCapacity, error) {
		if units <= 0 {
			return tripCapacity{}, errors.New("units must be positive")
		}
		return tripCapacity{units: units, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes_validation", func(t *testing.T) {
		cap, err := newTripCapacity(4)
		require.NoError(t, err)
		require.NoError(t, cap.guard.Validate(errNotConstructed))
		assert.Equal(t, 4, cap.units)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var cap tripCapacity
		err := cap.guard.Validate(errNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("constructor_enforces_business_rules", func(t *testing.T) {
		_, err := newTripCapacity(0)
		require.Error(t, err)
	})
}
