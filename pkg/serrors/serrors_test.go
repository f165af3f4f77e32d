package serrors_test

import (
	"errors"
	"fmt"
	"reflectometry/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrValidation,
		serrors.ErrCalculation,
		serrors.ErrConstraintCycle,
		serrors.ErrConfiguration,
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("engine exploded")

	e1 := serrors.With(serrors.ErrValidation, "thickness %g is negative", -1.0)
	require.Equal(t, "thickness -1 is negative", e1.Error())

	e2 := serrors.Wrap(serrors.ErrCalculation, base, "abeles")
	require.Equal(t, "abeles: engine exploded", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrConfiguration)
	require.Equal(t, "CONFIGURATION", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrValidation, base, "reading")

	require.ErrorIs(t, e, serrors.ErrValidation)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrCalculation)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrConstraintCycle, base, "resolving")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrConstraintCycle, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestKindOf(t *testing.T) {
	require.Nil(t, serrors.KindOf(errors.New("plain")))
	require.Nil(t, serrors.KindOf(nil))

	wrapped := fmt.Errorf("outer: %w", serrors.With(serrors.ErrConfiguration, "no data"))
	require.Equal(t, serrors.ErrConfiguration, serrors.KindOf(wrapped))

	nested := serrors.Wrap(nil, serrors.KindOnly(serrors.ErrNotFound), "lookup")
	require.Equal(t, serrors.ErrNotFound, serrors.KindOf(nested))
}

func TestIsAny(t *testing.T) {
	err := fmt.Errorf("fit: %w", serrors.With(serrors.ErrConstraintCycle, "a -> b -> a"))
	require.True(t, serrors.IsAny(err, serrors.ErrValidation, serrors.ErrConstraintCycle))
	require.False(t, serrors.IsAny(err, serrors.ErrValidation, serrors.ErrCalculation))
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnauthorized, base, "no token")
	require.Equal(t, serrors.ErrUnauthorized, e.Kind())
	require.Equal(t, "no token", e.Message())
	require.Equal(t, base, e.Cause())
}
